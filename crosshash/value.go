package crosshash

// Value is a JSON value. The set of implementations is closed: Null, Bool,
// Number, String, Array and Object. A nil Value is treated as Null.
type Value interface {
	isValue()
}

type (
	// Null is the JSON null literal.
	Null struct{}

	// Bool is a JSON boolean.
	Bool bool

	// String is a JSON string. It should hold valid UTF-8.
	String string

	// Array is an ordered JSON array.
	Array []Value

	// Object is a JSON object. Member order carries no meaning.
	Object map[string]Value
)

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}
