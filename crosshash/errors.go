package crosshash

import "errors"

// Error tokens. Every implementation prints these verbatim so that test
// suites in any language can grep for them.
const (
	UnsafeNumberToken = "ERROR_UNSAFE_NUMBER"
	InvalidJSONToken  = "ERROR_INVALID_JSON"
)

// Sentinel errors for package crosshash.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrUnsafeNumber matches every *UnsafeNumberError.
	ErrUnsafeNumber = errors.New(UnsafeNumberToken)

	// ErrDecode matches every *DecodeError, including the conversion
	// failures below.
	ErrDecode = errors.New(InvalidJSONToken)

	// Conversion errors, always wrapped in a *DecodeError
	ErrNonFinite       = errors.New("NaN and infinite numbers are not valid JSON")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrTrailingData    = errors.New("unexpected data after top-level value")
)

// UnsafeNumberError reports a number outside [-MaxSafeInteger, MaxSafeInteger].
type UnsafeNumberError struct {
	Number Number
}

func (e *UnsafeNumberError) Error() string {
	return UnsafeNumberToken + ": " + e.Number.String()
}

func (e *UnsafeNumberError) Is(target error) bool {
	return target == ErrUnsafeNumber
}

// DecodeError reports input that is not a valid JSON value.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return InvalidJSONToken
	}
	return InvalidJSONToken + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
