package crosshash

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

// Canonicalize returns the canonical text of v.
//
// The only possible error is an *UnsafeNumberError for the first number,
// in canonical order, that falls outside the safe range. No partial text
// is returned on failure.
func Canonicalize(v Value) (string, error) {
	b, err := AppendCanonical(nil, v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendCanonical appends the canonical text of v to dst and returns the
// extended buffer. On error the original dst is returned.
func AppendCanonical(dst []byte, v Value) ([]byte, error) {
	out, err := appendValue(dst, v)
	if err != nil {
		return dst, err
	}
	return out, nil
}

// CanonicalJSON decodes JSON text and returns its canonical text.
func CanonicalJSON(data []byte) (string, error) {
	v, err := Decode(data)
	if err != nil {
		return "", err
	}
	return Canonicalize(v)
}

// Validate checks every number in v against the safe range without
// producing any output. It reports the same error Canonicalize would.
func Validate(v Value) error {
	switch v := v.(type) {
	case Number:
		return ValidateNumber(v)
	case Array:
		for _, item := range v {
			if err := Validate(item); err != nil {
				return err
			}
		}
	case Object:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			if err := Validate(v[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

func appendValue(dst []byte, v Value) ([]byte, error) {
	var err error
	switch v := v.(type) {
	case nil, Null:
		return append(dst, "null"...), nil
	case Bool:
		return strconv.AppendBool(dst, bool(v)), nil
	case Number:
		if err = ValidateNumber(v); err != nil {
			return dst, err
		}
		return v.appendCanonical(dst), nil
	case String:
		return appendString(dst, string(v)), nil
	case Array:
		dst = append(dst, '[')
		for i, item := range v {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = appendValue(dst, item); err != nil {
				return dst, err
			}
		}
		return append(dst, ']'), nil
	case Object:
		dst = append(dst, '{')
		for i, k := range slices.Sorted(maps.Keys(v)) {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, k)
			dst = append(dst, ':')
			if dst, err = appendValue(dst, v[k]); err != nil {
				return dst, err
			}
		}
		return append(dst, '}'), nil
	default:
		panic(fmt.Sprintf("crosshash: unexpected Value implementation %T", v))
	}
}

// appendString quotes s with the minimal escaping of RFC 8785: quote,
// backslash and control characters only. Invalid UTF-8 is replaced with
// U+FFFD, which is the only reason AppendQuote can fail.
func appendString(dst []byte, s string) []byte {
	dst, _ = jsontext.AppendQuote(dst, s)
	return dst
}
