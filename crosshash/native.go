package crosshash

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueOf converts a tree produced by encoding/json (or built by hand from
// the same Go types) into a Value.
//
// Supported: nil, bool, string, every integer and float kind, json.Number,
// []any, map[string]any, []Value, map[string]Value and Value itself.
// NaN and infinities fail with ErrNonFinite, anything else with
// ErrUnsupportedType; both are wrapped in a *DecodeError.
func ValueOf(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return ParseNumber(string(x))
	case float64:
		return floatValue(x)
	case float32:
		return floatValue(float64(x))
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return uintValue(uint64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return uintValue(x), nil
	case []Value:
		return Array(x), nil
	case map[string]Value:
		return Object(x), nil
	case []any:
		arr := make(Array, len(x))
		for i, item := range x {
			v, err := ValueOf(item)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(x))
		for k, item := range x {
			v, err := ValueOf(item)
			if err != nil {
				return nil, err
			}
			obj[k] = v
		}
		return obj, nil
	default:
		return nil, &DecodeError{Err: fmt.Errorf("%w %T", ErrUnsupportedType, x)}
	}
}

// JSON returns the canonical text of a tree accepted by ValueOf.
func JSON(x any) (string, error) {
	v, err := ValueOf(x)
	if err != nil {
		return "", err
	}
	return Canonicalize(v)
}

// Hash returns the fingerprint of a tree accepted by ValueOf.
func Hash(x any) (string, error) {
	v, err := ValueOf(x)
	if err != nil {
		return "", err
	}
	return Fingerprint(v)
}

func floatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %v", ErrNonFinite, f)}
	}
	return Float(f), nil
}

func uintValue(u uint64) Number {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return Number{f: float64(u), integer: true, overflow: true, literal: strconv.FormatUint(u, 10)}
}
