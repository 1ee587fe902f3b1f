package crosshash

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

// Decode parses a single JSON value.
//
// The input must be valid UTF-8 holding exactly one value. Duplicate object
// names are rejected, as are NaN and Infinity, which are not JSON. Nesting
// is limited to 10000 levels by the tokenizer; Values built in memory have
// no such limit. All failures are *DecodeError.
func Decode(data []byte) (Value, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader is like Decode but reads the value from r.
func DecodeReader(r io.Reader) (Value, error) {
	dec := jsontext.NewDecoder(r)
	v, err := decodeValue(dec)
	if err != nil {
		return nil, asDecodeError(err)
	}
	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			err = ErrTrailingData
		}
		return nil, asDecodeError(err)
	}
	return v, nil
}

func decodeValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch kind := tok.Kind(); kind {
	case 'n':
		return Null{}, nil
	case 'f':
		return Bool(false), nil
	case 't':
		return Bool(true), nil
	case '"':
		return String(tok.String()), nil
	case '0':
		return ParseNumber(tok.String())
	case '[':
		arr := Array{}
		for dec.PeekKind() != ']' {
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, item)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return arr, nil
	case '{':
		obj := Object{}
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			key := name.String()
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj[key] = val
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", kind)
	}
}

func asDecodeError(err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &DecodeError{Err: err}
}
