package crosshash

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	v, err := Decode([]byte(`{"a":[1,2.5,"x",true,false,null],"b":{}}`))
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok)
	require.Len(t, obj, 2)

	arr, ok := obj["a"].(Array)
	require.True(t, ok)
	require.Len(t, arr, 6)
	assert.IsType(t, Number{}, arr[0])
	assert.Equal(t, String("x"), arr[2])
	assert.Equal(t, Bool(true), arr[3])
	assert.Equal(t, Bool(false), arr[4])
	assert.Equal(t, Null{}, arr[5])
	assert.Equal(t, Object{}, obj["b"])

	n := arr[1].(Number)
	assert.Equal(t, 2.5, n.Float64())
	assert.Equal(t, "2.5", n.Literal())
}

func TestDecodeKeepsLargeIntegers(t *testing.T) {
	v, err := Decode([]byte(`9007199254740993`))
	require.NoError(t, err)
	n := v.(Number)
	i, ok := n.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), i)
	assert.False(t, n.IsSafe())
}

func TestDecodeEmptyContainers(t *testing.T) {
	v, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, Array{}, v)

	v, err = Decode([]byte(` {} `))
	require.NoError(t, err)
	assert.Equal(t, Object{}, v)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "empty input", in: "", wantErr: io.ErrUnexpectedEOF},
		{name: "whitespace only", in: "  \n", wantErr: io.ErrUnexpectedEOF},
		{name: "trailing value", in: `1 2`, wantErr: ErrTrailingData},
		{name: "trailing object", in: `{} {}`, wantErr: ErrTrailingData},
		{name: "trailing garbage", in: `{"a":1} x`},
		{name: "duplicate names", in: `{"a":1,"a":2}`},
		{name: "nan literal", in: `NaN`},
		{name: "infinity literal", in: `[Infinity]`},
		{name: "single quotes", in: `{'a':1}`},
		{name: "trailing comma", in: `[1,2,]`},
		{name: "unterminated object", in: `{"a":1`},
		{name: "unterminated string", in: `"abc`},
		{name: "leading zero", in: `012`},
		{name: "invalid utf-8", in: "\"\xff\""},
		{name: "bare word", in: `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.in))
			require.Error(t, err)
			assert.Nil(t, v)
			assert.ErrorIs(t, err, ErrDecode)
			assert.False(t, errors.Is(err, ErrUnsafeNumber))
			assert.True(t, strings.HasPrefix(err.Error(), InvalidJSONToken+": "), err.Error())

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeReader(t *testing.T) {
	v, err := DecodeReader(strings.NewReader("[\"a\", {\"b\": -1}]\n"))
	require.NoError(t, err)
	got, err := Canonicalize(v)
	require.NoError(t, err)
	assert.Equal(t, `["a",{"b":-1}]`, got)
}

func TestDecodeNestingLimit(t *testing.T) {
	in := strings.Repeat("[", 100) + strings.Repeat("]", 100)
	_, err := Decode([]byte(in))
	require.NoError(t, err)

	in = strings.Repeat("[", 20000) + strings.Repeat("]", 20000)
	_, err = Decode([]byte(in))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeErrorMessage(t *testing.T) {
	assert.Equal(t, "ERROR_INVALID_JSON", (&DecodeError{}).Error())
	err := &DecodeError{Err: ErrTrailingData}
	assert.Equal(t, "ERROR_INVALID_JSON: unexpected data after top-level value", err.Error())
	assert.ErrorIs(t, err, ErrTrailingData)
}
