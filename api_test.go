package cbor

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecodeFromBytesConcreteScenarios(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Value
	}{
		{"0", "00", Uint(0)},
		{"23", "17", Uint(23)},
		{"24", "1818", Uint(24)},
		{"-1", "20", NegInt(0)},
		{"-24", "37", NegInt(23)},
		{"-25", "3818", NegInt(24)},
		{"empty bytes", "40", Bytes{}},
		{"bytes 01020304", "4401020304", Bytes{1, 2, 3, 4}},
		{"text a", "6161", Text("a")},
		{"text é", "62c3a9", Text("é")},
		{"empty array", "80", Array{}},
		{"array 1 2 3", "83010203", Array{Uint(1), Uint(2), Uint(3)}},
		{"false", "f4", Bool(false)},
		{"true", "f5", Bool(true)},
		{"null", "f6", Null},
		{"undefined", "f7", Undefined},
		{"float pi", "fb400921fb54442d18", Float(3.141592653589793)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := mustHex(t, tt.hex)
			got, err := DecodeFromBytes(data)
			require.NoError(t, err)
			cmpValue(t, got, tt.want)

			reEncoded, err := EncodeToBytes(tt.want)
			require.NoError(t, err)
			assert.Equal(t, data, reEncoded)
		})
	}
}

func TestDecodeFromBytesIndefiniteArray(t *testing.T) {
	// 9f 01 02 ff -> [1, 2]
	got, err := DecodeFromBytes(mustHex(t, "9f0102ff"))
	require.NoError(t, err)
	cmpValue(t, got, Array{Uint(1), Uint(2)})
}

func TestDecodeFromBytesMapOrdering(t *testing.T) {
	// a2 61 61 01 61 62 02 -> {"a":1,"b":2}, insertion order preserved.
	got, err := DecodeFromBytes(mustHex(t, "a2616101616202"))
	require.NoError(t, err)

	m, ok := got.(*Map)
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())

	var keys []string
	m.Entries().Range(func(k, v Value) bool {
		keys = append(keys, string(k.(Text)))
		return true
	})
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestDecodeFromBytesNegativeScenarios(t *testing.T) {
	tests := []struct {
		name string
		hex  string
	}{
		{"reserved info 28", "1c"},
		{"orphan break", "ff"},
		{"indefinite text with byte chunk", "7f40ff"},
		{"truncated utf8", "61c3"},
		{"declared length 2 got 1", "8201"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFromBytes(mustHex(t, tt.hex))
			require.Error(t, err)
		})
	}
}

func TestDecodeFromBytesRejectsEmptyInput(t *testing.T) {
	_, err := DecodeFromBytes(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecodeFromBytes([]byte{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecodeFromBytesRejectsTrailingData(t *testing.T) {
	data := append(mustHex(t, "00"), mustHex(t, "01")...)
	_, err := DecodeFromBytes(data)
	assert.ErrorIs(t, err, ErrNotAtEnd)

	v, n, err := DecodeFromBytesAllowTrailing(data)
	require.NoError(t, err)
	assert.Equal(t, Uint(0), v)
	assert.Equal(t, 1, n)
}

func TestDepthExceeded(t *testing.T) {
	var buf bytes.Buffer
	depth := 101
	for i := 0; i < depth; i++ {
		buf.WriteByte(0x81) // array of length 1
	}
	buf.WriteByte(0x00) // innermost element: uint 0

	_, err := DecodeFromBytes(buf.Bytes())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNestingDepthExceeded)
}

func TestEncodeToSinkAndDecodeFromSource(t *testing.T) {
	var buf bytes.Buffer
	v := Array{Uint(1), Text("two"), Bool(true)}

	require.NoError(t, EncodeToSink(v, &buf))

	got, err := DecodeFromSource(&buf)
	require.NoError(t, err)
	cmpValue(t, got, v)
}

func TestDecodeFromSourceRejectsEmptyInput(t *testing.T) {
	_, err := DecodeFromSource(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDecoderConcatenatedItems(t *testing.T) {
	// 01 02 03 decoded as three successive calls yields 1, 2, 3.
	data := mustHex(t, "010203")
	dec := NewDecoder(bytes.NewReader(data))

	var got []Value
	for {
		v, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, v)
	}

	cmpValue(t, Array(got), Array{Uint(1), Uint(2), Uint(3)})
}

func TestDecoderOverSinkRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	items := []Value{Uint(1), Text("hello"), Array{Uint(2), Uint(3)}}

	for _, item := range items {
		require.NoError(t, EncodeToSink(item, &buf))
	}

	dec := NewDecoder(&buf)
	for _, want := range items {
		got, err := dec.Decode()
		require.NoError(t, err)
		cmpValue(t, got, want)
	}

	_, err := dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}
