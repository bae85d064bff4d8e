package cbor

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cmpValue compares two Value trees structurally, looking inside *Map via
// its exported Entries/Range surface since OrderedMap carries unexported
// bookkeeping fields that cmp cannot see into directly.
func cmpValue(t *testing.T, got, want Value) {
	t.Helper()
	assert.True(t, valuesEqual(got, want), "values differ:\n got:  %#v\n want: %#v", got, want)
}

func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true

	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Entries().Range(func(k, v Value) bool {
			other, found, err := bv.Entries().Get(k)
			if err != nil || !found || !valuesEqual(v, other) {
				equal = false
				return false
			}
			return true
		})
		return equal

	case Tag:
		bv, ok := b.(Tag)
		return ok && av.Number == bv.Number && valuesEqual(av.Inner, bv.Inner)

	case BigInt:
		bv, ok := b.(BigInt)
		return ok && av.V.Cmp(bv.V) == 0

	default:
		return cmp.Equal(a, b)
	}
}

func TestValueRoundTripScalars(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"uint zero", Uint(0)},
		{"uint 23", Uint(23)},
		{"uint 24", Uint(24)},
		{"uint max64", Uint(1<<64 - 1)},
		{"negint -1", NegInt(0)},
		{"negint -25", NegInt(24)},
		{"bytes empty", Bytes{}},
		{"bytes", Bytes{1, 2, 3, 4}},
		{"text ascii", Text("a")},
		{"text utf8", Text("é")},
		{"bool true", Bool(true)},
		{"bool false", Bool(false)},
		{"null", Null},
		{"undefined", Undefined},
		{"float", Float(3.141592653589793)},
		{"simple", Simple(32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeToBytes(tt.v)
			require.NoError(t, err)

			got, err := DecodeFromBytes(data)
			require.NoError(t, err)

			cmpValue(t, got, tt.v)
		})
	}
}

func TestValueRoundTripContainers(t *testing.T) {
	arr := Array{Uint(1), Uint(2), Uint(3)}
	data, err := EncodeToBytes(arr)
	require.NoError(t, err)
	require.Equal(t, []byte{0x83, 0x01, 0x02, 0x03}, data)

	got, err := DecodeFromBytes(data)
	require.NoError(t, err)
	cmpValue(t, got, arr)

	m := NewMap()
	require.NoError(t, m.Entries().Set(Text("a"), Uint(1)))
	require.NoError(t, m.Entries().Set(Text("b"), Uint(2)))

	data, err = EncodeToBytes(m)
	require.NoError(t, err)
	require.Equal(t, []byte{0xa2, 0x61, 0x61, 0x01, 0x61, 0x62, 0x02}, data)

	decoded, err := DecodeFromBytes(data)
	require.NoError(t, err)
	cmpValue(t, decoded, m)
}

func TestValueMapPreservesOrderAndLastWriteWins(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Entries().Set(Text("x"), Uint(1)))
	require.NoError(t, m.Entries().Set(Text("y"), Uint(2)))
	require.NoError(t, m.Entries().Set(Text("x"), Uint(99)))

	assert.Equal(t, 2, m.Len())

	var keys []string
	m.Entries().Range(func(k, v Value) bool {
		keys = append(keys, string(k.(Text)))
		return true
	})
	assert.Equal(t, []string{"x", "y"}, keys)

	v, ok, err := m.Entries().Get(Text("x"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Uint(99), v)
}

func TestValueBignum(t *testing.T) {
	n := new(big.Int)
	n.SetString("18446744073709551616", 10) // 2^64
	v := BigInt{V: n}

	data, err := EncodeToBytes(v)
	require.NoError(t, err)
	require.Equal(t, []byte{0xc2, 0x49, 0x01, 0, 0, 0, 0, 0, 0, 0, 0}, data)

	got, err := DecodeFromBytes(data)
	require.NoError(t, err)
	gotBig, ok := got.(BigInt)
	require.True(t, ok)
	assert.Equal(t, 0, gotBig.V.Cmp(n))
}

func TestValueNegIntBeyondInt64(t *testing.T) {
	// -2^64, the smallest representable NegativeInt, has raw argument
	// 2^64-1 and does not fit in int64's Int64() accessor.
	n := NegInt(1<<64 - 1)
	_, ok := n.Int64()
	assert.False(t, ok)

	data, err := EncodeToBytes(n)
	require.NoError(t, err)

	got, err := DecodeFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, n, got)
}

func TestValueTagNeverCollapses(t *testing.T) {
	v := Tag{Number: 42, Inner: Text("hello")}
	data, err := EncodeToBytes(v)
	require.NoError(t, err)
	// tag 42 needs the 1-byte argument form: 0xd8 0x2a, followed by the
	// 5-byte text string "hello".
	require.Equal(t, []byte{0xd8, 0x2a, 0x65, 'h', 'e', 'l', 'l', 'o'}, data)

	got, err := DecodeFromBytes(data)
	require.NoError(t, err)
	cmpValue(t, got, v)

	gotTag, ok := got.(Tag)
	require.True(t, ok, "decoding a Tag must not collapse into its inner value")
	assert.Equal(t, uint64(42), gotTag.Number)
}
