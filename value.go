package cbor

import (
	"math"
	"math/big"
)

// Value is the in-memory representation of a decoded (or to-be-encoded)
// CBOR data item. It is a closed sum type: every concrete type in this
// package that implements Value is listed below, and EncodeValue type
// switches over exactly these.
type Value interface {
	cborValue()
}

// Uint is an UnsignedInt value (major type 0).
type Uint uint64

func (Uint) cborValue() {}

// NegInt is a NegativeInt value (major type 1), logically -1-N.
type NegInt uint64

func (NegInt) cborValue() {}

// Int64 returns the value as a signed int64 when it fits, and reports
// whether the conversion was lossless.
func (n NegInt) Int64() (int64, bool) {
	if uint64(n) > math.MaxInt64 {
		return 0, false
	}
	return -1 - int64(n), true
}

// Bytes is a ByteString value (major type 2).
type Bytes []byte

func (Bytes) cborValue() {}

// Text is a TextString value (major type 3). Construction through this
// package always yields valid UTF-8.
type Text string

func (Text) cborValue() {}

// Array is an ordered sequence of Value (major type 4).
type Array []Value

func (Array) cborValue() {}

// Map is an ordered map of Value pairs (major type 5).
type Map struct {
	entries *OrderedMap
}

func (*Map) cborValue() {}

// NewMap returns an empty ordered Map value.
func NewMap() *Map {
	return &Map{entries: NewOrderedMap()}
}

// Entries returns the backing OrderedMap.
func (m *Map) Entries() *OrderedMap {
	if m.entries == nil {
		m.entries = NewOrderedMap()
	}
	return m.entries
}

// Len returns the number of pairs in the map.
func (m *Map) Len() int {
	if m.entries == nil {
		return 0
	}
	return m.entries.Len()
}

// Tag is a semantic tag wrapping an inner Value (major type 6). A Tag never
// collapses into its inner value; it is first-class.
type Tag struct {
	Number uint64
	Inner  Value
}

func (Tag) cborValue() {}

// Float is an IEEE-754 double value (major type 7, info 25/26/27).
type Float float64

func (Float) cborValue() {}

// Bool is a boolean simple value.
type Bool bool

func (Bool) cborValue() {}

// nullValue and undefinedValue are the distinct simple-value singletons.
type nullValue struct{}

func (nullValue) cborValue() {}

type undefinedValue struct{}

func (undefinedValue) cborValue() {}

// Null is the CBOR null simple value.
var Null Value = nullValue{}

// Undefined is the CBOR undefined simple value.
var Undefined Value = undefinedValue{}

// IsNull reports whether v is the Null singleton.
func IsNull(v Value) bool {
	_, ok := v.(nullValue)
	return ok
}

// IsUndefined reports whether v is the Undefined singleton.
func IsUndefined(v Value) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// Simple is a simple value (major type 7, info < 24 or info 24) outside the
// false/true/null/undefined range. See SPEC_FULL.md §9 for why info-24
// simple values pass through rather than failing to decode.
type Simple byte

func (Simple) cborValue() {}

// BigInt is an arbitrary-precision integer produced from (or destined for)
// the tag-2/tag-3 bignum convention, used whenever a host integer does not
// fit in 64 bits.
type BigInt struct {
	V *big.Int
}

func (BigInt) cborValue() {}

// OrderedMap is an insertion-ordered collection of Value pairs with
// last-write-wins semantics on duplicate keys, matching the distilled
// spec's Map invariant. Keys are compared by their encoded bytes, since
// Value itself is not comparable (Array/Map/Bytes contain slices).
type OrderedMap struct {
	order []Value
	index map[string]int
	vals  []Value
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{index: make(map[string]int)}
}

// Set inserts or overwrites the value for key, preserving the key's
// original position on overwrite (last value wins, position does not move
// on the source's semantics -- matching a Go map assignment).
func (m *OrderedMap) Set(key, value Value) error {
	k, err := mapKeyString(key)
	if err != nil {
		return err
	}
	if i, ok := m.index[k]; ok {
		m.vals[i] = value
		return nil
	}
	m.index[k] = len(m.order)
	m.order = append(m.order, key)
	m.vals = append(m.vals, value)
	return nil
}

// Get looks up the value stored for key.
func (m *OrderedMap) Get(key Value) (Value, bool, error) {
	k, err := mapKeyString(key)
	if err != nil {
		return nil, false, err
	}
	i, ok := m.index[k]
	if !ok {
		return nil, false, nil
	}
	return m.vals[i], true, nil
}

// Len returns the number of pairs.
func (m *OrderedMap) Len() int {
	return len(m.order)
}

// Range calls fn for each pair in insertion order. Iteration stops early if
// fn returns false.
func (m *OrderedMap) Range(fn func(key, value Value) bool) {
	for i, k := range m.order {
		if !fn(k, m.vals[i]) {
			return
		}
	}
}

// IntValue converts a host int64 into the matching Uint or NegInt Value,
// the encode-side counterpart to NegInt.Int64/ToAny's decode-side widening.
func IntValue(n int64) Value {
	if n >= 0 {
		return Uint(n)
	}
	return NegInt(uint64(-1 - n))
}

// mapKeyString derives a comparable identity for a Value used as a map key
// by encoding it; two keys that encode identically are the same key.
func mapKeyString(key Value) (string, error) {
	w := NewCborWriter()
	if err := EncodeValue(w, key); err != nil {
		return "", err
	}
	return string(w.Bytes()), nil
}
