// Package tagmap implements the CBOR tag-mapper component: a table of
// (tag number, type predicate, encode function, decode function)
// registrations applied while walking a value tree, so application types
// can round-trip through CBOR semantic tags without the core codec
// knowing about them.
//
// It is grounded directly on original_source/cbor/tagmap.py's ClassTag and
// TagMapper: registrations are scanned linearly in registration order, the
// first predicate match wins on encode, and an unmatched tag on decode
// either passes through as a cbor.Tag or fails with ErrUnknownTag,
// depending on RaiseOnUnknownTag.
package tagmap

import (
	"fmt"
	"io"

	"github.com/wiretype/cbor"
)

// ClassTag associates a CBOR tag number with a Go-side type: Predicate
// recognizes values of that type, Encode converts a matched value into the
// Value that will be wrapped in Tag{Number: TagNumber}, and Decode converts
// the unwrapped inner Value back into the application type.
type ClassTag struct {
	TagNumber uint64
	Predicate func(any) bool
	Encode    func(any) (cbor.Value, error)
	Decode    func(cbor.Value) (any, error)
}

// Mapper walks host values and decoded Value trees, applying a registered
// set of ClassTag translations.
type Mapper struct {
	classTags         []ClassTag
	raiseOnUnknownTag bool
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithRaiseOnUnknownTag controls whether decoding a Tag with no matching
// registration fails with cbor.ErrUnknownTag (true) or passes through
// unchanged as a cbor.Tag (false, the default).
func WithRaiseOnUnknownTag(raise bool) Option {
	return func(m *Mapper) { m.raiseOnUnknownTag = raise }
}

// New builds a Mapper from an ordered list of registrations. Order matters:
// the first matching predicate wins on encode.
func New(classTags []ClassTag, opts ...Option) *Mapper {
	m := &Mapper{classTags: classTags}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EncodeValue walks obj: the first registration whose Predicate matches
// produces Tag{Number, Inner: Encode(obj)}. Otherwise obj is recursed into
// when it is a []any or a map[string]any (keys are assumed primitive and are
// not remapped, matching tagmap.py), or converted directly to the matching
// Value leaf type. Slices and maps of other element types are not recursed
// into; apart from []byte they fail as unsupported leaf types.
func (m *Mapper) EncodeValue(obj any) (cbor.Value, error) {
	for _, ct := range m.classTags {
		if ct.Predicate(obj) {
			inner, err := ct.Encode(obj)
			if err != nil {
				return nil, err
			}
			return cbor.Tag{Number: ct.TagNumber, Inner: inner}, nil
		}
	}

	switch v := obj.(type) {
	case nil:
		return cbor.Null, nil
	case cbor.Value:
		return v, nil
	case []any:
		arr := make(cbor.Array, len(v))
		for i, item := range v {
			enc, err := m.EncodeValue(item)
			if err != nil {
				return nil, err
			}
			arr[i] = enc
		}
		return arr, nil
	case map[string]any:
		out := cbor.NewMap()
		for k, val := range v {
			enc, err := m.EncodeValue(val)
			if err != nil {
				return nil, err
			}
			if err := out.Entries().Set(cbor.Text(k), enc); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return leafToValue(obj)
	}
}

// DecodeValue walks v: a Tag whose Number matches a registration is
// replaced by Decode(Inner). An unmatched Tag passes through as itself
// unless RaiseOnUnknownTag is set, in which case it returns
// cbor.ErrUnknownTag. Array and Map are recursed into and rebuilt as
// []any / map[string]any; other Value leaves convert to their natural Go
// type via ToAny.
func (m *Mapper) DecodeValue(v cbor.Value) (any, error) {
	switch val := v.(type) {
	case cbor.Tag:
		for _, ct := range m.classTags {
			if ct.TagNumber == val.Number {
				return ct.Decode(val.Inner)
			}
		}
		if m.raiseOnUnknownTag {
			return nil, fmt.Errorf("%w: %d", cbor.ErrUnknownTag, val.Number)
		}
		return val, nil

	case cbor.Array:
		out := make([]any, len(val))
		for i, item := range val {
			dec, err := m.DecodeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = dec
		}
		return out, nil

	case *cbor.Map:
		out := make(map[string]any, val.Len())
		var rangeErr error
		val.Entries().Range(func(key, value cbor.Value) bool {
			k, ok := key.(cbor.Text)
			if !ok {
				rangeErr = fmt.Errorf("tagmap: non-text map key %T", key)
				return false
			}
			dec, err := m.DecodeValue(value)
			if err != nil {
				rangeErr = err
				return false
			}
			out[string(k)] = dec
			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
		return out, nil

	default:
		return cbor.ToAny(v)
	}
}

// Dump encodes obj through EncodeValue and writes the result to w.
func (m *Mapper) Dump(obj any, w io.Writer) error {
	v, err := m.EncodeValue(obj)
	if err != nil {
		return err
	}
	return cbor.EncodeToSink(v, w)
}

// Dumps encodes obj through EncodeValue and returns the CBOR bytes.
func (m *Mapper) Dumps(obj any) ([]byte, error) {
	v, err := m.EncodeValue(obj)
	if err != nil {
		return nil, err
	}
	return cbor.EncodeToBytes(v)
}

// Load decodes a single item from r and runs it through DecodeValue.
func (m *Mapper) Load(r io.Reader) (any, error) {
	v, err := cbor.DecodeFromSource(r)
	if err != nil {
		return nil, err
	}
	return m.DecodeValue(v)
}

// Loads decodes blob and runs the result through DecodeValue.
func (m *Mapper) Loads(blob []byte) (any, error) {
	v, err := cbor.DecodeFromBytes(blob)
	if err != nil {
		return nil, err
	}
	return m.DecodeValue(v)
}

func leafToValue(obj any) (cbor.Value, error) {
	switch v := obj.(type) {
	case bool:
		return cbor.Bool(v), nil
	case string:
		return cbor.Text(v), nil
	case []byte:
		return cbor.Bytes(v), nil
	case int:
		return cbor.IntValue(int64(v)), nil
	case int8:
		return cbor.IntValue(int64(v)), nil
	case int16:
		return cbor.IntValue(int64(v)), nil
	case int32:
		return cbor.IntValue(int64(v)), nil
	case int64:
		return cbor.IntValue(v), nil
	case uint:
		return cbor.Uint(v), nil
	case uint8:
		return cbor.Uint(v), nil
	case uint16:
		return cbor.Uint(v), nil
	case uint32:
		return cbor.Uint(v), nil
	case uint64:
		return cbor.Uint(v), nil
	case float32:
		return cbor.Float(v), nil
	case float64:
		return cbor.Float(v), nil
	default:
		return nil, fmt.Errorf("tagmap: don't know how to encode value of type %T", obj)
	}
}
