package cbor

import "math/big"

// AnyTag is the ToAny representation of a Tag value: Number is the tag
// number and Inner is the tag's content already converted via ToAny.
type AnyTag struct {
	Number uint64
	Inner  any
}

// ToAny converts a Value into its natural Go dynamic-typed representation:
// Uint/NegInt to uint64/int64 (widening NegInt to *big.Int when it would
// overflow int64), Bytes to []byte, Text to string, Array to []any, Map to
// map[string]any (non-Text keys are rejected), Tag to AnyTag, Float to
// float64, Bool to bool, Null to nil, Undefined to the Undefined
// sentinel, Simple to byte, and BigInt to *big.Int. This is the inverse
// companion to the leaf conversion tagmap.Mapper.EncodeValue performs on Go
// dynamic values, used by tagmap.Mapper.DecodeValue and any caller that
// wants a plain Go value instead of the typed Value tree.
func ToAny(v Value) (any, error) {
	switch val := v.(type) {
	case Uint:
		return uint64(val), nil

	case NegInt:
		if n, ok := val.Int64(); ok {
			return n, nil
		}
		n := new(big.Int).SetUint64(uint64(val))
		n.Add(n, big.NewInt(1))
		n.Neg(n)
		return n, nil

	case Bytes:
		return []byte(val), nil

	case Text:
		return string(val), nil

	case Array:
		out := make([]any, len(val))
		for i, item := range val {
			a, err := ToAny(item)
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil

	case *Map:
		out := make(map[string]any, val.Len())
		var rangeErr error
		val.Entries().Range(func(key, value Value) bool {
			k, ok := key.(Text)
			if !ok {
				rangeErr = NewCborError(ErrInvalidCbor, 0, "non-text map key cannot convert to map[string]any")
				return false
			}
			a, err := ToAny(value)
			if err != nil {
				rangeErr = err
				return false
			}
			out[string(k)] = a
			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
		return out, nil

	case Tag:
		inner, err := ToAny(val.Inner)
		if err != nil {
			return nil, err
		}
		return AnyTag{Number: val.Number, Inner: inner}, nil

	case Float:
		return float64(val), nil

	case Bool:
		return bool(val), nil

	case nullValue:
		return nil, nil

	case undefinedValue:
		return Undefined, nil

	case Simple:
		return byte(val), nil

	case BigInt:
		return val.V, nil

	default:
		return nil, ErrUnsupportedValue
	}
}
