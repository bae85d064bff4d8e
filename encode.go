package cbor

// EncodeValue writes v to w, recursing into Array, Map, and Tag.
func EncodeValue(w *CborWriter, v Value) error {
	switch val := v.(type) {
	case Uint:
		return w.WriteUint64(uint64(val))

	case NegInt:
		// NegInt(n) is the logical value -1-n; n is already the wire
		// argument for major type 1, so write it directly rather than
		// round-tripping through a signed int64 (which would overflow
		// for n >= 2^63).
		return w.writeNegIntArg(uint64(val))

	case Bytes:
		return w.WriteByteString([]byte(val))

	case Text:
		return w.WriteTextString(string(val))

	case Array:
		if err := w.WriteStartArray(len(val)); err != nil {
			return err
		}
		for _, item := range val {
			if err := EncodeValue(w, item); err != nil {
				return err
			}
		}
		return w.WriteEndArray()

	case *Map:
		entries := val.Entries()
		if err := w.WriteStartMap(entries.Len()); err != nil {
			return err
		}
		var rangeErr error
		entries.Range(func(key, value Value) bool {
			if err := EncodeValue(w, key); err != nil {
				rangeErr = err
				return false
			}
			if err := EncodeValue(w, value); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		return w.WriteEndMap()

	case Tag:
		if err := w.WriteTag(CborTag(val.Number)); err != nil {
			return err
		}
		return EncodeValue(w, val.Inner)

	case Float:
		return w.WriteFloat64(float64(val))

	case Bool:
		return w.WriteBoolean(bool(val))

	case nullValue:
		return w.WriteNull()

	case undefinedValue:
		return w.WriteUndefined()

	case Simple:
		return w.WriteSimpleValue(SimpleValue(val))

	case BigInt:
		return w.WriteBigInt(val.V)

	default:
		return NewCborError(ErrUnsupportedValue, w.Len(), "unrecognized Value implementation")
	}
}
