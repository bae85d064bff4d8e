package cbor

import "math/big"

// DecodeValue reads a single complete Value from r, recursing into arrays,
// maps, and tags. Recursion depth is governed by r's configured nesting
// depth (see WithReaderMaxNestingDepth); exceeding it surfaces
// ErrNestingDepthExceeded from the container reads below.
func DecodeValue(r *CborReader) (Value, error) {
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}

	switch state {
	case StateUnsignedInteger:
		v, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		return Uint(v), nil

	case StateNegativeInteger:
		v, err := r.readNegIntArg()
		if err != nil {
			return nil, err
		}
		return NegInt(v), nil

	case StateByteString, StateStartIndefiniteLengthByteString:
		v, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		return Bytes(v), nil

	case StateTextString, StateStartIndefiniteLengthTextString:
		v, err := r.ReadTextString()
		if err != nil {
			return nil, err
		}
		return Text(v), nil

	case StateStartArray:
		return decodeArray(r)

	case StateStartMap:
		return decodeMap(r)

	case StateTag:
		return decodeTag(r)

	case StateBoolean:
		v, err := r.ReadBoolean()
		if err != nil {
			return nil, err
		}
		return Bool(v), nil

	case StateNull:
		if err := r.ReadNull(); err != nil {
			return nil, err
		}
		return Null, nil

	case StateUndefinedValue:
		if err := r.ReadUndefined(); err != nil {
			return nil, err
		}
		return Undefined, nil

	case StateSimpleValue:
		v, err := r.ReadSimpleValue()
		if err != nil {
			return nil, err
		}
		return Simple(v), nil

	case StateHalfPrecisionFloat, StateSinglePrecisionFloat, StateDoublePrecisionFloat:
		v, err := r.ReadFloat()
		if err != nil {
			return nil, err
		}
		return Float(v), nil

	default:
		return nil, NewCborError(ErrInvalidCbor, r.CurrentOffset(), "unexpected reader state for DecodeValue")
	}
}

func decodeArray(r *CborReader) (Value, error) {
	length, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}

	items := make(Array, 0)
	if length >= 0 {
		items = make(Array, 0, length)
	}

	for {
		state, err := r.PeekState()
		if err != nil {
			return nil, err
		}
		if state == StateEndArray {
			break
		}
		item, err := DecodeValue(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeMap(r *CborReader) (Value, error) {
	if _, err := r.ReadStartMap(); err != nil {
		return nil, err
	}

	m := NewMap()
	for {
		state, err := r.PeekState()
		if err != nil {
			return nil, err
		}
		if state == StateEndMap {
			break
		}
		key, err := DecodeValue(r)
		if err != nil {
			return nil, err
		}
		value, err := DecodeValue(r)
		if err != nil {
			return nil, err
		}
		if err := m.Entries().Set(key, value); err != nil {
			return nil, err
		}
	}

	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeTag interprets tags 2 and 3 (bignums) inline, per §4.2 of the
// distilled spec; every other tag number decodes to a first-class Tag
// value wrapping its inner item.
func decodeTag(r *CborReader) (Value, error) {
	tag, err := r.ReadTag()
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagUnsignedBignum:
		data, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		return BigInt{V: new(big.Int).SetBytes(data)}, nil

	case TagNegativeBignum:
		data, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		n := new(big.Int).SetBytes(data)
		n.Add(n, big.NewInt(1))
		n.Neg(n)
		return BigInt{V: n}, nil
	}

	inner, err := DecodeValue(r)
	if err != nil {
		return nil, err
	}
	return Tag{Number: uint64(tag), Inner: inner}, nil
}
