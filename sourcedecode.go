package cbor

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/wiretype/cbor/stream"
)

// decodeFromSource reads one complete top-level Value directly from src,
// requesting only the bytes each item declares (§4.5 of SPEC_FULL.md),
// rather than buffering the whole input the way DecodeFromBytes does.
// maxDepth bounds recursion; depth 0 is the root.
func decodeFromSource(src *stream.Source, maxDepth int) (Value, error) {
	if src.AtEOF() {
		return nil, io.EOF
	}
	return decodeSourceValue(src, 0, maxDepth)
}

func decodeSourceHead(src *stream.Source) (MajorType, byte, uint64, error) {
	b, err := src.ReadFull(1)
	if err != nil {
		return 0, 0, 0, translateSourceErr(err)
	}
	mt, ai := decodeInitialByte(b[0])

	switch {
	case ai < 24:
		return mt, ai, uint64(ai), nil
	case ai == 24:
		raw, err := src.ReadFull(1)
		if err != nil {
			return 0, 0, 0, translateSourceErr(err)
		}
		return mt, ai, uint64(raw[0]), nil
	case ai == 25:
		raw, err := src.ReadFull(2)
		if err != nil {
			return 0, 0, 0, translateSourceErr(err)
		}
		return mt, ai, uint64(binary.BigEndian.Uint16(raw)), nil
	case ai == 26:
		raw, err := src.ReadFull(4)
		if err != nil {
			return 0, 0, 0, translateSourceErr(err)
		}
		return mt, ai, uint64(binary.BigEndian.Uint32(raw)), nil
	case ai == 27:
		raw, err := src.ReadFull(8)
		if err != nil {
			return 0, 0, 0, translateSourceErr(err)
		}
		return mt, ai, binary.BigEndian.Uint64(raw), nil
	case ai == 31:
		return mt, ai, 0, nil
	default:
		return 0, 0, 0, ErrInvalidCbor
	}
}

func translateSourceErr(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrUnexpectedEndOfData
	}
	if errors.Is(err, stream.ErrShortRead) {
		return ErrUnexpectedEndOfData
	}
	return err
}

func decodeSourceValue(src *stream.Source, depth, maxDepth int) (Value, error) {
	if depth > maxDepth {
		return nil, ErrNestingDepthExceeded
	}

	peeked, err := src.Peek()
	if err != nil {
		return nil, translateSourceErr(err)
	}
	if peeked == breakByte {
		return nil, ErrUnexpectedBreak
	}

	mt, ai, arg, err := decodeSourceHead(src)
	if err != nil {
		return nil, err
	}

	switch mt {
	case MajorTypeUnsignedInteger:
		return Uint(arg), nil

	case MajorTypeNegativeInteger:
		return NegInt(arg), nil

	case MajorTypeByteString:
		if ai == byte(AdditionalInfoIndefiniteLength) {
			return decodeSourceIndefiniteBytes(src)
		}
		data, err := src.ReadFull(int(arg))
		if err != nil {
			return nil, translateSourceErr(err)
		}
		return Bytes(data), nil

	case MajorTypeTextString:
		if ai == byte(AdditionalInfoIndefiniteLength) {
			return decodeSourceIndefiniteText(src)
		}
		data, err := src.ReadFull(int(arg))
		if err != nil {
			return nil, translateSourceErr(err)
		}
		if !utf8.Valid(data) {
			return nil, ErrInvalidUtf8
		}
		return Text(string(data)), nil

	case MajorTypeArray:
		return decodeSourceArray(src, ai, arg, depth, maxDepth)

	case MajorTypeMap:
		return decodeSourceMap(src, ai, arg, depth, maxDepth)

	case MajorTypeTag:
		return decodeSourceTag(src, arg, depth, maxDepth)

	case MajorTypeSimpleOrFloat:
		return decodeSourceSimpleOrFloat(src, ai, arg)

	default:
		return nil, ErrInvalidMajorType
	}
}

func decodeSourceIndefiniteBytes(src *stream.Source) (Value, error) {
	var out []byte
	for {
		b, err := src.Peek()
		if err != nil {
			return nil, translateSourceErr(err)
		}
		if b == breakByte {
			if _, err := src.ReadFull(1); err != nil {
				return nil, translateSourceErr(err)
			}
			return Bytes(out), nil
		}
		mt, _, arg, err := decodeSourceHead(src)
		if err != nil {
			return nil, err
		}
		if mt != MajorTypeByteString {
			return nil, ErrInvalidCbor
		}
		chunk, err := src.ReadFull(int(arg))
		if err != nil {
			return nil, translateSourceErr(err)
		}
		out = append(out, chunk...)
	}
}

func decodeSourceIndefiniteText(src *stream.Source) (Value, error) {
	var out []byte
	for {
		b, err := src.Peek()
		if err != nil {
			return nil, translateSourceErr(err)
		}
		if b == breakByte {
			if _, err := src.ReadFull(1); err != nil {
				return nil, translateSourceErr(err)
			}
			if !utf8.Valid(out) {
				return nil, ErrInvalidUtf8
			}
			return Text(string(out)), nil
		}
		mt, _, arg, err := decodeSourceHead(src)
		if err != nil {
			return nil, err
		}
		if mt != MajorTypeTextString {
			return nil, ErrInvalidCbor
		}
		chunk, err := src.ReadFull(int(arg))
		if err != nil {
			return nil, translateSourceErr(err)
		}
		out = append(out, chunk...)
	}
}

func decodeSourceArray(src *stream.Source, ai byte, arg uint64, depth, maxDepth int) (Value, error) {
	items := Array{}
	if ai == byte(AdditionalInfoIndefiniteLength) {
		for {
			b, err := src.Peek()
			if err != nil {
				return nil, translateSourceErr(err)
			}
			if b == breakByte {
				if _, err := src.ReadFull(1); err != nil {
					return nil, translateSourceErr(err)
				}
				return items, nil
			}
			item, err := decodeSourceValue(src, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	for i := uint64(0); i < arg; i++ {
		item, err := decodeSourceValue(src, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeSourceMap(src *stream.Source, ai byte, arg uint64, depth, maxDepth int) (Value, error) {
	m := NewMap()
	if ai == byte(AdditionalInfoIndefiniteLength) {
		for {
			b, err := src.Peek()
			if err != nil {
				return nil, translateSourceErr(err)
			}
			if b == breakByte {
				if _, err := src.ReadFull(1); err != nil {
					return nil, translateSourceErr(err)
				}
				return m, nil
			}
			key, err := decodeSourceValue(src, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			value, err := decodeSourceValue(src, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			if err := m.Entries().Set(key, value); err != nil {
				return nil, err
			}
		}
	}

	for i := uint64(0); i < arg; i++ {
		key, err := decodeSourceValue(src, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		value, err := decodeSourceValue(src, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		if err := m.Entries().Set(key, value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeSourceTag(src *stream.Source, number uint64, depth, maxDepth int) (Value, error) {
	switch CborTag(number) {
	case TagUnsignedBignum:
		inner, err := decodeSourceValue(src, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		bs, ok := inner.(Bytes)
		if !ok {
			return nil, ErrInvalidCbor
		}
		return BigInt{V: new(big.Int).SetBytes(bs)}, nil

	case TagNegativeBignum:
		inner, err := decodeSourceValue(src, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		bs, ok := inner.(Bytes)
		if !ok {
			return nil, ErrInvalidCbor
		}
		n := new(big.Int).SetBytes(bs)
		n.Add(n, big.NewInt(1))
		n.Neg(n)
		return BigInt{V: n}, nil
	}

	inner, err := decodeSourceValue(src, depth+1, maxDepth)
	if err != nil {
		return nil, err
	}
	return Tag{Number: number, Inner: inner}, nil
}

func decodeSourceSimpleOrFloat(src *stream.Source, ai byte, arg uint64) (Value, error) {
	switch ai {
	case byte(SimpleValueFalse):
		return Bool(false), nil
	case byte(SimpleValueTrue):
		return Bool(true), nil
	case byte(SimpleValueNull):
		return Null, nil
	case byte(SimpleValueUndefined):
		return Undefined, nil
	case 24:
		return Simple(arg), nil
	case 25:
		return Float(float64(float16BitsToFloat32(uint16(arg)))), nil
	case 26:
		return Float(float64(math.Float32frombits(uint32(arg)))), nil
	case 27:
		return Float(math.Float64frombits(arg)), nil
	default:
		if ai < 24 {
			return Simple(ai), nil
		}
		return nil, ErrInvalidSimpleValue
	}
}
