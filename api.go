package cbor

import (
	"errors"
	"io"

	"github.com/wiretype/cbor/stream"
)

// EncodeToBytes encodes v to a freshly allocated byte slice.
func EncodeToBytes(v Value) ([]byte, error) {
	w := NewCborWriter()
	if err := EncodeValue(w, v); err != nil {
		return nil, err
	}
	return w.BytesCopy(), nil
}

// DecodeFromBytes decodes the first complete item from data. Trailing
// bytes after the root value are rejected with ErrNotAtEnd; use
// DecodeFromBytesAllowTrailing, or a Decoder over bytes.NewReader(data), to
// read concatenated top-level items.
func DecodeFromBytes(data []byte) (Value, error) {
	v, n, err := decodeFromBytes(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, ErrNotAtEnd
	}
	return v, nil
}

// DecodeFromBytesAllowTrailing decodes the first complete item from data
// and returns it along with the number of bytes consumed, ignoring any
// trailing bytes.
func DecodeFromBytesAllowTrailing(data []byte) (Value, int, error) {
	return decodeFromBytes(data)
}

func decodeFromBytes(data []byte) (Value, int, error) {
	if len(data) == 0 {
		return nil, 0, ErrInvalidInput
	}
	r := NewCborReader(data)
	v, err := DecodeValue(r)
	if err != nil {
		return nil, 0, err
	}
	return v, r.CurrentOffset(), nil
}

// EncodeToSink encodes v and writes the result to sink in one push. The
// encoder still builds only this single item's bytes before flushing, so a
// caller streaming many top-level items keeps bounded memory per item
// rather than per stream.
func EncodeToSink(v Value, sink io.Writer) error {
	data, err := EncodeToBytes(v)
	if err != nil {
		return err
	}
	return stream.NewSink(sink).Write(data)
}

// DecodeFromSource decodes a single top-level Value read incrementally
// from source, requesting only the bytes each item declares rather than
// buffering the whole stream (§4.5 of SPEC_FULL.md). Unlike Decoder, which
// is meant for looping over concatenated items and so reports a clean end
// of stream as io.EOF, this single-shot entry point treats an
// immediately-empty source as ErrInvalidInput. For repeated calls over the
// same concatenated stream, construct a Decoder instead so the internal
// buffering carries over between items.
func DecodeFromSource(source io.Reader) (Value, error) {
	v, err := NewDecoder(source).Decode()
	if errors.Is(err, io.EOF) {
		return nil, ErrInvalidInput
	}
	return v, err
}

// Decoder reads successive top-level CBOR items from a single io.Reader,
// supporting the distilled spec's "concatenated items" streaming mode
// (§4.6): each call to Decode returns the next item.
type Decoder struct {
	src      *stream.Source
	maxDepth int
}

// NewDecoder wraps r in a Decoder using defaultMaxNestingDepth as the
// recursion guard, matching NewCborReader's own default.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: stream.NewSource(r), maxDepth: defaultMaxNestingDepth}
}

// WithMaxDepth overrides the recursion guard for subsequent Decode calls.
func (d *Decoder) WithMaxDepth(depth int) *Decoder {
	d.maxDepth = depth
	return d
}

// Decode reads and returns the next top-level item. It returns io.EOF
// (unwrapped) when the stream has been fully consumed between items.
func (d *Decoder) Decode() (Value, error) {
	return decodeFromSource(d.src, d.maxDepth)
}

// A Decoder over bytes.NewReader(data) is the idiomatic way to read
// concatenated items from an in-memory buffer:
//
//	dec := NewDecoder(bytes.NewReader(data))
//	for {
//		v, err := dec.Decode()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		...
//	}
