// Package stream adapts the Go standard io.Reader/io.Writer interfaces to
// the bounded-buffering byte source/sink contract the CBOR decoder and
// encoder pull from and push to: a source hands back exactly the n bytes
// each request asks for, and a sink appends one byte slice at a time. The
// source reads the underlying io.Reader through a bufio.Reader, so it may
// consume bytes from that reader beyond the current item into its buffer;
// those bytes are only reachable through the same Source. It is grounded on
// creachadair/binpack's use of bufio for incremental tag-value reads over an
// io.Reader.
package stream

import (
	"bufio"
	"errors"
	"io"
)

// ErrShortRead is returned by Source.ReadFull when the underlying reader
// produced fewer bytes than requested before reaching end of stream, i.e.
// the source ended in the middle of a declared item.
var ErrShortRead = errors.New("stream: unexpected end of stream mid-item")

// Source pulls bytes from an io.Reader with a small internal buffer so
// callers can request exactly the number of bytes the current CBOR item
// needs without the decoder managing its own lookahead.
type Source struct {
	r *bufio.Reader
}

// NewSource wraps r as a Source. If r is already a *bufio.Reader it is used
// directly rather than double-buffered.
func NewSource(r io.Reader) *Source {
	if br, ok := r.(*bufio.Reader); ok {
		return &Source{r: br}
	}
	return &Source{r: bufio.NewReader(r)}
}

// ReadFull reads exactly n bytes. It returns io.EOF (unwrapped, so
// errors.Is(err, io.EOF) succeeds) only when zero bytes were available at
// the start of the call, meaning the stream ended cleanly between items.
// A stream that ends after some but not all of the n bytes is reported as
// ErrShortRead: the stream ended in the middle of a declared item's bytes.
// Any other read error from the underlying reader is returned as is.
func (s *Source) ReadFull(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(s.r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) && read == 0 {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortRead
		}
		return nil, err
	}
	return buf, nil
}

// Peek returns the next byte without consuming it. It returns io.EOF if the
// stream has no more bytes.
func (s *Source) Peek() (byte, error) {
	b, err := s.r.Peek(1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	return b[0], nil
}

// AtEOF reports whether the source has no more bytes available without
// blocking further than the underlying reader already has.
func (s *Source) AtEOF() bool {
	_, err := s.r.Peek(1)
	return errors.Is(err, io.EOF)
}

// Sink appends byte slices to an io.Writer.
type Sink struct {
	w io.Writer
}

// NewSink wraps w as a Sink.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Write appends p to the sink in full, or returns the first write error.
func (s *Sink) Write(p []byte) error {
	_, err := s.w.Write(p)
	return err
}
