package stream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReadFullExact(t *testing.T) {
	src := NewSource(bytes.NewReader([]byte{1, 2, 3, 4, 5}))

	got, err := src.ReadFull(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got, err = src.ReadFull(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5}, got)
}

func TestSourceReadFullCleanEOF(t *testing.T) {
	src := NewSource(bytes.NewReader(nil))
	_, err := src.ReadFull(1)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSourceReadFullShortRead(t *testing.T) {
	src := NewSource(bytes.NewReader([]byte{1, 2}))
	_, err := src.ReadFull(5)
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestSourcePeekDoesNotConsume(t *testing.T) {
	src := NewSource(bytes.NewReader([]byte{0xAB, 0xCD}))

	b, err := src.Peek()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	got, err := src.ReadFull(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0xCD}, got)
}

func TestSourceAtEOF(t *testing.T) {
	src := NewSource(bytes.NewReader([]byte{1}))
	assert.False(t, src.AtEOF())

	_, err := src.ReadFull(1)
	require.NoError(t, err)
	assert.True(t, src.AtEOF())
}

func TestSinkWriteAppends(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	require.NoError(t, sink.Write([]byte("hello ")))
	require.NoError(t, sink.Write([]byte("world")))

	assert.Equal(t, "hello world", buf.String())
}
