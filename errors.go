package cbor

import (
	"errors"
	"fmt"
)

// Common CBOR errors.
var (
	// ErrUnexpectedEndOfData is returned when the data ends unexpectedly.
	ErrUnexpectedEndOfData = errors.New("cbor: unexpected end of data")

	// ErrInvalidCbor is returned when the CBOR data is malformed.
	ErrInvalidCbor = errors.New("cbor: invalid CBOR data")

	// ErrInvalidMajorType is returned when an unexpected major type is encountered.
	ErrInvalidMajorType = errors.New("cbor: invalid major type")

	// ErrInvalidSimpleValue is returned when an invalid simple value is encountered.
	ErrInvalidSimpleValue = errors.New("cbor: invalid simple value")

	// ErrInvalidUtf8 is returned when a text string contains invalid UTF-8.
	ErrInvalidUtf8 = errors.New("cbor: invalid UTF-8 in text string")

	// ErrOverflow is returned when a value overflows the target type.
	ErrOverflow = errors.New("cbor: integer overflow")

	// ErrUnexpectedBreak is returned when a break byte is encountered unexpectedly.
	ErrUnexpectedBreak = errors.New("cbor: unexpected break")

	// ErrNonCanonical is returned in strict/canonical mode when encoding is non-canonical.
	ErrNonCanonical = errors.New("cbor: non-canonical encoding")

	// ErrNotAtEnd is returned when there is remaining data after the root value.
	ErrNotAtEnd = errors.New("cbor: unexpected data after root value")

	// ErrInvalidState is returned when an operation is attempted in an invalid state.
	ErrInvalidState = errors.New("cbor: invalid reader state for this operation")

	// ErrDuplicateKey reports a duplicate key in a map. The reader and writer
	// in this package do not check for duplicate keys in any conformance
	// mode, so they never return it.
	ErrDuplicateKey = errors.New("cbor: duplicate key in map")

	// ErrUnsortedKeys reports map keys that are not sorted. The reader and
	// writer in this package do not check key order in any conformance mode,
	// so they never return it.
	ErrUnsortedKeys = errors.New("cbor: map keys are not sorted")

	// ErrIndefiniteLengthNotAllowed is returned when indefinite length is used in canonical mode.
	ErrIndefiniteLengthNotAllowed = errors.New("cbor: indefinite length not allowed in canonical mode")

	// ErrBufferTooSmall reports a buffer too small for an operation. The
	// reader and writer in this package grow or slice their own buffers and
	// never return it.
	ErrBufferTooSmall = errors.New("cbor: buffer too small")

	// ErrNestingDepthExceeded is returned when the maximum nesting depth is exceeded.
	ErrNestingDepthExceeded = errors.New("cbor: maximum nesting depth exceeded")

	// ErrMissingBreak is returned when an indefinite-length item is not terminated.
	ErrMissingBreak = errors.New("cbor: missing break for indefinite-length item")

	// ErrIncompleteContainer is returned when a container has fewer items than expected.
	ErrIncompleteContainer = errors.New("cbor: incomplete container")

	// ErrExtraItems is returned when a container has more items than expected.
	ErrExtraItems = errors.New("cbor: extra items in container")

	// ErrInvalidInput is returned by a top-level decode entry point given
	// nil or empty input.
	ErrInvalidInput = errors.New("cbor: invalid input")

	// ErrUnsupportedValue is returned by EncodeValue when given a Value
	// implementation the encoder does not recognize.
	ErrUnsupportedValue = errors.New("cbor: unsupported value")

	// ErrUnknownTag is returned by a tagmap.Mapper decode when the tag
	// number has no registration and RaiseOnUnknownTag is set.
	ErrUnknownTag = errors.New("cbor: unknown tag")
)

// CborError provides detailed error information.
type CborError struct {
	Err     error
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *CborError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cbor error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("cbor error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *CborError) Unwrap() error {
	return e.Err
}

// NewCborError creates a new CborError.
func NewCborError(err error, offset int, message string) *CborError {
	return &CborError{
		Err:     err,
		Offset:  offset,
		Message: message,
	}
}

// TypeMismatchError is returned when the expected type doesn't match the actual type.
type TypeMismatchError struct {
	Expected CborReaderState
	Actual   CborReaderState
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cbor: expected %s but got %s", e.Expected, e.Actual)
}
