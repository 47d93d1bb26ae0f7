package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a parse starts on an exhausted cursor,
	// including inside array recursion when a declared length overruns the
	// actual payload.
	ErrEmptyInput = errors.New("resp: empty input")

	// ErrMissingTerminator is returned when a field is not closed by CRLF.
	ErrMissingTerminator = errors.New(`resp: missing "\r\n" terminator`)

	// ErrEncoding is returned when a string payload is not valid UTF-8.
	ErrEncoding = errors.New("resp: invalid UTF-8 in string payload")

	// ErrNestingTooDeep is returned when arrays nest beyond MaxNestingDepth.
	ErrNestingTooDeep = errors.New("resp: nesting too deep")

	// ErrOutOfBounds is returned by cursor operations that reach past the
	// remaining bytes.
	ErrOutOfBounds = errors.New("resp: out of bounds")

	// ErrNotAString is returned by Value.AsString for variants that do not
	// carry string data.
	ErrNotAString = errors.New("resp: value cannot be converted to string")
)

// UnknownTypeError is returned when the leading tag byte is none of
// + : $ *.
type UnknownTypeError struct {
	Tag byte
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("resp: unknown type tag %q", e.Tag)
}

// InvalidIntegerError is returned when an integer field holds non-numeric
// text.
type InvalidIntegerError struct {
	Text string
}

func (e *InvalidIntegerError) Error() string {
	return fmt.Sprintf("resp: invalid integer %q", e.Text)
}

// BulkOverrunError is returned when a bulk string declares more bytes than
// the buffer can hold together with its CRLF terminator. An under-full
// buffer is a protocol error here, never a request for more bytes.
type BulkOverrunError struct {
	Declared  int64
	Available int64
}

func (e *BulkOverrunError) Error() string {
	return fmt.Sprintf("resp: cannot read %d bytes from buffer of size %d accounting for %q ending",
		e.Declared, e.Available, CRLF)
}
