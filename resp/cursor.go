package resp

import "bytes"

var crlf = []byte(CRLF)

// Cursor is a consumable view over the unconsumed remainder of a read
// buffer. Taking a prefix re-slices the view, it never copies; the caller
// keeps ownership of the backing array.
type Cursor struct {
	buf []byte
}

func NewCursor(b []byte) Cursor {
	return Cursor{buf: b}
}

func (c Cursor) Len() int {
	return len(c.buf)
}

func (c Cursor) Empty() bool {
	return len(c.buf) == 0
}

// Bytes exposes the remaining view without consuming it.
func (c Cursor) Bytes() []byte {
	return c.buf
}

// TakePrefix removes and returns the first n bytes, advancing the cursor.
func (c *Cursor) TakePrefix(n int) ([]byte, error) {
	if n < 0 || n > len(c.buf) {
		return nil, ErrOutOfBounds
	}
	prefix := c.buf[:n]
	c.buf = c.buf[n:]
	return prefix, nil
}

// DropPrefix advances past the first n bytes without returning them.
func (c *Cursor) DropPrefix(n int) error {
	if n < 0 || n > len(c.buf) {
		return ErrOutOfBounds
	}
	c.buf = c.buf[n:]
	return nil
}

// FindCRLF returns the index of the first "\r\n" in the remaining bytes, or
// -1 if there is none. It does not consume.
func (c Cursor) FindCRLF() int {
	return bytes.Index(c.buf, crlf)
}
