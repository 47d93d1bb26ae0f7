package node

import (
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/respkit/respd/log"
	"github.com/respkit/respd/resp"
)

const readChunkSize = 4096

var (
	// ErrPeerClosed is returned when the transport read reports zero bytes
	// or EOF.
	ErrPeerClosed = errors.New("node: peer closed connection")

	// ErrInvalidCommandShape is returned when a read value is not an array
	// with at least one element.
	ErrInvalidCommandShape = errors.New("node: invalid command, array should have at least one element")
)

// Conn owns exactly one transport stream and the bytes accumulated from it.
// It is not safe for concurrent use; one goroutine drives one Conn for the
// lifetime of the client.
type Conn struct {
	rw  io.ReadWriter
	buf []byte // unconsumed leftover, retained between reads
}

func NewConn(rw io.ReadWriter) *Conn {
	return &Conn{rw: rw}
}

// ReadValue returns the next complete RESP value from the connection.
//
// Bytes left over after a parse are retained, so a value already sitting in
// the accumulation buffer is served without touching the transport and
// pipelined commands are not lost. Otherwise exactly one transport read is
// performed; a buffer that still does not hold a complete value is a
// protocol error, not a request for more bytes.
func (c *Conn) ReadValue() (resp.Value, error) {
	if len(c.buf) > 0 {
		if v, err := c.parseBuffered(); err == nil {
			return v, nil
		}
	}

	chunk := make([]byte, readChunkSize)
	n, err := c.rw.Read(chunk)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return resp.Value{}, ErrPeerClosed
		}
		return resp.Value{}, err
	}
	c.buf = append(c.buf, chunk[:n]...)

	v, err := c.parseBuffered()
	if err != nil {
		c.buf = c.buf[:0]
		return resp.Value{}, err
	}
	return v, nil
}

// parseBuffered parses one value from the accumulation buffer. On success
// the leftover is compacted to the front of the buffer; on failure the
// buffer is left untouched.
func (c *Conn) parseBuffered() (resp.Value, error) {
	v, rest, err := resp.ParseBytes(c.buf)
	if err != nil {
		return resp.Value{}, err
	}
	if len(rest) > 0 {
		log.Logger.Debug("retaining leftover bytes after reading value", zap.Int("bytes", len(rest)))
	}
	c.buf = append(c.buf[:0], rest...)
	return v, nil
}

// ReadCommand reads one value and extracts a (command name, arguments)
// pair from it. The value must be an array with at least one element whose
// head converts to a string; the name is normalized to upper case and the
// remaining elements are returned in their original order.
func (c *Conn) ReadCommand() (string, []resp.Value, error) {
	v, err := c.ReadValue()
	if err != nil {
		return "", nil, err
	}
	if v.Kind != resp.TypeArray || v.Num < 1 || len(v.Elems) < 1 {
		return "", nil, ErrInvalidCommandShape
	}
	name, err := v.Elems[0].AsString()
	if err != nil {
		return "", nil, err
	}
	return strings.ToUpper(name), v.Elems[1:], nil
}

// WriteAll writes the whole slice to the transport. Partial writes are not
// retried; callers check the result on every reply segment.
func (c *Conn) WriteAll(b []byte) error {
	_, err := c.rw.Write(b)
	return err
}
