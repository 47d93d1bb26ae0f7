package node

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respkit/respd/resp"
)

// fakeTransport feeds reads from a fixed input and captures writes.
type fakeTransport struct {
	in  bytes.Buffer
	out bytes.Buffer
}

func newFakeTransport(input string) *fakeTransport {
	t := &fakeTransport{}
	t.in.WriteString(input)
	return t
}

func (t *fakeTransport) Read(p []byte) (int, error) {
	if t.in.Len() == 0 {
		return 0, io.EOF
	}
	return t.in.Read(p)
}

func (t *fakeTransport) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func TestReadCommandPing(t *testing.T) {
	c := NewConn(newFakeTransport("*1\r\n$4\r\nPING\r\n"))

	name, args, err := c.ReadCommand()
	require.NoError(t, err)
	assert.Equal(t, "PING", name)
	assert.Len(t, args, 0)
}

func TestReadCommandNormalizesCase(t *testing.T) {
	c := NewConn(newFakeTransport("*1\r\n$4\r\nping\r\n"))

	name, _, err := c.ReadCommand()
	require.NoError(t, err)
	assert.Equal(t, "PING", name)
}

func TestReadCommandEcho(t *testing.T) {
	c := NewConn(newFakeTransport("*2\r\n$4\r\nECHO\r\n$2\r\nhi\r\n"))

	name, args, err := c.ReadCommand()
	require.NoError(t, err)
	assert.Equal(t, "ECHO", name)
	require.Len(t, args, 1)
	assert.Equal(t, resp.TypeBulk, args[0].Kind)
	assert.Equal(t, []byte("hi"), args[0].Data)
}

func TestReadCommandOverDeclaredArray(t *testing.T) {
	// declaredLen=2 with a single element surfaces the failed child parse.
	c := NewConn(newFakeTransport("*2\r\n$4\r\nPING\r\n"))

	_, _, err := c.ReadCommand()
	require.ErrorIs(t, err, resp.ErrEmptyInput)
}

func TestReadCommandNotAnArray(t *testing.T) {
	c := NewConn(newFakeTransport("+PING\r\n"))

	_, _, err := c.ReadCommand()
	require.ErrorIs(t, err, ErrInvalidCommandShape)
}

func TestReadCommandEmptyArray(t *testing.T) {
	c := NewConn(newFakeTransport("*0\r\n"))

	_, _, err := c.ReadCommand()
	require.ErrorIs(t, err, ErrInvalidCommandShape)
}

func TestReadCommandNameNotAString(t *testing.T) {
	c := NewConn(newFakeTransport("*1\r\n:1\r\n"))

	_, _, err := c.ReadCommand()
	require.ErrorIs(t, err, resp.ErrNotAString)
}

func TestReadValuePeerClosed(t *testing.T) {
	c := NewConn(newFakeTransport(""))

	_, err := c.ReadValue()
	require.ErrorIs(t, err, ErrPeerClosed)
}

func TestReadValueUnderFullBufferIsError(t *testing.T) {
	c := NewConn(newFakeTransport("$5\r\nh"))

	_, err := c.ReadValue()
	var overrun *resp.BulkOverrunError
	require.ErrorAs(t, err, &overrun)
}

func TestReadCommandRetainsPipelinedLeftover(t *testing.T) {
	// Both commands arrive in one transport read. The second ReadCommand
	// must be served from the retained leftover: the transport is already
	// drained and a read would report EOF.
	c := NewConn(newFakeTransport("*1\r\n$4\r\nPING\r\n*2\r\n$4\r\nECHO\r\n$2\r\nhi\r\n"))

	name, _, err := c.ReadCommand()
	require.NoError(t, err)
	assert.Equal(t, "PING", name)

	name, args, err := c.ReadCommand()
	require.NoError(t, err)
	assert.Equal(t, "ECHO", name)
	require.Len(t, args, 1)
	assert.Equal(t, []byte("hi"), args[0].Data)

	_, _, err = c.ReadCommand()
	require.ErrorIs(t, err, ErrPeerClosed)
}

func TestWriteAll(t *testing.T) {
	tr := newFakeTransport("")
	c := NewConn(tr)

	require.NoError(t, c.WriteAll([]byte("+PONG\r\n")))
	assert.Equal(t, "+PONG\r\n", tr.out.String())
}
