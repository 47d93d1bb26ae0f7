package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respkit/respd/resp"
)

func dispatch(t *testing.T, name string, args ...resp.Value) string {
	t.Helper()
	tr := newFakeTransport("")
	c := NewConn(tr)
	require.NoError(t, NewCommandTable().Dispatch(c, name, args))
	return tr.out.String()
}

func TestPingCommand(t *testing.T) {
	assert.Equal(t, "+PONG\r\n", dispatch(t, "PING"))
}

func TestEchoCommand(t *testing.T) {
	out := dispatch(t, "ECHO", resp.NewBulk([]byte("hi")))
	assert.Equal(t, "$2\r\nhi\r\n", out)
}

func TestEchoCommandWrongArity(t *testing.T) {
	assert.Equal(t, "-wrong number of arguments for command\r\n", dispatch(t, "ECHO"))
	assert.Equal(t, "-wrong number of arguments for command\r\n",
		dispatch(t, "ECHO", resp.NewBulk([]byte("a")), resp.NewBulk([]byte("b"))))
}

func TestEchoCommandNonBulkArgumentProducesNoReply(t *testing.T) {
	assert.Equal(t, "", dispatch(t, "ECHO", resp.NewInteger(7)))
}

func TestUnsupportedCommand(t *testing.T) {
	assert.Equal(t, "-unsupported command\r\n", dispatch(t, "FLUSHALL"))
}

func TestRegisterCustomCommand(t *testing.T) {
	table := NewCommandTable()
	table.Register("shout", func(c *Conn, args []resp.Value) error {
		return c.WriteAll([]byte("+LOUD\r\n"))
	})

	tr := newFakeTransport("")
	require.NoError(t, table.Dispatch(NewConn(tr), "SHOUT", nil))
	assert.Equal(t, "+LOUD\r\n", tr.out.String())
}
