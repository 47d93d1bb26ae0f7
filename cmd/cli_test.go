package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReplySimple(t *testing.T) {
	assert.Equal(t, "PONG\n", renderReply([]byte("+PONG\r\n")))
}

func TestRenderReplyError(t *testing.T) {
	assert.Equal(t, "(error) unsupported command\n", renderReply([]byte("-unsupported command\r\n")))
}

func TestRenderReplyInteger(t *testing.T) {
	assert.Equal(t, "(integer) 42\n", renderReply([]byte(":42\r\n")))
}

func TestRenderReplyBulk(t *testing.T) {
	assert.Equal(t, "\"hi\"\n", renderReply([]byte("$2\r\nhi\r\n")))
}

func TestRenderReplyArray(t *testing.T) {
	out := renderReply([]byte("*2\r\n$5\r\nhello\r\n:1\r\n"))
	assert.Equal(t, "1) \"hello\"\n2) (integer) 1\n", out)
}

func TestRenderReplyEmptyArray(t *testing.T) {
	assert.Equal(t, "(empty array)\n", renderReply([]byte("*0\r\n")))
}

func TestRenderReplyMalformed(t *testing.T) {
	out := renderReply([]byte("$5\r\nh"))
	assert.Contains(t, out, "(protocol error)")
}
