package node

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/respkit/respd/log"
	"github.com/respkit/respd/resp"
)

// Shared reply lines, written verbatim.
var (
	sharedPong        = []byte("+PONG" + resp.CRLF)
	sharedWrongArity  = []byte("-wrong number of arguments for command" + resp.CRLF)
	sharedUnsupported = []byte("-unsupported command" + resp.CRLF)
	sharedProtoErr    = []byte("-ERR protocol error" + resp.CRLF)
)

// HandlerFunc produces the reply for one command through the connection's
// write primitive. A returned error is a transport failure and terminates
// the connection; command-level failures are written as error replies and
// return nil.
type HandlerFunc func(c *Conn, args []resp.Value) error

// CommandTable maps normalized command names to handlers.
type CommandTable struct {
	handlers map[string]HandlerFunc
}

func NewCommandTable() *CommandTable {
	t := &CommandTable{handlers: make(map[string]HandlerFunc)}
	t.Register("PING", pingCommand)
	t.Register("ECHO", echoCommand)
	return t
}

func (t *CommandTable) Register(name string, h HandlerFunc) {
	t.handlers[strings.ToUpper(name)] = h
}

func (t *CommandTable) Dispatch(c *Conn, name string, args []resp.Value) error {
	h, ok := t.handlers[name]
	if !ok {
		return c.WriteAll(sharedUnsupported)
	}
	return h(c, args)
}

func pingCommand(c *Conn, _ []resp.Value) error {
	return c.WriteAll(sharedPong)
}

func echoCommand(c *Conn, args []resp.Value) error {
	if len(args) != 1 {
		return c.WriteAll(sharedWrongArity)
	}
	arg := args[0]
	if arg.Kind != resp.TypeBulk {
		log.Logger.Warn("unexpected ECHO argument", zap.String("value", arg.String()))
		return nil
	}

	// The reply goes out as separate segments, each write checked.
	if err := c.WriteAll([]byte(fmt.Sprintf("$%d%s", len(arg.Data), resp.CRLF))); err != nil {
		return err
	}
	if err := c.WriteAll(arg.Data); err != nil {
		return err
	}
	return c.WriteAll([]byte(resp.CRLF))
}
