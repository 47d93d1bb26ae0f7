package cmd

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/respkit/respd/resp"
)

const (
	cliHistFileEnv     = "RESPD_HISTFILE"
	cliHistFileDefault = ".respd_history"

	replyBufferSize = 64 * 1024
)

// RunCLI connects to a server and runs a read-eval-print loop: each input
// line is sent as a RESP array of bulk strings and the reply is rendered.
// With a terminal on stdin it offers line editing and history; otherwise it
// consumes lines from stdin verbatim.
func RunCLI(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", addr, err)
	}
	defer conn.Close()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		return runInteractive(conn, addr)
	}
	return runPiped(conn)
}

func runInteractive(conn net.Conn, addr string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, err := line.Prompt(addr + "> ")
		if err != nil {
			// Ctrl-C or EOF ends the session.
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if strings.EqualFold(input, "quit") || strings.EqualFold(input, "exit") {
			return nil
		}
		reply, err := roundTrip(conn, strings.Fields(input))
		if err != nil {
			return err
		}
		fmt.Print(reply)
	}
}

func runPiped(conn net.Conn) error {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		reply, err := roundTrip(conn, fields)
		if err != nil {
			return err
		}
		fmt.Print(reply)
	}
	return sc.Err()
}

func historyPath() string {
	if p := os.Getenv(cliHistFileEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return cliHistFileDefault
	}
	return filepath.Join(home, cliHistFileDefault)
}

// roundTrip sends one command and performs a single reply read.
func roundTrip(conn net.Conn, fields []string) (string, error) {
	args := make([]resp.Value, 0, len(fields))
	for _, f := range fields {
		args = append(args, resp.NewBulk([]byte(f)))
	}
	if _, err := conn.Write(resp.NewArray(args...).Encode()); err != nil {
		return "", err
	}

	buf := make([]byte, replyBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		return "", err
	}
	return renderReply(buf[:n]), nil
}

// renderReply pretty-prints one reply. Error replies branch before parsing
// since the parser accepts only the + : $ * tags.
func renderReply(raw []byte) string {
	if len(raw) > 0 && raw[0] == byte(resp.TypeError) {
		msg := strings.TrimSuffix(string(raw[1:]), resp.CRLF)
		return fmt.Sprintf("(error) %s\n", msg)
	}
	v, _, err := resp.ParseBytes(raw)
	if err != nil {
		return fmt.Sprintf("(protocol error) %v\n", err)
	}
	return render(v)
}

func render(v resp.Value) string {
	switch v.Kind {
	case resp.TypeSimple:
		return v.Str + "\n"
	case resp.TypeInteger:
		return fmt.Sprintf("(integer) %d\n", v.Num)
	case resp.TypeBulk:
		return fmt.Sprintf("%q\n", v.Data)
	case resp.TypeArray:
		if len(v.Elems) == 0 {
			return "(empty array)\n"
		}
		var b strings.Builder
		for i, e := range v.Elems {
			fmt.Fprintf(&b, "%d) %s", i+1, render(e))
		}
		return b.String()
	default:
		return v.String() + "\n"
	}
}
