package node

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/respkit/respd/log"
)

// Server accepts TCP clients and runs one goroutine per connection. The
// connections share no mutable state; a failure on one never affects the
// others.
type Server struct {
	addr     string
	commands *CommandTable
}

func NewServer(addr string) *Server {
	return &Server{
		addr:     addr,
		commands: NewCommandTable(),
	}
}

// Run listens on the configured address and serves until SIGINT, SIGTERM
// or SIGQUIT.
func (s *Server) Run() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	lc := listenConfig()
	ln, err := lc.Listen(context.Background(), "tcp", s.addr)
	if err != nil {
		log.Logger.Error("listen error", zap.Error(err))
		return err
	}
	defer ln.Close()

	log.Logger.Info("listening on", zap.String("addr", ln.Addr().String()))
	go s.Serve(ln)

	<-sigCh
	log.Logger.Info("shutting down server")
	return nil
}

// Serve accepts clients from ln until the listener is closed.
func (s *Server) Serve(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Logger.Error("accept error", zap.Error(err))
			return
		}
		go s.handleClient(conn)
	}
}

func (s *Server) handleClient(nc net.Conn) {
	defer nc.Close()
	remote := nc.RemoteAddr().String()
	log.Logger.Info("accepted new connection", zap.String("remote", remote))

	c := NewConn(nc)
	for {
		name, args, err := c.ReadCommand()
		if err != nil {
			if errors.Is(err, ErrPeerClosed) {
				log.Logger.Info("client closed connection", zap.String("remote", remote))
				return
			}
			log.Logger.Warn("closing connection", zap.String("remote", remote), zap.Error(err))
			// Best effort: surface the failure on the wire before closing.
			_ = c.WriteAll(sharedProtoErr)
			return
		}
		if err := s.commands.Dispatch(c, name, args); err != nil {
			log.Logger.Error("write error", zap.String("remote", remote), zap.Error(err))
			return
		}
	}
}
