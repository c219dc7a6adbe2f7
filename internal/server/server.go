package server

import (
	"io"
	"log"
	"net"
	"sync/atomic"

	"github.com/DylanGreen12/simple-http-server/internal/config"
	"github.com/DylanGreen12/simple-http-server/internal/site"
)

// Server accepts connections sequentially and hands each one to its own
// goroutine. That goroutine-per-connection spawn is the only concurrency in
// the system; handlers share nothing mutable.
type Server struct {
	proto    string
	site     *site.Site
	logger   *log.Logger
	listener net.Listener
	closed   atomic.Bool
}

// Serve binds the configured address and starts the accept loop in the
// background. The returned Server stays up until Close.
func Serve(cfg *config.Config, st *site.Site, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		proto:    cfg.Protocol,
		site:     st,
		logger:   logger,
		listener: listener,
	}

	go s.listen()
	return s, nil
}

// Addr returns the bound address, useful when the config asked for port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) listen() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return
			}
			s.logger.Printf("accept error: %v", err)
			continue
		}

		go s.serveConn(conn)
	}
}

func (s *Server) Close() error {
	s.closed.Store(true)
	return s.listener.Close()
}
