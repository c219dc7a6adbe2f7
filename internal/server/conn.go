package server

import (
	"errors"
	"net"
	"strconv"

	"github.com/DylanGreen12/simple-http-server/internal/headers"
	"github.com/DylanGreen12/simple-http-server/internal/request"
	"github.com/DylanGreen12/simple-http-server/internal/response"
	"github.com/DylanGreen12/simple-http-server/internal/site"
)

// serveConn handles exactly one request on one connection: read, dispatch,
// write, close. Fully synchronous and blocking; nothing here can touch
// another connection. The Connection response header may say keep-alive,
// but the connection is closed after one request regardless.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("handler panic: %v", r)
		}
	}()

	req, err := request.FromReader(conn)
	if err != nil {
		if errors.Is(err, request.ErrMalformedRequestLine) {
			s.send(conn, s.site.ErrorSpec(response.StatusBadRequest))
			return
		}
		// Connection-level failure: log and hang up, no response.
		s.logger.Printf("read request: %v", err)
		return
	}

	s.logRequest(req)
	s.send(conn, s.site.Respond(req))
}

// send renders a response spec onto the wire. A write failure ends this
// request's handling immediately; the client sees an abrupt close rather
// than a half-framed response growing any further.
func (s *Server) send(conn net.Conn, spec *site.ResponseSpec) {
	h := headers.New()
	h.Set("Content-Type", spec.ContentType)
	h.Set("Content-Length", strconv.Itoa(len(spec.Body)))
	h.Set("Connection", spec.Connection)

	s.logResponse(spec, h)

	w := response.NewWriter(conn, s.proto)
	if err := w.WriteStatusLine(spec.Status); err != nil {
		s.logger.Printf("write status line: %v", err)
		return
	}
	if err := w.WriteHeaders(h); err != nil {
		s.logger.Printf("write headers: %v", err)
		return
	}
	if err := w.WriteBody(spec.Body); err != nil {
		s.logger.Printf("write body: %v", err)
	}
}

// logRequest and logResponse satisfy the observability contract: the
// request line and headers in, the status line and headers out, never the
// body.
func (s *Server) logRequest(req *request.Request) {
	s.logger.Printf("request: %s", req.RequestLine())
	for _, f := range req.Headers.All() {
		s.logger.Printf("  %s: %s", f.Name, f.Value)
	}
}

func (s *Server) logResponse(spec *site.ResponseSpec, h *headers.Headers) {
	s.logger.Printf("response: %s %d %s", s.proto, spec.Status, response.StatusText(spec.Status))
	for _, f := range h.All() {
		s.logger.Printf("  %s: %s", f.Name, f.Value)
	}
}
