package request

import (
	"strings"

	"github.com/DylanGreen12/simple-http-server/internal/headers"
)

// Request is a parsed inbound request: the request line plus every header
// line up to the blank line. The body, if any, is never read; only GET is
// served and GET bodies are ignored.
type Request struct {
	Method  string
	Target  string
	Version string
	Headers *headers.Headers
}

// WantsKeepAlive reports whether the request asked for the connection to be
// kept open. Name and value are matched case-insensitively; the value only
// has to contain "keep-alive".
func (r *Request) WantsKeepAlive() bool {
	v, ok := r.Headers.Get("Connection")
	return ok && strings.Contains(strings.ToLower(v), "keep-alive")
}

// RequestLine reconstructs the first line for logging.
func (r *Request) RequestLine() string {
	if r.Version == "" {
		return r.Method + " " + r.Target
	}
	return r.Method + " " + r.Target + " " + r.Version
}
