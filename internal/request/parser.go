package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DylanGreen12/simple-http-server/internal/headers"
)

var (
	// ErrMalformedRequestLine means the first line held fewer than two
	// whitespace-separated tokens. This is the only parse failure that
	// still gets an HTTP response (400).
	ErrMalformedRequestLine = errors.New("malformed request line")

	// ErrIncompleteRequest means the stream ended before the blank line
	// that terminates the header section.
	ErrIncompleteRequest = errors.New("stream ended before request was complete")
)

// parserState tracks how far the incremental parser has advanced.
type parserState int

const (
	stateRequestLine parserState = iota
	stateHeaders
	stateDone
)

type parser struct {
	state parserState
}

// FromReader reads one request from the stream: a request line, then header
// lines until a blank line. Data past the blank line is left unread.
func FromReader(r io.Reader) (*Request, error) {
	req := &Request{Headers: headers.New()}
	p := &parser{state: stateRequestLine}

	buf := make([]byte, 1024)
	bufLen := 0

	for p.state != stateDone {
		if bufLen == len(buf) {
			grown := make([]byte, len(buf)*2)
			copy(grown, buf[:bufLen])
			buf = grown
		}

		n, err := r.Read(buf[bufLen:])
		if n > 0 {
			bufLen += n
			consumed, perr := p.parse(buf[:bufLen], req)
			if perr != nil {
				return nil, perr
			}
			copy(buf, buf[consumed:bufLen])
			bufLen -= consumed
		}
		if err != nil {
			if p.state == stateDone {
				break
			}
			if err == io.EOF {
				return nil, ErrIncompleteRequest
			}
			return nil, fmt.Errorf("read request: %w", err)
		}
	}
	return req, nil
}

// parse consumes as much of data as the current state allows and returns the
// number of bytes used. A zero count with no error means more data is needed.
func (p *parser) parse(data []byte, req *Request) (int, error) {
	read := 0
	for p.state != stateDone {
		switch p.state {
		case stateRequestLine:
			idx := bytes.IndexByte(data[read:], '\n')
			if idx == -1 {
				return read, nil
			}
			line := data[read : read+idx]
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			read += idx + 1

			if err := parseRequestLine(string(line), req); err != nil {
				return read, err
			}
			p.state = stateHeaders

		case stateHeaders:
			n, done := req.Headers.Parse(data[read:])
			read += n
			if !done {
				return read, nil
			}
			p.state = stateDone
		}
	}
	return read, nil
}

// parseRequestLine splits the first line on whitespace. The method and the
// target are required; a version token is carried along if present but no
// branching ever happens on it. The target is kept verbatim, query string
// and all, because file lookup is literal.
func parseRequestLine(line string, req *Request) error {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return ErrMalformedRequestLine
	}
	req.Method = tokens[0]
	req.Target = tokens[1]
	if len(tokens) > 2 {
		req.Version = tokens[2]
	}
	return nil
}
