package response

import (
	"fmt"
	"io"

	"github.com/DylanGreen12/simple-http-server/internal/headers"
)

// DefaultProtocol is the version stamped on status lines. It is a
// deployment choice, never negotiated from the request's declared version.
const DefaultProtocol = "HTTP/1.1"

// writerState tracks what's been written so far.
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
	stateBodyWritten
)

// Writer writes one framed HTTP response to an io.Writer, enforcing the
// status line -> headers -> body order.
type Writer struct {
	w        io.Writer
	proto    string
	state    writerState
	status   StatusCode
	hadError bool
}

// NewWriter creates a response writer. An empty proto means DefaultProtocol.
func NewWriter(w io.Writer, proto string) *Writer {
	if proto == "" {
		proto = DefaultProtocol
	}
	return &Writer{
		w:     w,
		proto: proto,
		state: stateStart,
	}
}

// WriteStatusLine writes "<proto> <code> <reason>\r\n".
func (w *Writer) WriteStatusLine(code StatusCode) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	statusLine := fmt.Sprintf("%s %d %s\r\n", w.proto, code, StatusText(code))
	if _, err := w.w.Write([]byte(statusLine)); err != nil {
		w.hadError = true
		return err
	}

	w.status = code
	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes the header fields in order, then the blank line.
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("must write status line before headers")
	}

	for _, f := range h.All() {
		headerLine := fmt.Sprintf("%s: %s\r\n", f.Name, f.Value)
		if _, err := w.w.Write([]byte(headerLine)); err != nil {
			w.hadError = true
			return err
		}
	}

	if _, err := w.w.Write([]byte("\r\n")); err != nil {
		w.hadError = true
		return err
	}

	w.state = stateHeadersWritten
	return nil
}

// WriteBody writes the body bytes verbatim.
func (w *Writer) WriteBody(data []byte) error {
	if w.state != stateHeadersWritten {
		return fmt.Errorf("must write headers before body")
	}

	if len(data) > 0 {
		if _, err := w.w.Write(data); err != nil {
			w.hadError = true
			return err
		}
	}

	w.state = stateBodyWritten
	return nil
}

// HadError reports whether any write on the connection failed.
func (w *Writer) HadError() bool {
	return w.hadError
}

// StatusCode returns the status written so far (zero before the status line).
func (w *Writer) StatusCode() StatusCode {
	return w.status
}
