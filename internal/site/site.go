package site

import (
	"errors"
	"fmt"
	"io"
	"log"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/DylanGreen12/simple-http-server/internal/request"
	"github.com/DylanGreen12/simple-http-server/internal/response"
)

// ErrUnreadable marks a file that exists but cannot be served as text: a
// directory, a permission failure, or content that is not valid UTF-8.
// It is kept distinct from plain not-found so dispatch can answer 500
// instead of 404.
var ErrUnreadable = errors.New("file is not readable as text")

// Target is a resolved filesystem location. Content is only present when
// the file exists and was readable. Targets are derived per request and
// never cached.
type Target struct {
	Name    string
	Exists  bool
	Content []byte
}

// ResponseSpec fully determines the wire response: the bytes sent are a
// pure rendering of it.
type ResponseSpec struct {
	Status      response.StatusCode
	ContentType string
	Body        []byte
	Connection  string
}

// defaultMessages are the plain-text bodies used when no custom error page
// is installed for a status.
var defaultMessages = map[response.StatusCode]string{
	response.StatusBadRequest:          "Bad Request",
	response.StatusForbidden:           "Directory traversal not allowed",
	response.StatusNotFound:            "File Not Found",
	response.StatusMethodNotAllowed:    "Method Not Allowed",
	response.StatusInternalServerError: "Error reading file",
}

// Site serves files from a single root filesystem. The root is read-only
// shared state; Site carries no per-request mutability, so one value is
// safely used by every connection handler.
type Site struct {
	fs     billy.Filesystem
	logger *log.Logger
}

func New(fs billy.Filesystem, logger *log.Logger) *Site {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Site{fs: fs, logger: logger}
}

// Respond maps a parsed request to a response spec. Precedence: method,
// then traversal, then existence, then readability.
func (s *Site) Respond(req *request.Request) *ResponseSpec {
	if req.Method != "GET" {
		return s.ErrorSpec(response.StatusMethodNotAllowed)
	}

	name, err := Resolve(req.Target)
	if err != nil {
		s.logger.Printf("blocked directory traversal attempt: %s", req.Target)
		return s.ErrorSpec(response.StatusForbidden)
	}

	t, err := s.load(name)
	if err != nil {
		s.logger.Printf("error reading file %q: %v", name, err)
		return s.ErrorSpec(response.StatusInternalServerError)
	}
	if !t.Exists {
		s.logger.Printf("file not found: %s", name)
		return s.ErrorSpec(response.StatusNotFound)
	}

	connection := "close"
	if req.WantsKeepAlive() {
		connection = "keep-alive"
	}

	return &ResponseSpec{
		Status:      response.StatusOK,
		ContentType: ContentType(name),
		Body:        t.Content,
		Connection:  connection,
	}
}

// ErrorSpec builds the response for a failure status. Every non-2xx status
// consults the <root>/<code>.html convention first; if such a page exists
// and is readable it is served with the original status, otherwise the
// default plain-text message is used.
func (s *Site) ErrorSpec(code response.StatusCode) *ResponseSpec {
	page := fmt.Sprintf("%d.html", code)
	if t, err := s.load(page); err == nil && t.Exists {
		return &ResponseSpec{
			Status:      code,
			ContentType: "text/html",
			Body:        t.Content,
			Connection:  "close",
		}
	}

	message, ok := defaultMessages[code]
	if !ok {
		message = response.StatusText(code)
	}
	return &ResponseSpec{
		Status:      code,
		ContentType: "text/plain",
		Body:        []byte(message),
		Connection:  "close",
	}
}

// load checks existence and reads the file as text. A stat failure of any
// kind counts as not-found; a directory, a read failure, or non-UTF-8
// content counts as unreadable.
func (s *Site) load(name string) (*Target, error) {
	fi, err := s.fs.Stat(name)
	if err != nil {
		return &Target{Name: name}, nil
	}
	if fi.IsDir() {
		return &Target{Name: name, Exists: true}, fmt.Errorf("%w: is a directory", ErrUnreadable)
	}

	data, err := util.ReadFile(s.fs, name)
	if err != nil {
		return &Target{Name: name, Exists: true}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if !utf8.Valid(data) {
		return &Target{Name: name, Exists: true}, fmt.Errorf("%w: not valid UTF-8", ErrUnreadable)
	}

	return &Target{Name: name, Exists: true, Content: data}, nil
}
