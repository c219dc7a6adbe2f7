package site

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DylanGreen12/simple-http-server/internal/headers"
	"github.com/DylanGreen12/simple-http-server/internal/request"
	"github.com/DylanGreen12/simple-http-server/internal/response"
)

func newRoot(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func get(target string, header ...string) *request.Request {
	req := &request.Request{
		Method:  "GET",
		Target:  target,
		Version: "HTTP/1.1",
		Headers: headers.New(),
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Headers.Add(header[i], header[i+1])
	}
	return req
}

func TestResolve(t *testing.T) {
	name, err := Resolve("/index.html")
	require.NoError(t, err)
	assert.Equal(t, "index.html", name)

	// Root is substituted with the default document.
	name, err = Resolve("/")
	require.NoError(t, err)
	assert.Equal(t, "index.html", name)

	// Exactly one leading slash is stripped; nothing else is normalized.
	name, err = Resolve("/a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "a/b/c.txt", name)

	// Query strings are part of the file name.
	name, err = Resolve("/file.html?version=2")
	require.NoError(t, err)
	assert.Equal(t, "file.html?version=2", name)

	// Any literal ".." is refused, wherever it appears.
	for _, target := range []string{"/../etc/passwd", "/a/../b", "/..", "/x..y"} {
		_, err = Resolve(target)
		assert.ErrorIs(t, err, ErrTraversal, "target %q", target)
	}
}

func TestContentType(t *testing.T) {
	cases := map[string]string{
		"index.html": "text/html",
		"style.css":  "text/css",
		"app.js":     "application/javascript",
		"logo.png":   "image/png",
		"photo.jpg":  "image/jpeg",
		"photo.jpeg": "image/jpeg",
		"anim.gif":   "image/gif",
		"icon.svg":   "image/svg+xml",
		"fav.ico":    "image/x-icon",
		"notes.txt":  "text/plain",
		"doc.pdf":    "application/pdf",
		"data.bin":   "application/octet-stream",
		"noext":      "application/octet-stream",
		// Suffix matching is case-sensitive.
		"INDEX.HTML": "application/octet-stream",
	}
	for name, want := range cases {
		assert.Equal(t, want, ContentType(name), "name %q", name)
	}
}

func TestRespondIndex(t *testing.T) {
	fs := newRoot(t, map[string]string{"index.html": "<h1>Hi</h1>"})
	s := New(fs, nil)

	spec := s.Respond(get("/"))
	assert.Equal(t, response.StatusOK, spec.Status)
	assert.Equal(t, "text/html", spec.ContentType)
	assert.Equal(t, "<h1>Hi</h1>", string(spec.Body))
	assert.Equal(t, "close", spec.Connection)
	assert.Len(t, spec.Body, 11)
}

func TestRespondKeepAliveEcho(t *testing.T) {
	fs := newRoot(t, map[string]string{"index.html": "<h1>Hi</h1>"})
	s := New(fs, nil)

	spec := s.Respond(get("/", "Connection", "Keep-Alive"))
	assert.Equal(t, response.StatusOK, spec.Status)
	assert.Equal(t, "keep-alive", spec.Connection)

	// Anything other than keep-alive means close.
	spec = s.Respond(get("/", "Connection", "upgrade"))
	assert.Equal(t, "close", spec.Connection)
}

func TestRespondNotFound(t *testing.T) {
	fs := newRoot(t, map[string]string{"index.html": "x"})
	s := New(fs, nil)

	spec := s.Respond(get("/style.css"))
	assert.Equal(t, response.StatusNotFound, spec.Status)
	assert.Equal(t, "text/plain", spec.ContentType)
	assert.Equal(t, "File Not Found", string(spec.Body))
	assert.Equal(t, "close", spec.Connection)
}

func TestRespondNotFoundCustomPage(t *testing.T) {
	fs := newRoot(t, map[string]string{
		"404.html": "<h1>Lost?</h1>",
	})
	s := New(fs, nil)

	spec := s.Respond(get("/does-not-exist"))
	assert.Equal(t, response.StatusNotFound, spec.Status)
	assert.Equal(t, "text/html", spec.ContentType)
	assert.Equal(t, "<h1>Lost?</h1>", string(spec.Body))
}

func TestRespondTraversal(t *testing.T) {
	// The naively joined location exists, but literal ".." is refused
	// regardless.
	fs := newRoot(t, map[string]string{"secret.txt": "top secret"})
	s := New(fs, nil)

	spec := s.Respond(get("/../secret.txt"))
	assert.Equal(t, response.StatusForbidden, spec.Status)
	assert.Equal(t, "Directory traversal not allowed", string(spec.Body))
}

func TestRespondTraversalCustomPage(t *testing.T) {
	fs := newRoot(t, map[string]string{"403.html": "<h1>No</h1>"})
	s := New(fs, nil)

	spec := s.Respond(get("/../etc/passwd"))
	assert.Equal(t, response.StatusForbidden, spec.Status)
	assert.Equal(t, "text/html", spec.ContentType)
	assert.Equal(t, "<h1>No</h1>", string(spec.Body))
}

func TestRespondMethodNotAllowed(t *testing.T) {
	fs := newRoot(t, map[string]string{"index.html": "x"})
	s := New(fs, nil)

	for _, method := range []string{"POST", "PUT", "DELETE", "HEAD", "OPTIONS"} {
		req := get("/index.html")
		req.Method = method
		spec := s.Respond(req)
		assert.Equal(t, response.StatusMethodNotAllowed, spec.Status, "method %s", method)
	}
}

func TestRespondMethodBeforeTraversal(t *testing.T) {
	// Method check outranks the traversal check.
	fs := newRoot(t, nil)
	s := New(fs, nil)

	req := get("/../etc/passwd")
	req.Method = "POST"
	spec := s.Respond(req)
	assert.Equal(t, response.StatusMethodNotAllowed, spec.Status)
}

func TestRespondDirectoryIsServerError(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("docs", 0o755))
	s := New(fs, nil)

	spec := s.Respond(get("/docs"))
	assert.Equal(t, response.StatusInternalServerError, spec.Status)
	assert.Equal(t, "Error reading file", string(spec.Body))
}

func TestRespondBinaryContentIsServerError(t *testing.T) {
	// The file exists but is not valid UTF-8, so it is unreadable as
	// text: 500, not 404.
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "blob.bin", []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))
	s := New(fs, nil)

	spec := s.Respond(get("/blob.bin"))
	assert.Equal(t, response.StatusInternalServerError, spec.Status)
}

func TestErrorPageFallbackIsUniform(t *testing.T) {
	// Custom pages apply to every error status, 405 and 500 included.
	fs := newRoot(t, map[string]string{"405.html": "<h1>GET only</h1>"})
	s := New(fs, nil)

	req := get("/index.html")
	req.Method = "POST"
	spec := s.Respond(req)
	assert.Equal(t, response.StatusMethodNotAllowed, spec.Status)
	assert.Equal(t, "text/html", spec.ContentType)
	assert.Equal(t, "<h1>GET only</h1>", string(spec.Body))
}

func TestErrorPageUnreadableFallsBack(t *testing.T) {
	// A directory named 404.html cannot be served; the default message
	// is used instead.
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("404.html", 0o755))
	s := New(fs, nil)

	spec := s.Respond(get("/missing"))
	assert.Equal(t, response.StatusNotFound, spec.Status)
	assert.Equal(t, "text/plain", spec.ContentType)
	assert.Equal(t, "File Not Found", string(spec.Body))
}

func TestRespondIdempotent(t *testing.T) {
	fs := newRoot(t, map[string]string{"page.txt": "same bytes every time"})
	s := New(fs, nil)

	first := s.Respond(get("/page.txt"))
	second := s.Respond(get("/page.txt"))
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.ContentType, second.ContentType)
	assert.Equal(t, first.Body, second.Body)
}

func TestLiteralQueryLookup(t *testing.T) {
	// A file whose name contains the query string is found; the plain
	// name is not consulted.
	fs := newRoot(t, map[string]string{"page.html?v=1": "versioned"})
	s := New(fs, nil)

	spec := s.Respond(get("/page.html?v=1"))
	assert.Equal(t, response.StatusOK, spec.Status)
	assert.Equal(t, "versioned", string(spec.Body))

	spec = s.Respond(get("/page.html"))
	assert.Equal(t, response.StatusNotFound, spec.Status)
}
