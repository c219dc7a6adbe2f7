package headers

import (
	"bytes"
	"strings"
)

// Field is a single header line as it arrived on the wire.
type Field struct {
	Name  string
	Value string
}

// Headers holds header fields in arrival order. Names keep their original
// spelling; lookup is case-insensitive.
type Headers struct {
	fields []Field
}

func New() *Headers {
	return &Headers{}
}

// Get returns the first value for a header.
func (h *Headers) Get(name string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Add appends a field.
func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Set replaces every field matching name with a single field, or appends
// one if none matched.
func (h *Headers) Set(name, value string) {
	kept := h.fields[:0]
	replaced := false
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			if !replaced {
				kept = append(kept, Field{Name: name, Value: value})
				replaced = true
			}
			continue
		}
		kept = append(kept, f)
	}
	h.fields = kept
	if !replaced {
		h.Add(name, value)
	}
}

func (h *Headers) Len() int {
	return len(h.fields)
}

// All returns the fields in arrival order.
func (h *Headers) All() []Field {
	return h.fields
}

// Parse consumes complete header lines from data and returns the number of
// bytes consumed, plus done=true once the terminating blank line was read.
// Parsing is deliberately lenient: a line is split on its first colon, and a
// line with no colon at all is retained as a field with an empty value.
func (h *Headers) Parse(data []byte) (int, bool) {
	read := 0
	for {
		idx := bytes.IndexByte(data[read:], '\n')
		if idx == -1 {
			// Need more data.
			return read, false
		}

		line := trimCR(data[read : read+idx])
		read += idx + 1

		if len(line) == 0 {
			// Blank line ends the header section.
			return read, true
		}

		name, value, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			h.Add(string(line), "")
			continue
		}
		h.Add(string(name), string(bytes.TrimSpace(value)))
	}
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}
