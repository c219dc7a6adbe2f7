package site

import "strings"

// contentTypes is scanned in order; first suffix match wins. Matching is
// case-sensitive on purpose ("INDEX.HTML" is served as a binary blob).
var contentTypes = []struct {
	suffix string
	mime   string
}{
	{".html", "text/html"},
	{".css", "text/css"},
	{".js", "application/javascript"},
	{".png", "image/png"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
	{".gif", "image/gif"},
	{".svg", "image/svg+xml"},
	{".ico", "image/x-icon"},
	{".txt", "text/plain"},
	{".pdf", "application/pdf"},
}

const defaultContentType = "application/octet-stream"

// ContentType infers the media type from the file name's suffix.
func ContentType(name string) string {
	for _, ct := range contentTypes {
		if strings.HasSuffix(name, ct.suffix) {
			return ct.mime
		}
	}
	return defaultContentType
}
