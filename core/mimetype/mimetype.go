package mimetype

import (
	"mime"
	"strings"
)

// DefaultType is returned when no content type can be determined.
const DefaultType = "application/octet-stream"

// Shorthand names accepted by ByName in addition to file extensions.
// Text types carry an explicit UTF-8 charset, matching what the response
// constructors emit.
var shorthand = map[string]string{
	"text":   "text/plain; charset=utf-8",
	"txt":    "text/plain; charset=utf-8",
	"html":   "text/html; charset=utf-8",
	"json":   "application/json; charset=utf-8",
	"xml":    "application/xml; charset=utf-8",
	"csv":    "text/csv; charset=utf-8",
	"js":     "text/javascript; charset=utf-8",
	"css":    "text/css; charset=utf-8",
	"binary": DefaultType,
	"bytes":  DefaultType,
}

// ByExtension returns the content type for a file extension. The extension
// may be given with or without the leading dot. Returns DefaultType when
// the extension is unknown.
func ByExtension(ext string) string {
	if ext == "" {
		return DefaultType
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return DefaultType
}

// ByName resolves a content type from either a shorthand name ("json",
// "html", "binary") or a file extension. Full media types containing a
// slash are passed through unchanged, so callers may supply an explicit
// content type anywhere a shorthand is accepted.
func ByName(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	key := strings.ToLower(strings.TrimPrefix(name, "."))
	if ct, ok := shorthand[key]; ok {
		return ct
	}
	return ByExtension(name)
}
