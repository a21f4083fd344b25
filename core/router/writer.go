package router

import (
	"bytes"
	"maps"
	"net/http"
)

// responseWriter wraps http.ResponseWriter, recording status and whether
// the headers went out so error handlers never double-write. In buffered
// mode nothing reaches the underlying connection until replay, which is
// how Cascade probes a handler without leaving a trace on a decline.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool

	// Buffered mode, active when body is non-nil.
	header http.Header
	body   *bytes.Buffer
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

// newBufferedWriter creates a detached writer for probing handlers whose
// output may be discarded.
func newBufferedWriter() *responseWriter {
	return &responseWriter{
		header: make(http.Header),
		body:   &bytes.Buffer{},
	}
}

func (w *responseWriter) Header() http.Header {
	if w.body != nil {
		return w.header
	}
	return w.ResponseWriter.Header()
}

func (w *responseWriter) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	if w.body == nil {
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	if w.body != nil {
		return w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// Written returns true if WriteHeader has been called
func (w *responseWriter) Written() bool {
	return w.written
}

// Status returns the response status, defaulting to 200 OK when the
// handler wrote a body (or nothing) without an explicit WriteHeader.
func (w *responseWriter) Status() int {
	if !w.written {
		return http.StatusOK
	}
	return w.status
}

// replay copies a buffered attempt onto the real writer.
func (w *responseWriter) replay(dst http.ResponseWriter) {
	maps.Copy(dst.Header(), w.header)
	dst.WriteHeader(w.Status())
	if w.body.Len() > 0 {
		dst.Write(w.body.Bytes())
	}
}

// Flush implements http.Flusher when the underlying writer supports it.
// Buffered writers hold everything back, so flushing is a no-op there.
func (w *responseWriter) Flush() {
	if w.body != nil {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
