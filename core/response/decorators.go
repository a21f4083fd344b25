package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/mimetype"
)

// WithHeaders wraps a response with custom HTTP headers.
// Headers are set before the wrapped response is rendered.
func WithHeaders(response handler.Response, headers map[string]string) handler.Response {
	if response == nil {
		return nil
	}
	if len(headers) == 0 {
		return response
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return response(w, r)
	}
}

// WithContentType wraps a response and overrides its Content-Type header.
// The typeName may be a full media type, a shorthand like "json", or a file
// extension; it is resolved through the mimetype package. The override wins
// because the wrapped response's own header write happens first.
func WithContentType(response handler.Response, typeName string) handler.Response {
	if response == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		err := response(overrideContentType(w, mimetype.ByName(typeName)), r)
		return err
	}
}

// WithCookie wraps a response with an HTTP cookie.
// The cookie is set before the wrapped response is rendered.
func WithCookie(response handler.Response, cookie *http.Cookie) handler.Response {
	if response == nil || cookie == nil {
		return response
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		http.SetCookie(w, cookie)
		return response(w, r)
	}
}

// WithStatus wraps a response and replaces the status code it writes.
func WithStatus(response handler.Response, status int) handler.Response {
	if response == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		return response(&statusOverrideWriter{ResponseWriter: w, status: status}, r)
	}
}

// WithCache wraps a response with cache control headers.
// If maxAge > 0, sets Cache-Control and Expires headers for caching.
// If maxAge <= 0, sets headers to prevent caching.
func WithCache(response handler.Response, maxAge time.Duration) handler.Response {
	if response == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		if maxAge > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
			w.Header().Set("Expires", time.Now().Add(maxAge).Format(http.TimeFormat))
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		return response(w, r)
	}
}

// statusOverrideWriter replaces the status code on the first WriteHeader call.
type statusOverrideWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusOverrideWriter) WriteHeader(int) {
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(w.status)
	}
}

func (w *statusOverrideWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(w.status)
	}
	return w.ResponseWriter.Write(b)
}

// contentTypeWriter forces a fixed Content-Type at header-write time,
// after the wrapped response has set its own.
type contentTypeWriter struct {
	http.ResponseWriter
	contentType string
	written     bool
}

func overrideContentType(w http.ResponseWriter, contentType string) http.ResponseWriter {
	return &contentTypeWriter{ResponseWriter: w, contentType: contentType}
}

func (w *contentTypeWriter) WriteHeader(status int) {
	if !w.written {
		w.written = true
		w.Header().Set("Content-Type", w.contentType)
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *contentTypeWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
