package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/upperxcode/shelf-plus/core/handler"
)

var (
	// Request-time outcomes
	ErrNotFound         = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")

	// Configuration errors
	ErrNoContextFactory = errors.New("no context factory provided and C is not *Context")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("routing pattern must begin with '/'")
	ErrNilRouter        = errors.New("cannot mount nil router")
	ErrNilSubrouter     = errors.New("subrouter function cannot be nil")

	// Pattern parsing errors
	ErrInvalidRegexp    = errors.New("invalid regexp pattern in route param")
	ErrMissingChild     = errors.New("replacing missing child")
	ErrWildcardPosition = errors.New("wildcard '*' must be the last pattern in a route")
	ErrParamDelimiter   = errors.New("route param closing delimiter '}' is missing")
	ErrDuplicateParam   = errors.New("routing pattern contains duplicate param key")
)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler provides default error handling. Not-found and
// method-not-allowed outcomes render their conventional statuses; anything
// else, including unresolvable handler values, renders as an internal
// server error.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	// Prevent double-writing responses which causes HTTP protocol errors
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "404 Not Found", http.StatusNotFound)
	case errors.Is(err, ErrMethodNotAllowed):
		http.Error(w, "405 Method Not Allowed", http.StatusMethodNotAllowed)
	default:
		status := http.StatusInternalServerError
		if sc, ok := err.(statusCode); ok {
			status = sc.StatusCode()
		}
		http.Error(w, http.StatusText(status), status)
	}
}

// PanicError allows external error handlers to detect and handle panics.
// When a panic is recovered by the router, it's wrapped in an error that
// implements this interface, providing access to the original panic value
// and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// panicError is the private implementation of PanicError interface.
type panicError struct {
	value any
	stack []byte
}

// Error implements the error interface.
func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Value returns the original panic value.
func (e *panicError) Value() any {
	return e.value
}

// Stack returns the stack trace.
func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
