package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the framework's error handler.
//
// A Response is the final, fixed-point form of a handler's return value:
// once a value has been resolved into a Response, no further resolution
// takes place.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is the canonical transport-facing handler shape. It receives
// the request context and may return any value: a Response (rendered as-is),
// nil (the route declines and the request falls through to not-found), an
// error (routed to the error handler), or any other value, which the
// resolver pipeline converts into a Response.
type HandlerFunc[C Context] func(ctx C) any

// ErrorHandler handles errors during request processing.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
