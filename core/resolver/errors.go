package resolver

import (
	"errors"
	"net/http"
)

// ErrUnresolvableValue indicates that no resolver in the chain claimed a
// handler's return value after a full pass, or that the chain kept
// rewriting the value without finalizing it. The router reports it as an
// internal server error and logs the value's type tag.
var ErrUnresolvableValue = errors.New("unresolvable handler value")

// ErrHandlerDeclined reports a nested handler that returned nil. Nil means
// "not handled, defer", so the decline renders as 404 Not Found just like
// a top-level nil return.
var ErrHandlerDeclined error = handlerDeclinedError{}

type handlerDeclinedError struct{}

func (handlerDeclinedError) Error() string { return "nested handler declined" }

func (handlerDeclinedError) StatusCode() int { return http.StatusNotFound }
