package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// Param exposes the named path captures extracted by the router; the
// signature adapter reads the same underlying map, so a handler parameter
// bound by name and a direct Param call always agree.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
