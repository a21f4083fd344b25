package router

import (
	"net/http"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/resolver"
)

// Router is the main routing facade. It registers handlers of any supported
// signature per HTTP verb, carries middleware and resolver chains, and
// presents itself as an http.Handler so instances can be mounted inside one
// another or combined with Cascade.
//
// The handler argument of the verb methods accepts any shape the signature
// adapter supports (see handler.Describe); an unsupported shape or an
// unbound path parameter panics at registration time. Optional per-route
// resolvers run after router-global ones and before the built-ins.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	// HTTP method handlers
	Get(pattern string, h any, resolvers ...resolver.Resolver[C])
	Post(pattern string, h any, resolvers ...resolver.Resolver[C])
	Put(pattern string, h any, resolvers ...resolver.Resolver[C])
	Delete(pattern string, h any, resolvers ...resolver.Resolver[C])
	Patch(pattern string, h any, resolvers ...resolver.Resolver[C])
	Head(pattern string, h any, resolvers ...resolver.Resolver[C])
	Options(pattern string, h any, resolvers ...resolver.Resolver[C])
	Connect(pattern string, h any, resolvers ...resolver.Resolver[C])
	Trace(pattern string, h any, resolvers ...resolver.Resolver[C])

	// Generic handlers
	Handle(pattern string, h any, resolvers ...resolver.Resolver[C])
	Method(pattern string, h any, methods ...string)

	// Middleware
	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]

	// ResolveWith registers router-global resolvers, applied to every
	// route's value before route-scoped resolvers and built-ins. Like Use,
	// it must be called before routes are registered.
	ResolveWith(resolvers ...resolver.Resolver[C])

	// Grouping and mounting
	Group(fn func(r Router[C])) Router[C]
	Route(pattern string, fn func(r Router[C])) Router[C]
	Mount(pattern string, sub Router[C])
}

// Routes provides route introspection capabilities for debugging and monitoring.
type Routes interface {
	Routes() []Route
}

// Route describes a single route in the router with its HTTP method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// New creates a new router with the given options.
// The router supports generic context types for type-safe request handling.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
