// Package router provides the routing facade: per-verb registration of
// handlers in any supported signature, middleware chains, router-global and
// route-scoped resolvers, sub-router mounting, and a Cascade combinator for
// first-match-wins composition of independent routers.
//
// Routing is backed by a radix tree with named captures ({id}), regexp
// captures ({id:[0-9]+}), and trailing wildcards (/static/*). Capture
// values are exposed through Context.Param and bound to handler parameters
// by the signature adapter at registration time.
//
// A minimal application:
//
//	r := router.New[*router.Context]()
//	r.Get("/text", func() any { return "hello" })
//	r.Get("/json", func() any {
//		return map[string]any{"name": "John", "age": 42}
//	})
//	r.Get("/clients/{id}", func(ctx *router.Context, id string) any {
//		return "client " + id
//	})
//	http.ListenAndServe(":8080", r)
//
// Handlers may return any value the resolver pipeline understands; see the
// resolver package for the built-in set and for registering custom
// resolvers globally (ResolveWith) or per route (trailing arguments to the
// verb methods).
//
// Registration happens once, before serving; the route table, middleware
// chains, and resolver pipelines are frozen afterwards and safe to share
// across concurrent requests.
package router
