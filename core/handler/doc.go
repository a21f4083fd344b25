// Package handler defines the core abstractions for request processing:
// the Context contract, the canonical handler shape, middleware, and the
// signature adapter that binds arbitrary handler signatures to request data.
//
// # Core Types
//
//	// Response renders the final HTTP response.
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
//	// HandlerFunc is the canonical handler: it may return a Response,
//	// nil (decline), an error, or any value for the resolver pipeline.
//	type HandlerFunc[C Context] func(ctx C) any
//
//	// Middleware wraps handlers with cross-cutting behavior.
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// # Handler Signatures
//
// Routes accept more than the canonical shape. The signature adapter
// (Describe) inspects the registered value once, at registration time, and
// builds an invocation closure plus a Descriptor recording the binding plan:
//
//	r.Get("/text", func() any { return "hello" })
//	r.Get("/echo", func(ctx *router.Context) any { return ctx.Request().URL.Path })
//	r.Get("/clients/{id}", func(ctx *router.Context, id string) any { return id })
//
// Plain function shapes bind path parameters positionally to the template's
// captures; Path, Path2, and Path3 bind them by name:
//
//	r.Get("/orders/{oid}/items/{iid}", handler.Path2("iid", "oid",
//		func(ctx *router.Context, itemID, orderID string) any {
//			return itemID + " of " + orderID
//		}))
//
// A binding name that does not appear in the template, or an unsupported
// handler shape, fails at registration rather than at request time.
package handler
