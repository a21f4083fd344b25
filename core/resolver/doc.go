// Package resolver converts arbitrary handler return values into final
// HTTP responses through an ordered, extensible resolver chain.
//
// A handler may return a handler.Response (used as-is), nil (the route
// declines), or any other value. The Pipeline offers that value to each
// registered resolver in order; a resolver either claims the value,
// replacing it and restarting the scan, or declines. Resolution ends when
// the value becomes a handler.Response. A full pass with no claim, or a
// chain that rewrites values forever, fails with ErrUnresolvableValue.
//
// The built-in set handles, most specific first:
//
//	[]byte, io.Reader          application/octet-stream
//	string                     text/plain
//	maps, slices, Data,        application/json
//	json.RawMessage
//	DataMarshaler,             converted, re-fed as structured data
//	json.Marshaler
//	response.Renderer          rendered as text/html
//	*os.File, FilePath         file response, mime by extension
//	HandlerFunc, func(C) any,  invoked, result re-fed
//	http.Handler
//
// Custom resolvers registered through resolver.New (or the router's
// ResolveWith / per-route variadics) run before the built-ins, so they can
// shadow or refine built-in behavior for types the built-ins would claim.
//
// Resolvers also serve as composable transformations: Merge sequences two
// of them with short-circuit-on-final semantics and Apply runs one inline
// against a value before the pipeline sees it.
package resolver
