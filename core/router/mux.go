package router

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/resolver"
)

// mux is the private implementation of Router interface.
type mux[C handler.Context] struct {
	tree         *node[C]
	middlewares  []handler.Middleware[C]
	resolvers    []resolver.Resolver[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	parent       *mux[C] // for sub-routers
	inline       bool    // for inline groups
	hasRoutes    bool    // guards middleware/resolver registration order

	// fallback resolves values produced by middleware that bypassed the
	// per-route pipelines; frozen on first use.
	fallbackOnce sync.Once
	fallback     *resolver.Pipeline[C]
}

// newMux creates a new router instance.
func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		tree:         &node[C]{},
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(m)
	}

	// If no context factory provided, require it for non-default contexts
	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			// Only support default *Context type without factory
			// For custom contexts, user must provide a factory
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	// Use RawPath if available to preserve URL encoding
	path := r.URL.Path
	if r.URL.RawPath != "" {
		path = r.URL.RawPath
	}
	if path == "" {
		path = "/"
	}

	method, ok := methodMap[r.Method]
	if !ok {
		// Create context with empty params for error handling
		ctx := m.newContext(ww, r, nil)
		m.errorHandler(ctx, ErrMethodNotAllowed)
		return
	}

	// Find route and extract captures
	rn, eps, fn, captures := m.tree.findRoute(method, path)

	// Build params map
	var paramsMap map[string]string
	if len(captures.Keys) > 0 {
		paramsMap = make(map[string]string, len(captures.Keys))
		for i, key := range captures.Keys {
			if i < len(captures.Values) {
				paramsMap[key] = captures.Values[i]
			}
		}
	}

	// Create context with params
	ctx := m.newContext(ww, r, paramsMap)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			// Wrap panic in error with stack trace
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			// Check if response has already been written
			if ww.Written() {
				// Can't send error response, just log the panic
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
			} else {
				// Response not written, can use error handler
				m.errorHandler(ctx, panicErr)
			}
		}
	}()

	// Check if we hit a mounted subrouter
	if rn != nil && rn.subroutes != nil {
		// Calculate the remaining path after the mount point
		mountPath := ""
		if rn.endpoints[mSTUB] != nil {
			mountPath = rn.endpoints[mSTUB].pattern
		}

		// Strip the mount path from the request path
		subPath := path
		if mountPath != "" && mountPath != "/" {
			// Remove trailing wildcard from mount pattern if present
			if strings.HasSuffix(mountPath, "/*") {
				mountPath = mountPath[:len(mountPath)-2]
			} else if strings.HasSuffix(mountPath, "*") {
				mountPath = mountPath[:len(mountPath)-1]
			}

			if strings.HasPrefix(path, mountPath) {
				subPath = path[len(mountPath):]
				if subPath == "" {
					subPath = "/"
				} else if subPath[0] != '/' {
					subPath = "/" + subPath
				}
			}
		}

		// Update request with the sub-path and delegate to subrouter
		r2 := r.Clone(r.Context())
		r2.URL.Path = subPath
		rn.subroutes.ServeHTTP(w, r2)
		return
	}

	if fn == nil {
		allowed := []string{}
		for mt := range eps {
			if mt == mALL || mt == mSTUB {
				continue
			}
			if eps[mt] != nil && eps[mt].handler != nil {
				allowed = append(allowed, reverseMethodMap[mt])
			}
		}

		if len(allowed) > 0 {
			// Set Allow header per RFC 7231 before responding with 405
			if !ww.Written() {
				ww.Header().Set("Allow", strings.Join(allowed, ", "))
			}
			m.errorHandler(ctx, ErrMethodNotAllowed)
		} else {
			m.errorHandler(ctx, ErrNotFound)
		}
		return
	}

	if len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	m.serve(ctx, ww, r, fn(ctx))
}

// serve renders a captured value: nil declines as not-found, errors go to
// the error handler, final responses render directly, and anything else
// (values emitted by middleware that bypassed the per-route pipeline) runs
// through the router-level fallback pipeline.
func (m *mux[C]) serve(ctx C, ww *responseWriter, r *http.Request, value any) {
	var resp handler.Response

	switch v := value.(type) {
	case nil:
		m.errorHandler(ctx, ErrNotFound)
		return
	case error:
		m.reportError(r, v)
		m.errorHandler(ctx, v)
		return
	case handler.Response:
		resp = v
	default:
		var err error
		resp, err = m.fallbackPipeline().Resolve(ctx, v)
		if err != nil {
			m.reportError(r, err)
			m.errorHandler(ctx, err)
			return
		}
	}

	if err := resp(ww, r); err != nil {
		m.errorHandler(ctx, err)
	}
}

// reportError logs resolution failures with the offending value's type tag.
func (m *mux[C]) reportError(r *http.Request, err error) {
	if errors.Is(err, resolver.ErrUnresolvableValue) {
		m.logger.Error("unresolvable handler value",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
		)
	}
}

func (m *mux[C]) fallbackPipeline() *resolver.Pipeline[C] {
	m.fallbackOnce.Do(func() {
		m.fallback = resolver.New(m.globalResolvers()...)
	})
	return m.fallback
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mGET, pattern, h, resolvers)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mPOST, pattern, h, resolvers)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mPUT, pattern, h, resolvers)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mDELETE, pattern, h, resolvers)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mPATCH, pattern, h, resolvers)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mHEAD, pattern, h, resolvers)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mOPTIONS, pattern, h, resolvers)
}

// Connect registers a handler for CONNECT requests.
func (m *mux[C]) Connect(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mCONNECT, pattern, h, resolvers)
}

// Trace registers a handler for TRACE requests.
func (m *mux[C]) Trace(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mTRACE, pattern, h, resolvers)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h any, resolvers ...resolver.Resolver[C]) {
	m.handle(mALL, pattern, h, resolvers)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h any, methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[methodTyp]bool)
	for _, method := range methods {
		mt, ok := methodMap[strings.ToUpper(method)]
		if !ok {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[mt] {
			continue
		}
		seen[mt] = true
		m.handle(mt, pattern, h, nil)
	}
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("shelfplus: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// ResolveWith appends router-global resolvers, applied to every route's
// captured value before route-scoped resolvers and built-ins.
func (m *mux[C]) ResolveWith(resolvers ...resolver.Resolver[C]) {
	if m.hasRoutes {
		panic("shelfplus: all resolvers must be defined before routes on a mux")
	}
	root := m
	for root.inline && root.parent != nil {
		root = root.parent
	}
	root.resolvers = append(root.resolvers, resolvers...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	// Only store the additional middlewares, not parent ones
	// They will be chained at registration time
	im := &mux[C]{
		inline:       true,
		parent:       m,
		tree:         m.tree,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}

	return im
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route creates a new sub-router mounted at the given pattern.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	subRouter := newMux[C]()

	subRouter.errorHandler = m.errorHandler
	subRouter.newContext = m.newContext
	subRouter.logger = m.logger

	fn(subRouter)
	m.Mount(pattern, subRouter)
	return subRouter
}

// Mount attaches a sub-router at the given pattern.
func (m *mux[C]) Mount(pattern string, sub Router[C]) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}

	subMux, ok := sub.(*mux[C])
	if !ok {
		panic("shelfplus: can only mount *mux[C] routers")
	}

	// Always inherit parent's error handler, logger, and context factory for consistency
	// This ensures mounted subrouters behave predictably
	subMux.errorHandler = m.errorHandler
	subMux.logger = m.logger
	subMux.newContext = m.newContext

	// Stub handler - actual routing is handled by the tree traversal
	mountHandler := handler.HandlerFunc[C](func(ctx C) any {
		return nil
	})

	// Store all nodes that need the subrouter reference
	var nodes []*node[C]

	if pattern == "" || pattern[len(pattern)-1] != '/' {
		n1 := m.handle(mALL|mSTUB, pattern, mountHandler, nil)
		if n1 != nil {
			nodes = append(nodes, n1)
		}
		n2 := m.handle(mALL|mSTUB, pattern+"/", mountHandler, nil)
		if n2 != nil {
			nodes = append(nodes, n2)
		}
		pattern += "/"
	}

	n := m.handle(mALL|mSTUB, pattern+"*", mountHandler, nil)
	if n != nil {
		nodes = append(nodes, n)
	}

	// Set subrouter on all mount nodes
	for _, node := range nodes {
		node.subroutes = sub
	}
}

// Routes returns all registered routes.
func (m *mux[C]) Routes() []Route {
	return m.tree.routes()
}

// handle builds a route: the signature adapter inspects the handler value
// against the pattern's captures exactly once, the route's resolver
// pipeline is frozen (global resolvers, then route-scoped ones, then the
// built-ins), and the composed endpoint is inserted into the routing tree.
// Registration failures panic so a misconfigured route table never serves.
func (m *mux[C]) handle(method methodTyp, pattern string, h any, routeResolvers []resolver.Resolver[C]) *node[C] {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	fn, _, err := handler.Describe[C](h, patCaptureKeys(pattern))
	if err != nil {
		panic(fmt.Errorf("shelfplus: route '%s': %w", pattern, err))
	}

	// Mark that routes have been added (for middleware validation)
	if !m.inline {
		m.hasRoutes = true
	}

	pipeline := resolver.New(append(slices.Clone(m.globalResolvers()), routeResolvers...)...)
	endpoint := func(ctx C) any {
		value := fn(ctx)
		switch value.(type) {
		case nil, error, handler.Response:
			return value
		}
		resp, err := pipeline.Resolve(ctx, value)
		if err != nil {
			return err
		}
		return resp
	}

	// For inline routers, collect all middlewares from parent chain
	var composed handler.HandlerFunc[C] = endpoint
	if m.inline {
		// Collect middlewares from parent inline routers
		var allMiddlewares []handler.Middleware[C]
		curr := m
		for curr != nil && curr.inline {
			// Prepend parent middlewares to maintain order
			if len(curr.middlewares) > 0 {
				allMiddlewares = append(curr.middlewares, allMiddlewares...)
			}
			curr = curr.parent
		}
		if len(allMiddlewares) > 0 {
			composed = chain(allMiddlewares, endpoint)
		}
	}

	return m.tree.insertRoute(method, pattern, composed)
}

// globalResolvers resolves the router-wide resolver chain, walking inline
// groups up to their owning mux.
func (m *mux[C]) globalResolvers() []resolver.Resolver[C] {
	root := m
	for root.inline && root.parent != nil {
		root = root.parent
	}
	return root.resolvers
}
