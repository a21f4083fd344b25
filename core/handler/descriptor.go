package handler

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
)

var (
	// ErrUnsupportedHandler indicates a handler value whose signature is not
	// one of the supported shapes. Reported at registration time.
	ErrUnsupportedHandler = errors.New("unsupported handler signature")

	// ErrUnboundParam indicates a handler path parameter that has no matching
	// named capture in the route template. Reported at registration time.
	ErrUnboundParam = errors.New("unbound handler parameter")
)

// Descriptor is the precomputed binding plan for a handler. It records which
// request data the handler declared at registration time so that request-time
// invocation needs no further inspection.
type Descriptor struct {
	// HasRequest reports whether the handler declares the request context as
	// its leading parameter.
	HasRequest bool

	// PathParams holds the names of the template captures bound to the
	// handler's parameters, in the order the handler declares them.
	PathParams []string
}

// Binding is a handler with explicitly named path parameters. It is built by
// Path, Path2, or Path3 and matched against the route template by name rather
// than by position.
type Binding[C Context] struct {
	names      []string
	hasRequest bool
	invoke     func(ctx C, values []string) any
}

// Path binds fn's string parameter to the template capture with the given
// name. The name must exist in the route template or registration fails.
func Path[C Context](name string, fn func(ctx C, value string) any) Binding[C] {
	return Binding[C]{
		names:      []string{name},
		hasRequest: true,
		invoke: func(ctx C, values []string) any {
			return fn(ctx, values[0])
		},
	}
}

// Path2 binds fn's string parameters to the two named template captures.
func Path2[C Context](name1, name2 string, fn func(ctx C, v1, v2 string) any) Binding[C] {
	return Binding[C]{
		names:      []string{name1, name2},
		hasRequest: true,
		invoke: func(ctx C, values []string) any {
			return fn(ctx, values[0], values[1])
		},
	}
}

// Path3 binds fn's string parameters to the three named template captures.
func Path3[C Context](name1, name2, name3 string, fn func(ctx C, v1, v2, v3 string) any) Binding[C] {
	return Binding[C]{
		names:      []string{name1, name2, name3},
		hasRequest: true,
		invoke: func(ctx C, values []string) any {
			return fn(ctx, values[0], values[1], values[2])
		},
	}
}

// Describe inspects a handler value exactly once, at registration time, and
// returns the canonical invocation function together with its Descriptor.
// captures are the route template's named captures in declaration order.
//
// Supported shapes:
//
//	HandlerFunc[C], func(C) any          request context only
//	func() any                           no parameters
//	func(C, string) any                  context + 1..3 captures, bound
//	func(C, string, string) any          positionally to the template's
//	func(C, string, string, string) any  captures in declaration order
//	func(string) any                     captures only, positional
//	func(string, string) any
//	Binding[C]                           captures bound by name (Path*)
//	http.Handler                         served directly
//
// Go reflection exposes parameter types but not parameter names, so plain
// function shapes bind positionally; Binding carries explicit names for
// name-based matching. Either way the handler is inspected only here;
// request-time invocation runs the returned closure as-is.
func Describe[C Context](h any, captures []string) (HandlerFunc[C], Descriptor, error) {
	switch fn := h.(type) {
	case HandlerFunc[C]:
		return fn, Descriptor{HasRequest: true}, nil

	case func(C) any:
		return fn, Descriptor{HasRequest: true}, nil

	case func() any:
		return func(C) any { return fn() }, Descriptor{}, nil

	case func(C, string) any:
		names, err := positional(captures, 1)
		if err != nil {
			return nil, Descriptor{}, err
		}
		return func(ctx C) any {
			return fn(ctx, ctx.Param(names[0]))
		}, Descriptor{HasRequest: true, PathParams: names}, nil

	case func(C, string, string) any:
		names, err := positional(captures, 2)
		if err != nil {
			return nil, Descriptor{}, err
		}
		return func(ctx C) any {
			return fn(ctx, ctx.Param(names[0]), ctx.Param(names[1]))
		}, Descriptor{HasRequest: true, PathParams: names}, nil

	case func(C, string, string, string) any:
		names, err := positional(captures, 3)
		if err != nil {
			return nil, Descriptor{}, err
		}
		return func(ctx C) any {
			return fn(ctx, ctx.Param(names[0]), ctx.Param(names[1]), ctx.Param(names[2]))
		}, Descriptor{HasRequest: true, PathParams: names}, nil

	case func(string) any:
		names, err := positional(captures, 1)
		if err != nil {
			return nil, Descriptor{}, err
		}
		return func(ctx C) any {
			return fn(ctx.Param(names[0]))
		}, Descriptor{PathParams: names}, nil

	case func(string, string) any:
		names, err := positional(captures, 2)
		if err != nil {
			return nil, Descriptor{}, err
		}
		return func(ctx C) any {
			return fn(ctx.Param(names[0]), ctx.Param(names[1]))
		}, Descriptor{PathParams: names}, nil

	case Binding[C]:
		for _, name := range fn.names {
			if !slices.Contains(captures, name) {
				return nil, Descriptor{}, fmt.Errorf("%w: %q is not a template capture", ErrUnboundParam, name)
			}
		}
		names := fn.names
		invoke := fn.invoke
		return func(ctx C) any {
			values := make([]string, len(names))
			for i, name := range names {
				values[i] = ctx.Param(name)
			}
			return invoke(ctx, values)
		}, Descriptor{HasRequest: fn.hasRequest, PathParams: names}, nil

	case http.Handler:
		return func(ctx C) any {
			return Response(func(w http.ResponseWriter, r *http.Request) error {
				fn.ServeHTTP(w, r)
				return nil
			})
		}, Descriptor{HasRequest: true}, nil

	default:
		return nil, Descriptor{}, fmt.Errorf("%w: %T", ErrUnsupportedHandler, h)
	}
}

// positional selects the first n template captures for positional binding.
func positional(captures []string, n int) ([]string, error) {
	if len(captures) < n {
		return nil, fmt.Errorf("%w: handler declares %d path parameters, template provides %d", ErrUnboundParam, n, len(captures))
	}
	return slices.Clone(captures[:n]), nil
}
