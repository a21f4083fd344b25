package demo

import (
	"net/http"
	"time"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/resolver"
	"github.com/upperxcode/shelf-plus/core/response"
	"github.com/upperxcode/shelf-plus/core/router"
	"github.com/upperxcode/shelf-plus/middleware"
)

// Greeting marshals itself to structured data, so handlers can return it
// directly and let the pipeline serialize it as JSON.
type Greeting struct {
	Name string
	At   time.Time
}

func (g Greeting) MarshalData() any {
	return map[string]any{
		"greeting": "hello, " + g.Name,
		"at":       g.At.UTC().Format(time.RFC3339),
	}
}

func registerRoutes(r router.Router[*Context]) {
	// Plain values are resolved by the built-in chain.
	r.Get("/", func(ctx *Context) any {
		return "shelfplus demo"
	})

	r.Get("/health", func(ctx *Context) any {
		return map[string]any{"status": "ok"}
	})

	// Positional path params bind in declaration order.
	r.Get("/greet/{name}", func(ctx *Context, name string) any {
		return Greeting{Name: name, At: time.Now()}
	})

	// Named bindings pick params by name, independent of order.
	r.Get("/echo/{key}/{value}", handler.Path2("value", "key",
		func(ctx *Context, value, key string) any {
			return map[string]string{key: value}
		}))

	// Response values pass through the pipeline untouched.
	r.Post("/items", func(ctx *Context) any {
		return response.JSONWithStatus(map[string]string{"created": "true"}, http.StatusCreated)
	})

	r.Get("/request-id", func(ctx *Context) any {
		id, _ := middleware.GetRequestID(ctx)
		return map[string]string{"request_id": id}
	})

	// Route-scoped resolver wraps this route's values before the built-ins run.
	r.Get("/wrapped", func(ctx *Context) any {
		return "payload"
	}, func(ctx *Context, value any) (any, bool) {
		if s, ok := value.(string); ok {
			return resolver.Data{Value: map[string]string{"data": s}}, true
		}
		return nil, false
	})

	r.Route("/api/v1", func(api router.Router[*Context]) {
		api.Get("/time", func(ctx *Context) any {
			return map[string]string{"now": time.Now().UTC().Format(time.RFC3339)}
		})
		api.Get("/teapot", func(ctx *Context) any {
			return response.Error("i'm a teapot", http.StatusTeapot)
		})
	})
}
