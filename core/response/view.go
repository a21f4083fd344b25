package response

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/upperxcode/shelf-plus/core/handler"
)

// Renderer is the structural contract for render-capable views. Template
// engines that emit through a context-aware Render method (templ-style
// components among them) satisfy it without any direct dependency.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// Component renders a view as text/html with 200 OK. The view receives the
// request's context, so it can read request-scoped values such as the
// request ID.
func Component(view Renderer) handler.Response {
	return ComponentWithStatus(view, http.StatusOK)
}

// ComponentWithStatus renders a view as text/html with the given status,
// for error pages and other non-200 views. A zero status means 200 OK.
func ComponentWithStatus(view Renderer, status int) handler.Response {
	if view == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)

		if err := view.Render(r.Context(), w); err != nil {
			return fmt.Errorf("render component: %w", err)
		}
		return nil
	}
}
