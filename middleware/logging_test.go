package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/router"
	"github.com/upperxcode/shelf-plus/middleware"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs_completed_request", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := router.New[*router.Context]()
		r.Use(middleware.LoggingWithLogger[*router.Context](jsonLogger(&buf)))
		r.Get("/things", func(ctx *router.Context) any { return "ok" })

		req := httptest.NewRequest(http.MethodGet, "/things?page=2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "request completed", record["msg"])
		assert.Equal(t, "GET", record["method"])
		assert.Equal(t, "/things", record["path"])
		assert.Equal(t, "page=2", record["query"])
		assert.EqualValues(t, http.StatusOK, record["status_code"])
		assert.Equal(t, "http", record["component"])
	})

	t.Run("includes_request_id_when_present", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := router.New[*router.Context]()
		r.Use(
			middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
				Generator: func() string { return "rid-1" },
			}),
			middleware.LoggingWithLogger[*router.Context](jsonLogger(&buf)),
		)
		r.Get("/", func(ctx *router.Context) any { return "ok" })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "rid-1", record["request_id"])
	})

	t.Run("server_errors_log_at_error_level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := router.New[*router.Context]()
		r.Use(middleware.LoggingWithLogger[*router.Context](jsonLogger(&buf)))
		r.Get("/fail", func(ctx *router.Context) any {
			return handler.Response(func(w http.ResponseWriter, req *http.Request) error {
				w.WriteHeader(http.StatusInternalServerError)
				return nil
			})
		})

		req := httptest.NewRequest(http.MethodGet, "/fail", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "ERROR", record["level"])
		assert.EqualValues(t, http.StatusInternalServerError, record["status_code"])
	})

	t.Run("skip_suppresses_log", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := router.New[*router.Context]()
		r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
			Logger: jsonLogger(&buf),
			Skip: func(ctx handler.Context) bool {
				return ctx.Request().URL.Path == "/health"
			},
		}))
		r.Get("/health", func(ctx *router.Context) any { return "up" })

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, buf.String())
	})
}
