package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for completed requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// Logging creates a request logging middleware with default configuration.
// It logs method, path, status, and latency for every completed request.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom configuration.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) any {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			result := next(ctx)

			resp, ok := result.(handler.Response)
			if !ok {
				// Raw values have no status yet; log what is known and
				// let resolution finish the response.
				logRequest(ctx, cfg, 0, time.Since(start))
				return result
			}

			return handler.Response(func(w http.ResponseWriter, r *http.Request) error {
				sw := &statusCapturingWriter{ResponseWriter: w}
				err := resp(sw, r)
				logRequest(ctx, cfg, sw.statusOrOK(), time.Since(start))
				return err
			})
		}
	}
}

func logRequest(ctx handler.Context, cfg LoggingConfig, status int, elapsed time.Duration) {
	req := ctx.Request()

	attrs := []slog.Attr{
		logger.Component(cfg.Component),
		logger.Method(req.Method),
		logger.Path(req.URL.Path),
		logger.RemoteAddr(req.RemoteAddr),
		logger.Latency(elapsed),
	}

	if status > 0 {
		attrs = append(attrs, logger.StatusCode(status))
	}
	if req.URL.RawQuery != "" {
		attrs = append(attrs, logger.Query(req.URL.RawQuery))
	}
	if requestID, found := GetRequestID(ctx); found {
		attrs = append(attrs, logger.RequestID(requestID))
	}

	level := cfg.LogLevel
	switch {
	case elapsed >= cfg.SlowRequestThreshold:
		level = slog.LevelWarn
		attrs = append(attrs, slog.Bool("slow_request", true))
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	}

	cfg.Logger.LogAttrs(req.Context(), level, "request completed", attrs...)
}

// statusCapturingWriter records the status code written to the response.
type statusCapturingWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusCapturingWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusCapturingWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusCapturingWriter) statusOrOK() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusCapturingWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
