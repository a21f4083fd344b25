// Package logger builds slog loggers the way this framework's components
// expect them: structured output, environment presets, and attribute
// helpers for the HTTP fields the router and middleware log.
//
// # Construction
//
//	log := logger.New(logger.WithDevelopment("myapp"))   // tint, debug level
//	log := logger.New(logger.WithProduction("myapp"))    // JSON, info level
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithOutput(os.Stderr),
//		logger.WithAttr(slog.String("service", "api")),
//	)
//
// # Context extraction
//
// Extractors lift request-scoped values into every record logged with a
// context-aware method:
//
//	log := logger.New(
//		logger.WithProduction("myapp"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "processing")   // carries request_id when present
//
// WithContextExtractors accepts arbitrary extraction logic for values that
// need reshaping before logging.
//
// # Attribute helpers
//
// The helpers in attr.go cover the fields this framework emits (Method,
// Path, StatusCode, Latency, RequestID, Component, Error and friends).
// Helpers that can receive a missing value return the zero Attr, which
// slog drops:
//
//	log.Error("request failed",
//		logger.Error(err),          // skipped when err is nil
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//	)
package logger
