// Package middleware provides cross-cutting handler middleware compatible
// with any router context type.
//
// Middleware wraps handler.HandlerFunc and may inspect or replace the
// handler's return value. Values that are already handler.Response can be
// decorated at render time; raw values pass through untouched and are
// finished later by response resolution.
//
// Usage:
//
//	r := router.New[*router.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*router.Context](),
//			middleware.Logging[*router.Context](),
//		),
//	)
//
//	r.Use(middleware.RateLimit[*router.Context](middleware.RateLimitConfig{
//		Rate:  10,
//		Burst: 20,
//	}))
package middleware
