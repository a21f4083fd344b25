package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/response"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Rate is the sustained request rate per key, in requests per second
	Rate float64
	// Burst is the maximum burst size per key
	Burst int
	// KeyExtractor defines the rate limiting key (default: client IP)
	KeyExtractor func(ctx handler.Context) string
	// OnLimit handles rejected requests (default: 429 Too Many Requests)
	OnLimit func(ctx handler.Context) handler.Response
	// CleanupInterval controls how often idle limiters are pruned (default: 1m)
	CleanupInterval time.Duration
	// MaxIdle removes limiters idle longer than this (default: 5m)
	MaxIdle time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit creates a per-key token bucket rate limiting middleware.
// Panics if Rate or Burst is not positive.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Rate <= 0 || cfg.Burst <= 0 {
		panic("ratelimit middleware: positive rate and burst are required")
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx handler.Context) string {
			host, _, err := net.SplitHostPort(ctx.Request().RemoteAddr)
			if err != nil {
				return ctx.Request().RemoteAddr
			}
			return host
		}
	}

	if cfg.OnLimit == nil {
		cfg.OnLimit = func(ctx handler.Context) handler.Response {
			return response.Error(http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 5 * time.Minute
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) any {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			key := cfg.KeyExtractor(ctx)

			mu.Lock()
			now := time.Now()

			// Lazy cleanup of expired limiters.
			if now.Sub(lastCleanup) >= cleanupInterval {
				for k, e := range limiters {
					if now.Sub(e.lastSeen) > maxIdle {
						delete(limiters, k)
					}
				}
				lastCleanup = now
			}

			entry, found := limiters[key]
			if !found {
				entry = &limiterEntry{
					limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
				}
				limiters[key] = entry
			}
			entry.lastSeen = now
			mu.Unlock()

			if !entry.limiter.Allow() {
				retryAfter := strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64)
				ctx.ResponseWriter().Header().Set("Retry-After", retryAfter)
				return cfg.OnLimit(ctx)
			}

			return next(ctx)
		}
	}
}
