package demo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/upperxcode/shelf-plus/core/config"
	"github.com/upperxcode/shelf-plus/core/logger"
	"github.com/upperxcode/shelf-plus/core/router"
	"github.com/upperxcode/shelf-plus/core/server"
	"github.com/upperxcode/shelf-plus/middleware"
)

// App wires the router, middleware stack, and server config into a runnable
// application. It is the reference composition of the framework's pieces.
type App struct {
	config Config
	router router.Router[*Context]
	logger *slog.Logger
}

type AppOption func(*App) error

func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		switch app.config.Env {
		case "production":
			app.logger = logger.New(logger.WithProduction(app.config.AppName))
		case "staging":
			app.logger = logger.New(logger.WithStaging(app.config.AppName))
		default:
			app.logger = logger.New(logger.WithDevelopment(app.config.AppName))
		}
	}

	if app.router == nil {
		r := router.New(
			router.WithContextFactory(newContext),
			router.WithLogger[*Context](app.logger),
		)
		r.Use(
			middleware.RequestID[*Context](),
			middleware.LoggingWithLogger[*Context](app.logger),
			middleware.RateLimit[*Context](middleware.RateLimitConfig{
				Rate:  app.config.RateLimit,
				Burst: app.config.RateBurst,
			}),
		)
		registerRoutes(r)
		app.router = r
	}

	return app, nil
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithRouter(router router.Router[*Context]) AppOption {
	return func(app *App) error {
		if router == nil {
			return errors.New("router cannot be nil")
		}
		app.router = router
		return nil
	}
}

// Handler exposes the composed router, mainly for tests and for embedding
// the app inside a Cascade.
func (app *App) Handler() http.Handler {
	return app.router
}

// Run serves the application until ctx is canceled, rebuilding the handler
// on filesystem changes when hot reload is enabled.
func (app *App) Run(ctx context.Context) error {
	instance, err := server.RunWithConfig(ctx, app.config.Server,
		func() (http.Handler, error) { return app.router, nil },
		server.WithLogger(app.logger),
	)
	if err != nil {
		return err
	}
	defer instance.Close()

	app.logger.Info("listening", "url", instance.BaseURL(), "app", app.config.AppName)
	return instance.Wait()
}
