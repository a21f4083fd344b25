package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

type outputFormat int

const (
	formatText outputFormat = iota
	formatJSON
	formatDev
)

// ContextExtractor pulls an attribute out of a context. It reports false
// when the context carries nothing useful, in which case the attribute is
// skipped.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	output      io.Writer
	level       slog.Leveler
	format      outputFormat
	handlerOpts *slog.HandlerOptions
	attrs       []slog.Attr
	extractors  []ContextExtractor
}

// Option configures the logger produced by New.
type Option func(*config)

// New creates a slog.Logger from the given options. With no options it logs
// text to stdout at info level.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		output: os.Stdout,
		level:  slog.LevelInfo,
		format: formatText,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := cfg.handlerOpts
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{Level: cfg.level}
	} else if handlerOpts.Level == nil {
		handlerOpts.Level = cfg.level
	}

	var h slog.Handler
	switch cfg.format {
	case formatJSON:
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	case formatDev:
		h = tint.NewHandler(cfg.output, &tint.Options{
			Level:       handlerOpts.Level,
			AddSource:   handlerOpts.AddSource,
			ReplaceAttr: handlerOpts.ReplaceAttr,
			TimeFormat:  time.Kitchen,
		})
	default:
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	}

	if len(cfg.extractors) > 0 {
		h = &contextHandler{next: h, extractors: cfg.extractors}
	}

	log := slog.New(h)
	if len(cfg.attrs) > 0 {
		args := make([]any, 0, len(cfg.attrs))
		for _, a := range cfg.attrs {
			args = append(args, a)
		}
		log = log.With(args...)
	}
	return log
}

// SetAsDefault installs log as the process-wide default used by the slog
// package-level functions.
func SetAsDefault(log *slog.Logger) {
	slog.SetDefault(log)
}

// WithDevelopment configures a colorized text logger at debug level,
// tagged with the application name.
func WithDevelopment(app string) Option {
	return func(c *config) {
		c.format = formatDev
		c.level = slog.LevelDebug
		c.attrs = append(c.attrs, slog.String("app", app))
	}
}

// WithProduction configures a JSON logger at info level, tagged with the
// application name.
func WithProduction(app string) Option {
	return func(c *config) {
		c.format = formatJSON
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs, slog.String("app", app))
	}
}

// WithStaging is WithProduction for staging environments.
func WithStaging(app string) Option {
	return func(c *config) {
		c.format = formatJSON
		c.level = slog.LevelInfo
		c.attrs = append(c.attrs,
			slog.String("app", app),
			slog.String("env", "staging"),
		)
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Leveler) Option {
	return func(c *config) { c.level = level }
}

// WithOutput redirects log output to w.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithJSONFormatter switches output to JSON.
func WithJSONFormatter() Option {
	return func(c *config) { c.format = formatJSON }
}

// WithTextFormatter switches output to logfmt-style text.
func WithTextFormatter() Option {
	return func(c *config) { c.format = formatText }
}

// WithHandlerOptions overrides the slog handler options entirely. A nil
// Level inside falls back to the level set by WithLevel.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) { c.handlerOpts = opts }
}

// WithAttr attaches attributes to every record the logger emits.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithContextExtractors registers functions that derive attributes from the
// context passed to InfoContext and friends.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) { c.extractors = append(c.extractors, extractors...) }
}

// WithContextValue registers an extractor that copies a context value into
// an attribute with the given key.
func WithContextValue(attrKey string, ctxKey any) Option {
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		if v := ctx.Value(ctxKey); v != nil {
			return slog.Any(attrKey, v), true
		}
		return slog.Attr{}, false
	})
}

// contextHandler decorates a handler with context attribute extraction.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
