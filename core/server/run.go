package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/upperxcode/shelf-plus/core/config"
)

// HandlerFactory builds the application handler. Under hot reload it is
// invoked again after every batch of filesystem changes.
type HandlerFactory func() (http.Handler, error)

// Instance is a running application bound to a listener.
type Instance struct {
	addr    net.Addr
	cancel  context.CancelFunc
	group   *errgroup.Group
	reload  *reloader
	baseURL string
}

// Addr returns the bound listener address. With Port 0 this is the
// ephemeral port the kernel assigned.
func (i *Instance) Addr() net.Addr { return i.addr }

// BaseURL returns "http://host:port" for the bound listener.
func (i *Instance) BaseURL() string { return i.baseURL }

// Close stops the server and releases the listener, blocking until the
// graceful shutdown completes.
func (i *Instance) Close() error {
	i.cancel()
	if i.reload != nil {
		_ = i.reload.Close()
	}
	return i.group.Wait()
}

// Wait blocks until the server exits on its own.
func (i *Instance) Wait() error {
	return i.group.Wait()
}

// Run loads Config from the environment (.env included), builds the
// handler from factory, binds the listener, and serves in the background.
// With Config.HotReload enabled the handler is rebuilt from factory when
// watched directories change.
func Run(ctx context.Context, factory HandlerFactory, opts ...Option) (*Instance, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return RunWithConfig(ctx, cfg, factory, opts...)
}

// RunWithConfig is Run with an explicit configuration.
func RunWithConfig(ctx context.Context, cfg Config, factory HandlerFactory, opts ...Option) (*Instance, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}

	handler, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFactoryFailed, err)
	}

	srv, err := NewFromConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}

	var serving http.Handler = handler
	var reload *reloader
	if cfg.HotReload {
		dirs := cfg.WatchDirs
		if len(dirs) == 0 {
			dirs = []string{"."}
		}
		reload, err = newReloader(factory, handler, dirs, srv.logger)
		if err != nil {
			// The application still works without reload support.
			srv.logger.Warn("hot reload disabled", "error", err)
			reload = nil
		} else {
			serving = reload
		}
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		if reload != nil {
			_ = reload.Close()
		}
		return nil, fmt.Errorf("failed to bind %s: %w", cfg.Addr(), err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)
	group.Go(srv.RunFunc(groupCtx, ln, serving))

	return &Instance{
		addr:    ln.Addr(),
		cancel:  cancel,
		group:   group,
		reload:  reload,
		baseURL: "http://" + ln.Addr().String(),
	}, nil
}
