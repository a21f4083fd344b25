package server

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloader serves requests through an atomically swappable handler and
// rebuilds it from the factory whenever a watched directory changes.
// In-flight requests keep the handler they started with.
type reloader struct {
	factory HandlerFactory
	current atomic.Pointer[http.Handler]
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	done    chan struct{}
}

func newReloader(factory HandlerFactory, initial http.Handler, dirs []string, logger *slog.Logger) (*reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	watched := 0
	for _, dir := range dirs {
		n, err := watchRecursive(watcher, dir)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		watched += n
	}
	if watched == 0 {
		watcher.Close()
		return nil, ErrNothingToWatch
	}

	r := &reloader{
		factory: factory,
		watcher: watcher,
		logger:  logger,
		done:    make(chan struct{}),
	}
	r.current.Store(&initial)

	go r.loop()
	return r, nil
}

func (r *reloader) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	(*r.current.Load()).ServeHTTP(w, req)
}

// Close stops the watcher. The last built handler keeps serving.
func (r *reloader) Close() error {
	err := r.watcher.Close()
	<-r.done
	return err
}

func (r *reloader) loop() {
	defer close(r.done)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case evt, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) &&
				!evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					// New subdirectories must be watched explicitly.
					_, _ = watchRecursive(r.watcher, evt.Name)
				}
			}
			// Debounce bursts so one save triggers one rebuild.
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			r.rebuild()

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Error("filesystem watcher error", "error", err)
		}
	}
}

func (r *reloader) rebuild() {
	handler, err := r.factory()
	if err != nil {
		r.logger.Error("handler rebuild failed, keeping previous handler", "error", err)
		return
	}
	r.current.Store(&handler)
	r.logger.Info("handler reloaded")
}

// watchRecursive adds dir and every non-hidden subdirectory to the watcher
// and returns the number of directories added. A missing dir is skipped.
func watchRecursive(watcher *fsnotify.Watcher, dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); strings.HasPrefix(name, ".") && path != dir {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		count++
		return nil
	})
	return count, err
}
