package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)
)

// Load parses environment variables into cfg using `env` struct tags.
// Each configuration type is loaded once per process and cached; subsequent
// calls for the same type return the cached value. A .env file in the
// working directory is loaded on first use, if present.
//
// Variable lookup is case-insensitive on the name: PORT, port, and Port in
// the environment all satisfy `env:"PORT"`.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: nil target")
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load() // missing .env is not an error
	})

	typ := reflect.TypeOf(*cfg)

	cacheMu.RLock()
	cached, ok := cache[typ]
	cacheMu.RUnlock()
	if ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environSnapshot()}); err != nil {
		return fmt.Errorf("config: failed to load %s: %w", typ, err)
	}

	cacheMu.Lock()
	cache[typ] = *cfg
	cacheMu.Unlock()

	return nil
}

// MustLoad is Load that panics on failure, useful at application startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// environSnapshot captures the process environment with uppercased names,
// which makes lookups against uppercase `env` tags case-insensitive.
func environSnapshot() map[string]string {
	environ := os.Environ()
	snapshot := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		upper := strings.ToUpper(name)
		// An exact-case variable wins over a differently-cased one.
		if _, exists := snapshot[upper]; !exists || name == upper {
			snapshot[upper] = value
		}
	}
	return snapshot
}
