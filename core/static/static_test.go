package static_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upperxcode/shelf-plus/core/router"
	"github.com/upperxcode/shelf-plus/core/static"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "robots.txt", "User-agent: *\n")

	t.Run("serves_file_through_router", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/robots.txt", static.File[*router.Context](path))

		req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "User-agent: *\n", w.Body.String())
	})

	t.Run("missing_file_panics_at_startup", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			static.File[*router.Context](filepath.Join(dir, "missing.txt"))
		})
	})

	t.Run("directory_panics_at_startup", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			static.File[*router.Context](dir)
		})
	})
}

func TestDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "css/app.css", "body{}")
	writeFile(t, dir, "js/app.js", "console.log(1)")

	t.Run("serves_nested_files", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/assets/*", static.Dir[*router.Context](dir, static.WithStripPrefix("/assets")))

		req := httptest.NewRequest(http.MethodGet, "/assets/css/app.css", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "body{}", w.Body.String())
	})

	t.Run("directory_listing_disabled", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/assets/*", static.Dir[*router.Context](dir, static.WithStripPrefix("/assets")))

		req := httptest.NewRequest(http.MethodGet, "/assets/css/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("custom_not_found_handler", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/assets/*", static.Dir[*router.Context](dir,
			static.WithStripPrefix("/assets"),
			static.WithNotFound(func(w http.ResponseWriter, req *http.Request) error {
				w.WriteHeader(http.StatusNotFound)
				_, err := w.Write([]byte("custom not found"))
				return err
			}),
		))

		req := httptest.NewRequest(http.MethodGet, "/assets/nope.png", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "custom not found", w.Body.String())
	})

	t.Run("missing_root_panics_at_startup", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			static.Dir[*router.Context](filepath.Join(dir, "nonexistent"))
		})
	})
}
