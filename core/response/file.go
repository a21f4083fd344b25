package response

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/upperxcode/shelf-plus/core/handler"
	"github.com/upperxcode/shelf-plus/core/mimetype"
)

// File creates a response that serves a static file from the filesystem.
// It automatically detects the content type and supports range requests.
// Returns 404 if the file doesn't exist or is a directory.
func File(path string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		// Prevent directory traversal like ../../etc/passwd
		cleanPath := filepath.Clean(path)

		info, err := os.Stat(cleanPath)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return nil
			}
			return err
		}

		if info.IsDir() {
			http.NotFound(w, r)
			return nil
		}

		// http.ServeFile handles Range requests, If-Modified-Since, and content type detection
		http.ServeFile(w, r, cleanPath)
		return nil
	}
}

// Download creates a response that forces the browser to download the file
// instead of displaying it inline. If filename is empty, uses the base name
// of the file path.
func Download(path string, filename string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		cleanPath := filepath.Clean(path)

		info, err := os.Stat(cleanPath)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return nil
			}
			return err
		}

		if info.IsDir() {
			http.NotFound(w, r)
			return nil
		}

		downloadName := filename
		if downloadName == "" {
			downloadName = filepath.Base(cleanPath)
		}

		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(downloadName)))
		w.Header().Set("Content-Type", mimetype.ByExtension(filepath.Ext(cleanPath)))

		http.ServeFile(w, r, cleanPath)
		return nil
	}
}

// Attachment creates a download response from in-memory content.
func Attachment(content []byte, filename, contentType string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		name := sanitizeFilename(filename)

		if contentType == "" {
			contentType = mimetype.ByExtension(filepath.Ext(name))
		}

		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)

		if len(content) > 0 {
			_, err := w.Write(content)
			return err
		}
		return nil
	}
}

// Reader creates a response that copies the reader's bytes to the client.
// An empty content type defaults to application/octet-stream. If the reader
// is an io.Closer it is closed after copying, on every exit path.
func Reader(rd io.Reader, contentType string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if c, ok := rd.(io.Closer); ok {
			defer c.Close()
		}

		if contentType == "" {
			contentType = mimetype.DefaultType
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)

		_, err := io.Copy(w, rd)
		return err
	}
}

// sanitizeFilename strips characters that would break the
// Content-Disposition header value.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	return strings.ReplaceAll(name, `"`, "'")
}
