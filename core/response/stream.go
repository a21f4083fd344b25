package response

import (
	"io"
	"net/http"

	"github.com/upperxcode/shelf-plus/core/handler"
)

// Stream creates a streaming response that gives direct access to the
// response writer. The writer function should write data in chunks and
// return any errors. The response is flushed after the writer completes.
//
// Example:
//
//	response.Stream(func(w io.Writer) error {
//		for i := 0; i < 100; i++ {
//			fmt.Fprintf(w, "chunk %d\n", i)
//			if f, ok := w.(http.Flusher); ok {
//				f.Flush()
//			}
//		}
//		return nil
//	})
func Stream(writer func(w io.Writer) error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return nil
		}

		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)

		if err := writer(w); err != nil {
			// Status is already written; surface the error to the framework.
			return err
		}

		flusher.Flush()
		return nil
	}
}
