package router

import (
	"net/http"
)

// Cascade combines several handlers into one that tries each in order and
// returns the first response that is not a decline. A handler declines by
// responding 404 Not Found or 405 Method Not Allowed, the router's natural
// "no matching route" outcomes, so independently built routers can be
// stacked with first-match-wins semantics:
//
//	http.ListenAndServe(addr, router.Cascade(apiRouter, webRouter))
//
// If every handler declines, the last declining response is replayed, so
// an exhausted cascade surfaces as a regular not-found to its own caller
// (which may itself be another cascade).
func Cascade(handlers ...http.Handler) http.Handler {
	return CascadeWith([]int{http.StatusNotFound, http.StatusMethodNotAllowed}, handlers...)
}

// CascadeWith is Cascade with a custom set of decline status codes.
func CascadeWith(declineStatuses []int, handlers ...http.Handler) http.Handler {
	if len(handlers) == 0 {
		panic(ErrNilRouter)
	}

	decline := make(map[int]bool, len(declineStatuses))
	for _, status := range declineStatuses {
		decline[status] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var last *responseWriter

		for _, h := range handlers {
			buf := newBufferedWriter()
			h.ServeHTTP(buf, r)

			if !decline[buf.Status()] {
				buf.replay(w)
				return
			}
			last = buf
		}

		// All handlers declined; surface the final decline as-is.
		last.replay(w)
	})
}
