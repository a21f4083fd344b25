package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/upperxcode/shelf-plus/core/handler"
)

// DefaultEventKeepAlive is the keep-alive comment interval for event
// streams. Proxies tend to drop idle connections well past this.
const DefaultEventKeepAlive = 30 * time.Second

type sseConfig struct {
	eventName string
	eventID   func(data any) string
	keepAlive time.Duration
}

// EventOption configures an Events response.
type EventOption func(*sseConfig)

// WithEventName sets the event field on every emitted event.
func WithEventName(name string) EventOption {
	return func(cfg *sseConfig) { cfg.eventName = name }
}

// WithEventID derives the id field of each event from its data.
func WithEventID(fn func(data any) string) EventOption {
	return func(cfg *sseConfig) { cfg.eventID = fn }
}

// WithEventKeepAlive sets the keep-alive comment interval. A non-positive
// interval disables keep-alives.
func WithEventKeepAlive(interval time.Duration) EventOption {
	return func(cfg *sseConfig) { cfg.keepAlive = interval }
}

// Events creates a Server-Sent Events response from a channel. Strings and
// byte slices are emitted as-is; other values are JSON-encoded. The stream
// ends when the channel closes or the client disconnects.
func Events(events <-chan any, opts ...EventOption) handler.Response {
	cfg := &sseConfig{keepAlive: DefaultEventKeepAlive}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return nil
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		var keepAlive <-chan time.Time
		if cfg.keepAlive > 0 {
			ticker := time.NewTicker(cfg.keepAlive)
			defer ticker.Stop()
			keepAlive = ticker.C
		}

		for {
			select {
			case <-r.Context().Done():
				return nil

			case <-keepAlive:
				if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
					return nil
				}
				flusher.Flush()

			case data, open := <-events:
				if !open {
					return nil
				}
				if err := writeEvent(w, data, cfg); err != nil {
					return fmt.Errorf("write event: %w", err)
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w io.Writer, data any, cfg *sseConfig) error {
	if cfg.eventName != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", cfg.eventName); err != nil {
			return err
		}
	}
	if cfg.eventID != nil {
		if id := cfg.eventID(data); id != "" {
			if _, err := fmt.Fprintf(w, "id: %s\n", id); err != nil {
				return err
			}
		}
	}

	var payload string
	switch v := data.(type) {
	case string:
		payload = v
	case []byte:
		payload = string(v)
	default:
		encoded, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(encoded)
	}

	_, err := fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
