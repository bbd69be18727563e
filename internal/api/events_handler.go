package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/events"
)

// EventsHandler streams library change notifications to clients over
// Server-Sent Events. Each event is a refetch signal; clients reload their
// current page when one arrives.
type EventsHandler struct {
	broker *events.ChangeBroker
	logger *slog.Logger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(broker *events.ChangeBroker, logger *slog.Logger) *EventsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EventsHandler")
	}

	return &EventsHandler{
		broker: broker,
		logger: logger.With(slog.String("component", "events_handler")),
	}
}

// Subscribe handles GET /api/flashcards/events. The connection stays open
// until the client disconnects.
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Warn("response writer does not support streaming")
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	ch, cancel := h.broker.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Open the stream immediately so clients know the subscription is live.
	fmt.Fprint(w, ": subscribed\n\n")
	flusher.Flush()

	h.logger.Debug("SSE subscriber connected", "remote_addr", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("SSE subscriber disconnected", "remote_addr", r.RemoteAddr)
			return
		case event, open := <-ch:
			if !open {
				return
			}
			if err := writeEvent(w, event); err != nil {
				h.logger.Debug("failed to write SSE event", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event events.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
	return err
}
