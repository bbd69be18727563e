package events

import (
	"log/slog"
	"sync"
)

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls this far behind has events dropped; a refetch signal is idempotent,
// so dropped events only delay a refresh that the next event triggers anyway.
const subscriberBuffer = 8

// ChangeBroker fans change events out to subscribers. It is the in-process
// hub between mutation sources (stores, the postgres listener) and the
// SSE handler that streams refetch signals to clients.
type ChangeBroker struct {
	mu          sync.Mutex
	subscribers map[int]chan ChangeEvent
	nextID      int
	logger      *slog.Logger
}

// NewChangeBroker creates a new broker.
func NewChangeBroker(logger *slog.Logger) *ChangeBroker {
	if logger == nil {
		logger = slog.Default()
	}

	return &ChangeBroker{
		subscribers: make(map[int]chan ChangeEvent),
		logger:      logger.With(slog.String("component", "change_broker")),
	}
}

// Ensure ChangeBroker implements Publisher.
var _ Publisher = (*ChangeBroker)(nil)

// Subscribe registers a new subscriber and returns its event channel plus a
// cancel function. The cancel function is idempotent and closes the channel.
func (b *ChangeBroker) Subscribe() (<-chan ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan ChangeEvent, subscriberBuffer)
	b.subscribers[id] = ch

	b.logger.Debug("subscriber added", "subscriber_id", id, "subscriber_count", len(b.subscribers))

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
			close(ch)
		})
	}

	return ch, cancel
}

// Publish delivers the event to all current subscribers. Delivery is
// non-blocking: a full subscriber buffer drops the event for that
// subscriber only.
func (b *ChangeBroker) Publish(event ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.Warn("subscriber buffer full, dropping event",
				"subscriber_id", id,
				"event_id", event.ID,
				"op", event.Op)
		}
	}
}
