package events

import (
	"time"

	"github.com/google/uuid"
)

// ChangeOp identifies the kind of mutation a change event describes.
type ChangeOp string

const (
	OpInsert ChangeOp = "INSERT"
	OpUpdate ChangeOp = "UPDATE"
	OpDelete ChangeOp = "DELETE"
)

// ChangeEvent describes one mutation of the flashcard library. Subscribers
// use it as a refetch signal; it intentionally carries no row data.
type ChangeEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Op is the mutation kind.
	Op ChangeOp `json:"op"`

	// FlashcardID is the affected row, when known. It may be uuid.Nil for
	// batch operations reported as a single event.
	FlashcardID uuid.UUID `json:"flashcard_id"`

	// OccurredAt is the timestamp when the event was observed.
	OccurredAt time.Time `json:"occurred_at"`
}

// NewChangeEvent creates a ChangeEvent for the given operation and row.
func NewChangeEvent(op ChangeOp, flashcardID uuid.UUID) ChangeEvent {
	return ChangeEvent{
		ID:          uuid.New(),
		Op:          op,
		FlashcardID: flashcardID,
		OccurredAt:  time.Now().UTC(),
	}
}

// Publisher is implemented by components that can publish change events.
// Stores publish after successful mutations; the postgres listener publishes
// for changes made by other writers.
type Publisher interface {
	Publish(event ChangeEvent)
}
