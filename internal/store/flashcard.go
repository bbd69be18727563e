package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// SortMode selects the ordering of library listings.
type SortMode string

const (
	// SortRecent orders by creation time, newest first.
	SortRecent SortMode = "recent"

	// SortSubject orders by subject ascending, with recency as tie-break.
	SortSubject SortMode = "subject"
)

// Valid reports whether the sort mode is one of the known values.
func (s SortMode) Valid() bool {
	return s == SortRecent || s == SortSubject
}

// ListQuery is the listing cursor: page/search/sort state controlling which
// slice of the library a caller sees. It is transient view-state and never
// persisted.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Sort     SortMode
}

// Offset returns the row offset derived from page index and page size.
func (q ListQuery) Offset() int {
	return q.Page * q.PageSize
}

// ListResult is one page of the library plus the total number of rows
// matching the query, for pagination-affordance decisions.
type ListResult struct {
	Flashcards []*domain.Flashcard
	Total      int
}

// FieldUpdates describes a partial update of a flashcard. Nil fields are
// left unchanged.
type FieldUpdates struct {
	Subject  *string
	Question *string
	Answer   *string
}

// Empty reports whether no fields are set.
func (u FieldUpdates) Empty() bool {
	return u.Subject == nil && u.Question == nil && u.Answer == nil
}

// FlashcardStore defines the interface for flashcard persistence.
// Implementations: postgres (hosted store) and filestore (local fallback).
type FlashcardStore interface {
	// CreateMultiple saves all cards or none. Implementations must be
	// atomic: if any insert fails, no card from the batch is persisted.
	CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error

	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrNotFound if the flashcard does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// List returns one page of flashcards matching the query, together
	// with the total matching row count. The search term matches
	// case-insensitively as a substring of subject, question, or answer.
	List(ctx context.Context, query ListQuery) (*ListResult, error)

	// Update applies partial field changes to exactly one flashcard and
	// returns the updated row. Returns ErrNotFound if no row matches and
	// ErrInvalidEntity if the update would blank a required field.
	Update(ctx context.Context, id uuid.UUID, updates FieldUpdates) (*domain.Flashcard, error)

	// Delete removes exactly one flashcard by ID.
	// Returns ErrNotFound if the flashcard does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
