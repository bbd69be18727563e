package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// DefaultPageSize mirrors the study view: five cards per page.
const DefaultPageSize = 5

// LibraryService exposes the saved-card operations: paged listing with
// search and sort, field edits, and deletion.
type LibraryService struct {
	store  store.FlashcardStore
	logger *slog.Logger
}

// NewLibraryService creates a LibraryService backed by the given store.
func NewLibraryService(flashcardStore store.FlashcardStore, logger *slog.Logger) *LibraryService {
	if flashcardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("flashcardStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LibraryService{
		store:  flashcardStore,
		logger: logger.With(slog.String("component", "library_service")),
	}
}

// List returns one page of the library. Zero page size and blank sort fall
// back to the defaults (five per page, newest first).
func (s *LibraryService) List(ctx context.Context, query store.ListQuery) (*store.ListResult, error) {
	if query.PageSize == 0 {
		query.PageSize = DefaultPageSize
	}
	if query.Sort == "" {
		query.Sort = store.SortRecent
	}

	return s.store.List(ctx, query)
}

// Update applies partial field changes to one flashcard and returns the
// updated row.
func (s *LibraryService) Update(ctx context.Context, id uuid.UUID, updates store.FieldUpdates) (*domain.Flashcard, error) {
	card, err := s.store.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.logger.Info("updated flashcard", "flashcard_id", id)
	return card, nil
}

// Delete removes exactly one flashcard.
func (s *LibraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("deleted flashcard", "flashcard_id", id)
	return nil
}
