package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// FlashcardStore is an in-memory mock of store.FlashcardStore with optional
// failure injection. It does not filter, sort, or page; use the filestore
// implementation when List semantics matter.
type FlashcardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]*domain.Flashcard

	// FailWith, when set, makes every mutating call fail with this error.
	FailWith error
}

// Ensure FlashcardStore implements store.FlashcardStore.
var _ store.FlashcardStore = (*FlashcardStore)(nil)

// NewFlashcardStore creates an empty mock store.
func NewFlashcardStore() *FlashcardStore {
	return &FlashcardStore{cards: make(map[uuid.UUID]*domain.Flashcard)}
}

// CreateMultiple stores all cards, or none when failure is injected.
func (m *FlashcardStore) CreateMultiple(_ context.Context, cards []*domain.Flashcard) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	for _, card := range cards {
		m.cards[card.ID] = card
	}
	return nil
}

// GetByID returns a stored card or store.ErrNotFound.
func (m *FlashcardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.cards[id]
	if !ok {
		return nil, fmt.Errorf("flashcard %s: %w", id, store.ErrNotFound)
	}
	return card, nil
}

// List returns every stored card in map order.
func (m *FlashcardStore) List(_ context.Context, _ store.ListQuery) (*store.ListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*domain.Flashcard, 0, len(m.cards))
	for _, card := range m.cards {
		all = append(all, card)
	}
	return &store.ListResult{Flashcards: all, Total: len(all)}, nil
}

// Update returns the stored card unchanged, or store.ErrNotFound.
func (m *FlashcardStore) Update(_ context.Context, id uuid.UUID, _ store.FieldUpdates) (*domain.Flashcard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	card, ok := m.cards[id]
	if !ok {
		return nil, fmt.Errorf("flashcard %s: %w", id, store.ErrNotFound)
	}
	return card, nil
}

// Delete removes a stored card or returns store.ErrNotFound.
func (m *FlashcardStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.cards[id]; !ok {
		return fmt.Errorf("flashcard %s: %w", id, store.ErrNotFound)
	}
	delete(m.cards, id)
	return nil
}

// Count reports how many cards are stored.
func (m *FlashcardStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cards)
}
