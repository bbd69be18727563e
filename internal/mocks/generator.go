package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/generation"
)

// Generator is a mock implementation of generation.Generator that returns
// canned cards or a canned error. It mirrors the blank-notes check every
// real backend performs.
type Generator struct {
	mu    sync.Mutex
	cards []domain.CardDraft
	err   error
	calls int
}

// Ensure Generator implements generation.Generator.
var _ generation.Generator = (*Generator)(nil)

// NewGeneratorWithCards creates a mock that returns the given cards.
func NewGeneratorWithCards(cards []domain.CardDraft) *Generator {
	return &Generator{cards: cards}
}

// NewGeneratorWithError creates a mock whose calls fail with err.
func NewGeneratorWithError(err error) *Generator {
	return &Generator{err: err}
}

// GenerateCards returns the configured cards or error and counts the call.
func (g *Generator) GenerateCards(_ context.Context, notes string) ([]domain.CardDraft, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	if strings.TrimSpace(notes) == "" {
		return nil, generation.ErrEmptyNotes
	}
	if g.err != nil {
		return nil, g.err
	}

	cards := make([]domain.CardDraft, len(g.cards))
	copy(cards, g.cards)
	return cards, nil
}

// Calls reports how many times GenerateCards was invoked.
func (g *Generator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
