package generation

import (
	"context"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// Generator defines the interface for generating flashcards from free-text
// notes. It is the boundary between the application core and external
// LLM providers; see the openrouter and gemini platform packages for
// implementations.
type Generator interface {
	// GenerateCards creates question/answer pairs from the provided notes.
	// The notes must be non-blank; implementations return ErrEmptyNotes
	// otherwise without contacting the provider.
	//
	// The returned slice may contain any number of cards, including zero.
	// The prompt asks the model for exactly five, but that is a hint, not
	// a validated contract.
	GenerateCards(ctx context.Context, notes string) ([]domain.CardDraft, error)
}
