package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// DefaultMaxDrafts caps how many unsaved draft sets the registry holds
// before the oldest is evicted.
const DefaultMaxDrafts = 64

// DraftService orchestrates the generate/review/save flow. Generated drafts
// live only in memory: a draft that is never saved or discarded is evicted
// once the registry cap is reached, and all drafts are lost on restart.
type DraftService struct {
	generator generation.Generator
	store     store.FlashcardStore
	logger    *slog.Logger

	mu        sync.Mutex
	drafts    map[uuid.UUID]*domain.DraftSet
	order     []uuid.UUID
	maxDrafts int
}

// NewDraftService creates a DraftService. maxDrafts <= 0 selects
// DefaultMaxDrafts.
func NewDraftService(generator generation.Generator, flashcardStore store.FlashcardStore, maxDrafts int, logger *slog.Logger) *DraftService {
	if generator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("generator cannot be nil")
	}
	if flashcardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("flashcardStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxDrafts <= 0 {
		maxDrafts = DefaultMaxDrafts
	}

	return &DraftService{
		generator: generator,
		store:     flashcardStore,
		logger:    logger.With(slog.String("component", "draft_service")),
		drafts:    make(map[uuid.UUID]*domain.DraftSet),
		maxDrafts: maxDrafts,
	}
}

// Generate turns notes into a draft set of flashcards and registers it for a
// later save or discard. Generator errors propagate typed and leave the
// registry untouched.
func (s *DraftService) Generate(ctx context.Context, subject, notes string) (*domain.DraftSet, error) {
	cards, err := s.generator.GenerateCards(ctx, notes)
	if err != nil {
		return nil, err
	}

	draft := domain.NewDraftSet(subject, cards)

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.order = append(s.order, draft.ID)
	for len(s.order) > s.maxDrafts {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.drafts, evicted)
		s.logger.Debug("evicted unsaved draft", "draft_id", evicted)
	}
	s.mu.Unlock()

	s.logger.Info("generated draft",
		"draft_id", draft.ID,
		"subject", draft.Subject,
		"cards", len(draft.Cards))

	return draft, nil
}

// Get returns a registered draft by ID.
func (s *DraftService) Get(id uuid.UUID) (*domain.DraftSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %s: %w", id, ErrDraftNotFound)
	}
	return draft, nil
}

// Save promotes a draft to the library in one all-or-nothing insert and
// clears it from the registry. An empty draft is rejected without touching
// the store, and the draft stays registered. Returns the number of cards
// saved.
func (s *DraftService) Save(ctx context.Context, id uuid.UUID) (int, error) {
	draft, err := s.Get(id)
	if err != nil {
		return 0, err
	}

	if len(draft.Cards) == 0 {
		s.logger.Warn("save requested for empty draft", "draft_id", id)
		return 0, fmt.Errorf("draft %s: %w", id, ErrEmptyDraft)
	}

	cards, err := draft.Flashcards()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.store.CreateMultiple(ctx, cards); err != nil {
		return 0, err
	}

	s.remove(id)
	s.logger.Info("saved draft to library", "draft_id", id, "cards", len(cards))
	return len(cards), nil
}

// Discard drops a draft without persisting anything.
func (s *DraftService) Discard(id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.drafts[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("draft %s: %w", id, ErrDraftNotFound)
	}

	s.remove(id)
	s.logger.Info("discarded draft", "draft_id", id)
	return nil
}

// exportedCard is the export file shape: the draft's cards with the set's
// subject denormalized onto each entry.
type exportedCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Subject  string `json:"subject"`
}

// Export renders a draft as a pretty-printed JSON array. The output depends
// only on draft content, so repeated exports of an unmutated draft are
// byte-identical.
func (s *DraftService) Export(id uuid.UUID) ([]byte, error) {
	draft, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	exported := make([]exportedCard, len(draft.Cards))
	for i, card := range draft.Cards {
		exported[i] = exportedCard{
			Question: card.Question,
			Answer:   card.Answer,
			Subject:  draft.Subject,
		}
	}

	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode draft export: %w", err)
	}

	return data, nil
}

// Len reports how many drafts are currently registered.
func (s *DraftService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *DraftService) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
