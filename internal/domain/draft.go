package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardDraft is a generated question/answer pair that has not been saved yet.
// It carries no identity or timestamps; those are assigned by the store when
// the draft is promoted to the library.
type CardDraft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate checks that both sides of the draft are non-empty after trimming.
func (d CardDraft) Validate() error {
	if strings.TrimSpace(d.Question) == "" {
		return ErrQuestionEmpty
	}
	if strings.TrimSpace(d.Answer) == "" {
		return ErrAnswerEmpty
	}
	return nil
}

// DraftSet is an ordered set of generated cards held in transient memory
// between generation and save/discard. It is never durable: a process
// restart loses unsaved drafts.
type DraftSet struct {
	ID        uuid.UUID   `json:"id"`
	Subject   string      `json:"subject"`
	Cards     []CardDraft `json:"cards"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewDraftSet creates a DraftSet from generated cards. A blank subject falls
// back to DefaultSubject. The card slice is copied so later mutation of the
// caller's slice cannot alter the draft.
func NewDraftSet(subject string, cards []CardDraft) *DraftSet {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}

	copied := make([]CardDraft, len(cards))
	copy(copied, cards)

	return &DraftSet{
		ID:        uuid.New(),
		Subject:   subject,
		Cards:     copied,
		CreatedAt: time.Now().UTC(),
	}
}

// Flashcards converts the draft into Flashcard entities ready for insertion.
// Returns an error if any card fails validation; on error no cards are
// returned, so a partially-valid draft is never persisted.
func (s *DraftSet) Flashcards() ([]*Flashcard, error) {
	cards := make([]*Flashcard, 0, len(s.Cards))
	for _, d := range s.Cards {
		card, err := NewFlashcard(s.Subject, d.Question, d.Answer)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
