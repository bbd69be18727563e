package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSubject is used when a flashcard is created without a subject.
const DefaultSubject = "General"

// Flashcard represents a single question/answer pair, the unit of study
// content. Once saved to the library it is independently editable and
// deletable until removed.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	Subject   string    `json:"subject"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFlashcard creates a new Flashcard with a generated ID and UTC
// timestamps. A blank subject falls back to DefaultSubject.
// Returns an error if validation fails.
func NewFlashcard(subject, question, answer string) (*Flashcard, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}

	now := time.Now().UTC()
	card := &Flashcard{
		ID:        uuid.New(),
		Subject:   subject,
		Question:  strings.TrimSpace(question),
		Answer:    strings.TrimSpace(answer),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks the Flashcard invariants: non-nil ID and non-empty
// question and answer after trimming.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if strings.TrimSpace(f.Question) == "" {
		return ErrQuestionEmpty
	}

	if strings.TrimSpace(f.Answer) == "" {
		return ErrAnswerEmpty
	}

	return nil
}
