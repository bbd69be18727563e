package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// SystemInstruction is the fixed instruction sent to the model. It asks for
// exactly five pairs, but the count is never enforced downstream.
const SystemInstruction = `You are a flashcard generator. Generate 5 concise question-answer flashcards from the provided notes. Respond strictly in valid JSON format, like this:
[
  {"question": "Q1", "answer": "A1"},
  {"question": "Q2", "answer": "A2"},
  {"question": "Q3", "answer": "A3"},
  {"question": "Q4", "answer": "A4"},
  {"question": "Q5", "answer": "A5"}
]`

// UserMessage embeds the raw notes into the user-role message.
func UserMessage(notes string) string {
	return "Notes:\n" + notes
}

// ParseCards strictly parses a model reply as a JSON array of
// {question, answer} objects. Every pair must have a non-blank question and
// answer. On any failure it returns a MalformedOutputError carrying the raw
// text verbatim; output is never coerced into an empty card set.
func ParseCards(raw string) ([]domain.CardDraft, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &MalformedOutputError{Raw: raw, Reason: errors.New("empty model output")}
	}

	var cards []domain.CardDraft
	if err := json.Unmarshal([]byte(trimmed), &cards); err != nil {
		return nil, &MalformedOutputError{Raw: raw, Reason: err}
	}

	for i, card := range cards {
		if err := card.Validate(); err != nil {
			return nil, &MalformedOutputError{
				Raw:    raw,
				Reason: fmt.Errorf("card %d: %w", i, err),
			}
		}
	}

	if cards == nil {
		cards = []domain.CardDraft{}
	}

	return cards, nil
}
