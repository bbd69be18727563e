package api

import (
	"time"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Notes   string `json:"notes"`
	Subject string `json:"subject"`
}

// CardDraftResponse is one generated question/answer pair.
type CardDraftResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateResponse is the body of a successful generation.
type GenerateResponse struct {
	DraftID    string              `json:"draft_id"`
	Subject    string              `json:"subject"`
	Flashcards []CardDraftResponse `json:"flashcards"`
}

// SaveDraftResponse reports how many cards a save promoted to the library.
type SaveDraftResponse struct {
	Saved int `json:"saved"`
}

// FlashcardResponse is one saved library card.
type FlashcardResponse struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListFlashcardsResponse is one page of the library.
type ListFlashcardsResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
}

// UpdateFlashcardRequest is the body of PUT /api/flashcards/{id}. Absent
// fields are left unchanged.
type UpdateFlashcardRequest struct {
	Subject  *string `json:"subject"`
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

func draftToResponse(draft *domain.DraftSet) GenerateResponse {
	cards := make([]CardDraftResponse, len(draft.Cards))
	for i, card := range draft.Cards {
		cards[i] = CardDraftResponse{Question: card.Question, Answer: card.Answer}
	}

	return GenerateResponse{
		DraftID:    draft.ID.String(),
		Subject:    draft.Subject,
		Flashcards: cards,
	}
}

func flashcardToResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:        card.ID.String(),
		Subject:   card.Subject,
		Question:  card.Question,
		Answer:    card.Answer,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}
