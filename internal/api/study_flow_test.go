package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/events"
	"github.com/flashdeck/flashdeck-api/internal/mocks"
	"github.com/flashdeck/flashdeck-api/internal/service"
)

type opRecorder struct {
	mu  sync.Mutex
	ops []events.ChangeOp
}

func (r *opRecorder) Publish(event events.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, event.Op)
}

func (r *opRecorder) snapshot() []events.ChangeOp {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.ChangeOp{}, r.ops...)
}

// TestStudySessionFlow walks the whole study loop: generate a draft from
// notes, save it, browse the library, fix an answer, delete a card.
func TestStudySessionFlow(t *testing.T) {
	t.Parallel()

	gen := mocks.NewGeneratorWithCards([]domain.CardDraft{
		{Question: "What is photosynthesis?", Answer: "The process plants use to convert light into chemical energy."},
		{Question: "Where does photosynthesis take place?", Answer: "In the chloroplasts."},
		{Question: "What are the inputs of photosynthesis?", Answer: "Carbon dioxide, water, and light."},
	})

	recorder := &opRecorder{}
	st := newTestStore(t, recorder)
	drafts := service.NewDraftService(gen, st, 0, testLogger())
	library := service.NewLibraryService(st, testLogger())

	generateHandler := NewGenerateHandler(drafts, testLogger())
	draftHandler := NewDraftHandler(drafts, testLogger())
	flashcardHandler := NewFlashcardHandler(library, testLogger())

	router := chi.NewRouter()
	router.Post("/api/generate", generateHandler.Generate)
	router.Post("/api/drafts/{id}/save", draftHandler.Save)
	router.Get("/api/flashcards", flashcardHandler.List)
	router.Put("/api/flashcards/{id}", flashcardHandler.Update)
	router.Delete("/api/flashcards/{id}", flashcardHandler.Delete)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rec
	}

	// Generate a draft from study notes.
	rec := do(http.MethodPost, "/api/generate",
		`{"notes": "Photosynthesis is the process by which plants convert light into chemical energy. It takes place in the chloroplasts.", "subject": "Biology"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var generated GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
	require.Len(t, generated.Flashcards, 3)

	// Save the draft to the library.
	rec = do(http.MethodPost, "/api/drafts/"+generated.DraftID+"/save", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var saved SaveDraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, 3, saved.Saved)

	// Browse the library with a search.
	rec = do(http.MethodGet, "/api/flashcards?search=chloroplasts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed ListFlashcardsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Flashcards, 1)
	cardID := listed.Flashcards[0].ID

	// Fix an answer.
	rec = do(http.MethodPut, "/api/flashcards/"+cardID, `{"answer": "In the chloroplasts of plant cells."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated FlashcardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "In the chloroplasts of plant cells.", updated.Answer)

	// Delete the card.
	rec = do(http.MethodDelete, "/api/flashcards/"+cardID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(http.MethodGet, "/api/flashcards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, 2, listed.Total)

	// Every mutation produced a change event.
	assert.Equal(t, []events.ChangeOp{events.OpInsert, events.OpUpdate, events.OpDelete}, recorder.snapshot())
}
