package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/mocks"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

func newDraftRouter(t *testing.T, gen *mocks.Generator, st store.FlashcardStore) (*chi.Mux, *service.DraftService) {
	t.Helper()

	drafts := service.NewDraftService(gen, st, 0, testLogger())
	handler := NewDraftHandler(drafts, testLogger())

	r := chi.NewRouter()
	r.Post("/api/drafts/{id}/save", handler.Save)
	r.Delete("/api/drafts/{id}", handler.Discard)
	r.Get("/api/drafts/{id}/export", handler.Export)
	return r, drafts
}

var biologyCards = []domain.CardDraft{
	{Question: "What is photosynthesis?", Answer: "Light to chemical energy."},
	{Question: "Where does it occur?", Answer: "Chloroplasts."},
}

func TestSaveDraft(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t, nil)
	router, drafts := newDraftRouter(t, mocks.NewGeneratorWithCards(biologyCards), st)

	draft, err := drafts.Generate(ctx, "Biology", "notes")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/drafts/"+draft.ID.String()+"/save", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SaveDraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Saved)

	// The cards are in the library and the draft is gone.
	result, err := st.List(ctx, store.ListQuery{PageSize: 10, Sort: store.SortRecent})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/drafts/"+draft.ID.String()+"/save", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveEmptyDraft(t *testing.T) {
	t.Parallel()

	st := newTestStore(t, nil)
	router, drafts := newDraftRouter(t, mocks.NewGeneratorWithCards(nil), st)

	draft, err := drafts.Generate(context.Background(), "Biology", "notes")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/drafts/"+draft.ID.String()+"/save", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	result, err := st.List(context.Background(), store.ListQuery{PageSize: 10, Sort: store.SortRecent})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestDiscardDraft(t *testing.T) {
	t.Parallel()

	router, drafts := newDraftRouter(t, mocks.NewGeneratorWithCards(biologyCards), newTestStore(t, nil))

	draft, err := drafts.Generate(context.Background(), "Biology", "notes")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/drafts/"+draft.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err = drafts.Get(draft.ID)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)
}

func TestExportDraft(t *testing.T) {
	t.Parallel()

	router, drafts := newDraftRouter(t, mocks.NewGeneratorWithCards(biologyCards), newTestStore(t, nil))

	draft, err := drafts.Generate(context.Background(), "Biology", "notes")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/drafts/"+draft.ID.String()+"/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="flashcards.json"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var exported []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exported))
	require.Len(t, exported, 2)
	assert.Equal(t, "Biology", exported[0]["subject"])
	assert.Equal(t, "What is photosynthesis?", exported[0]["question"])

	// Repeated export of the unchanged draft is byte-identical.
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/api/drafts/"+draft.ID.String()+"/export", nil))
	assert.Equal(t, rec.Body.Bytes(), rec2.Body.Bytes())
}

func TestDraftIDValidation(t *testing.T) {
	t.Parallel()

	router, _ := newDraftRouter(t, mocks.NewGeneratorWithCards(biologyCards), newTestStore(t, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/drafts/not-a-uuid/save", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/drafts/"+uuid.New().String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
