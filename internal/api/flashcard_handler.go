package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// maxPageSize bounds what a client can request in one page.
const maxPageSize = 100

// FlashcardHandler handles library requests: list, update, delete.
type FlashcardHandler struct {
	library *service.LibraryService
	logger  *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(library *service.LibraryService, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FlashcardHandler")
	}

	return &FlashcardHandler{
		library: library,
		logger:  logger.With(slog.String("component", "flashcard_handler")),
	}
}

// List handles GET /api/flashcards requests with page, page_size, search,
// and sort query parameters.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.library.List(r.Context(), query)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	cards := make([]FlashcardResponse, len(result.Flashcards))
	for i, card := range result.Flashcards {
		cards[i] = flashcardToResponse(card)
	}

	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = service.DefaultPageSize
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListFlashcardsResponse{
		Flashcards: cards,
		Total:      result.Total,
		Page:       query.Page,
		PageSize:   pageSize,
	})
}

// Update handles PUT /api/flashcards/{id} requests with a partial-update
// body.
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Debug("invalid update request body", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	updates := store.FieldUpdates{
		Subject:  req.Subject,
		Question: req.Question,
		Answer:   req.Answer,
	}
	if updates.Empty() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No fields to update")
		return
	}

	card, err := h.library.Update(r.Context(), id, updates)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// Delete handles DELETE /api/flashcards/{id} requests.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.library.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FlashcardHandler) cardIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Flashcard ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Debug("invalid flashcard ID format", "flashcard_id", raw)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid flashcard ID format")
		return uuid.Nil, false
	}

	return id, true
}

// parseListQuery reads pagination, search, and sort parameters. Omitted
// parameters fall back to service defaults.
func parseListQuery(r *http.Request) (store.ListQuery, error) {
	query := store.ListQuery{Sort: store.SortRecent}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return store.ListQuery{}, errInvalidParam("page")
		}
		query.Page = page
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 || size > maxPageSize {
			return store.ListQuery{}, errInvalidParam("page_size")
		}
		query.PageSize = size
	}

	query.Search = r.URL.Query().Get("search")

	if raw := r.URL.Query().Get("sort"); raw != "" {
		sort := store.SortMode(raw)
		if !sort.Valid() {
			return store.ListQuery{}, errInvalidParam("sort")
		}
		query.Sort = sort
	}

	return query, nil
}

type paramError string

func errInvalidParam(name string) error { return paramError(name) }

func (e paramError) Error() string { return "Invalid " + string(e) + " parameter" }
