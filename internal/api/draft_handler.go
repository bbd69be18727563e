package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/service"
)

// DraftHandler handles the draft lifecycle: save, discard, export.
type DraftHandler struct {
	drafts *service.DraftService
	logger *slog.Logger
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(drafts *service.DraftService, logger *slog.Logger) *DraftHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DraftHandler")
	}

	return &DraftHandler{
		drafts: drafts,
		logger: logger.With(slog.String("component", "draft_handler")),
	}
}

// Save handles POST /api/drafts/{id}/save. It promotes the draft to the
// library and clears it.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	draftID, ok := h.draftIDFromPath(w, r)
	if !ok {
		return
	}

	saved, err := h.drafts.Save(r.Context(), draftID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SaveDraftResponse{Saved: saved})
}

// Discard handles DELETE /api/drafts/{id}. The draft is dropped without
// persisting anything.
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	draftID, ok := h.draftIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.drafts.Discard(draftID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/drafts/{id}/export, serving the draft as a
// flashcards.json download.
func (h *DraftHandler) Export(w http.ResponseWriter, r *http.Request) {
	draftID, ok := h.draftIDFromPath(w, r)
	if !ok {
		return
	}

	data, err := h.drafts.Export(draftID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="flashcards.json"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write export response", "error", err)
	}
}

func (h *DraftHandler) draftIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Draft ID is required")
		return uuid.Nil, false
	}

	draftID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Debug("invalid draft ID format", "draft_id", raw)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid draft ID format")
		return uuid.Nil, false
	}

	return draftID, true
}
