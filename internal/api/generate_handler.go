package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/service"
)

// upstreamErrorResponse is the gateway's diagnostic payload for a failed
// provider call: the upstream status and body are forwarded so the caller
// can see what the provider said.
type upstreamErrorResponse struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

// malformedOutputResponse carries the model's unparseable reply verbatim.
type malformedOutputResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

// GenerateHandler handles POST /api/generate requests.
type GenerateHandler struct {
	drafts *service.DraftService
	logger *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(drafts *service.DraftService, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GenerateHandler")
	}

	return &GenerateHandler{
		drafts: drafts,
		logger: logger.With(slog.String("component", "generate_handler")),
	}
}

// Generate turns submitted notes into a draft set of flashcards.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.logger.Debug("invalid generate request body", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Notes) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Notes are required")
		return
	}

	draft, err := h.drafts.Generate(r.Context(), req.Subject, req.Notes)
	if err != nil {
		h.respondGenerationError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, draftToResponse(draft))
}

// respondGenerationError renders generator failures. Unlike the rest of the
// API, upstream and parse failures include diagnostics in the body: the
// caller needs them to see what the model actually returned.
func (h *GenerateHandler) respondGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	var upstreamErr *generation.UpstreamError
	if errors.As(err, &upstreamErr) {
		h.logger.Error("upstream model request failed",
			"status", upstreamErr.StatusCode,
			"trace_id", shared.GetTraceID(r.Context()))
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, upstreamErrorResponse{
			Error:   GetSafeErrorMessage(err),
			Status:  upstreamErr.StatusCode,
			Details: upstreamErr.Body,
		})
		return
	}

	var malformedErr *generation.MalformedOutputError
	if errors.As(err, &malformedErr) {
		h.logger.Error("model returned unparseable output",
			"trace_id", shared.GetTraceID(r.Context()))
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, malformedOutputResponse{
			Error: GetSafeErrorMessage(err),
			Raw:   malformedErr.Raw,
		})
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
