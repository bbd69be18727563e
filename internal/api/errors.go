package api

import (
	"errors"
	"net/http"

	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes by error
// type, so handlers never leak internal error strings through status
// selection.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrDraftNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrInvalidQuery),
		errors.Is(err, service.ErrEmptyDraft),
		errors.Is(err, generation.ErrEmptyNotes):
		return http.StatusBadRequest

	// Generation failures surface as server-side errors: upstream and
	// parse problems alike answer 500, with diagnostics in the body.
	case errors.Is(err, generation.ErrInvalidConfig),
		errors.Is(err, generation.ErrUpstreamFailure),
		errors.Is(err, generation.ErrMalformedOutput):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for an error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		return "Draft not found"

	case errors.Is(err, store.ErrNotFound):
		return "Flashcard not found"

	case errors.Is(err, service.ErrEmptyDraft):
		return "Draft contains no cards"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid flashcard data"

	case errors.Is(err, store.ErrInvalidQuery):
		return "Invalid list query"

	case errors.Is(err, generation.ErrEmptyNotes):
		return "Notes are required"

	case errors.Is(err, generation.ErrInvalidConfig):
		return "Server misconfigured: missing API key"

	case errors.Is(err, generation.ErrUpstreamFailure):
		return "upstream model request failed"

	case errors.Is(err, generation.ErrMalformedOutput):
		return "Invalid JSON returned from model"

	default:
		return "An unexpected error occurred"
	}
}
