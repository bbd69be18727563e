package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flashdeck/flashdeck-api/internal/api"
	apimiddleware "github.com/flashdeck/flashdeck-api/internal/api/middleware"
)

// setupRouter configures the application router with all middleware and
// routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	generateHandler := api.NewGenerateHandler(app.draftService, app.logger)
	draftHandler := api.NewDraftHandler(app.draftService, app.logger)
	flashcardHandler := api.NewFlashcardHandler(app.libraryService, app.logger)
	eventsHandler := api.NewEventsHandler(app.broker, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(apimiddleware.CORSMiddleware)
		r.Use(apimiddleware.BearerAuthMiddleware(app.config.Auth.TokenSecret, app.logger))

		r.Post("/generate", generateHandler.Generate)

		r.Post("/drafts/{id}/save", draftHandler.Save)
		r.Delete("/drafts/{id}", draftHandler.Discard)
		r.Get("/drafts/{id}/export", draftHandler.Export)

		r.Get("/flashcards", flashcardHandler.List)
		r.Get("/flashcards/events", eventsHandler.Subscribe)
		r.Put("/flashcards/{id}", flashcardHandler.Update)
		r.Delete("/flashcards/{id}", flashcardHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
