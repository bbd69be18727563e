package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/events"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/platform/filestore"
	"github.com/flashdeck/flashdeck-api/internal/platform/gemini"
	"github.com/flashdeck/flashdeck-api/internal/platform/openrouter"
	"github.com/flashdeck/flashdeck-api/internal/platform/postgres"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// application bundles the wired dependencies of one server process.
type application struct {
	config *config.Config
	logger *slog.Logger

	pool     *pgxpool.Pool
	broker   *events.ChangeBroker
	listener *postgres.ChangeListener

	draftService   *service.DraftService
	libraryService *service.LibraryService
}

// newApplication wires the full dependency graph: change broker, store
// (postgres when a database URL is configured, JSON file otherwise),
// generator backend, and the services on top.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		broker: events.NewChangeBroker(logger),
	}

	flashcardStore, err := app.setupStore(ctx)
	if err != nil {
		return nil, err
	}

	generator, err := app.setupGenerator(ctx)
	if err != nil {
		return nil, err
	}

	app.draftService = service.NewDraftService(generator, flashcardStore, service.DefaultMaxDrafts, logger)
	app.libraryService = service.NewLibraryService(flashcardStore, logger)

	return app, nil
}

// setupStore selects the persistence backend. Postgres additionally gets
// startup migrations and the LISTEN-based change feed; the file store
// publishes change events itself.
func (app *application) setupStore(ctx context.Context) (store.FlashcardStore, error) {
	if app.config.Database.URL == "" {
		app.logger.Info("no database URL configured, using local file store",
			"file", app.config.Database.File)

		fileStore, err := filestore.NewFlashcardStore(app.config.Database.File, app.broker, app.logger)
		if err != nil {
			return nil, fmt.Errorf("create file store: %w", err)
		}
		return fileStore, nil
	}

	if err := runMigrations(app.config.Database.URL, app.logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, app.config.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	app.pool = pool
	app.listener = postgres.NewChangeListener(pool, app.broker, app.logger)

	return postgres.NewFlashcardStore(pool, app.logger), nil
}

// setupGenerator selects the model provider backend from configuration.
func (app *application) setupGenerator(ctx context.Context) (generation.Generator, error) {
	switch app.config.LLM.Provider {
	case "gemini":
		return gemini.New(ctx, app.logger, app.config.LLM)
	default:
		return openrouter.New(app.logger, app.config.LLM)
	}
}

// run starts the change listener (when postgres is in use) and the HTTP
// server, blocking until shutdown.
func (app *application) run(ctx context.Context) error {
	if app.listener != nil {
		go app.listener.Run(ctx)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases process-wide resources during shutdown.
func (app *application) cleanup() {
	if app.pool != nil {
		app.pool.Close()
	}
}
