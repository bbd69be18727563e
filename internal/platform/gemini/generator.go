package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/generation"
)

// Generator implements the generation.Generator interface using Google's
// Gemini API as the model provider.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// New creates a Generator with the provided dependencies.
// Returns generation.ErrInvalidConfig if the API key or model name is missing.
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  cfg.Model,
	}, nil
}

// Ensure Generator implements generation.Generator.
var _ generation.Generator = (*Generator)(nil)

// GenerateCards sends the notes to the Gemini API and parses the reply into
// flashcard drafts. The call is made at most once; failures are returned to
// the caller without retrying.
func (g *Generator) GenerateCards(ctx context.Context, notes string) ([]domain.CardDraft, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, generation.ErrEmptyNotes
	}

	g.logger.DebugContext(ctx, "calling Gemini API",
		"model", g.model,
		"notes_length", len(notes))

	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(generation.UserMessage(notes)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(generation.SystemInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &generation.UpstreamError{
				StatusCode: apiErr.Code,
				Body:       apiErr.Message,
			}
		}
		return nil, fmt.Errorf("%w: %v", generation.ErrUpstreamFailure, err)
	}

	cards, err := generation.ParseCards(resp.Text())
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "generated cards from notes",
		"model", g.model,
		"card_count", len(cards))

	return cards, nil
}
