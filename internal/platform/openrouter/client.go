package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/generation"
)

// maxResponseBytes caps how much of an upstream body is read, both for
// successful responses and for error diagnostics.
const maxResponseBytes = 1 << 20

// Client implements the generation.Generator interface against the
// OpenRouter chat-completions API. The provider key never leaves this
// process; callers see only parsed cards or typed errors.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
}

// New creates a Client from LLM configuration.
// Returns generation.ErrInvalidConfig if the API key, model, or URL is missing.
func New(logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("%w: openrouter API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.OpenRouterURL == "" {
		return nil, fmt.Errorf("%w: openrouter URL cannot be empty", generation.ErrInvalidConfig)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		logger:     logger.With(slog.String("component", "openrouter_client")),
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.OpenRouterURL,
		apiKey:     cfg.OpenRouterAPIKey,
		model:      cfg.Model,
	}, nil
}

// Ensure Client implements generation.Generator.
var _ generation.Generator = (*Client)(nil)

// GenerateCards sends the notes to the chat-completions endpoint and parses
// the model's reply into flashcard drafts. The call is made at most once;
// failures are returned to the caller without retrying.
func (c *Client) GenerateCards(ctx context.Context, notes string) ([]domain.CardDraft, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, generation.ErrEmptyNotes
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemInstruction},
			{Role: "user", Content: generation.UserMessage(notes)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.DebugContext(ctx, "calling chat-completions API",
		"model", c.model,
		"notes_length", len(notes))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrUpstreamFailure, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close upstream response body", "error", closeErr)
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", generation.ErrUpstreamFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "chat-completions API error",
			"status", resp.StatusCode,
			"body_length", len(respBody))
		return nil, &generation.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &generation.MalformedOutputError{Raw: string(respBody), Reason: err}
	}

	// A response without choices yields the empty-array text, which parses
	// to zero cards rather than an error.
	text := "[]"
	if len(parsed.Choices) > 0 {
		text = strings.TrimSpace(parsed.Choices[0].Message.Content)
	}

	cards, err := generation.ParseCards(text)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "generated cards from notes",
		"model", c.model,
		"card_count", len(cards))

	return cards, nil
}
