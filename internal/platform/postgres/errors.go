package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flashdeck/flashdeck-api/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
	notNullViolation    = "23502"
)

// mapError converts pgx/pgconn errors into store errors.
func mapError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("flashcard %s: %w", id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("flashcard %s: %w", id, store.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case checkViolationCode, notNullViolation:
			return fmt.Errorf("flashcard %s: %w", id, store.ErrInvalidEntity)
		case uniqueViolationCode:
			return fmt.Errorf("flashcard %s: %w", id, store.ErrInvalidEntity)
		}
	}

	return fmt.Errorf("flashcard %s: %w", id, err)
}
