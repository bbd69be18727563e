package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// FlashcardStore implements the store.FlashcardStore interface using a
// PostgreSQL database as the storage backend.
type FlashcardStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. The pool must be initialized and is managed by
// the caller. If logger is nil, the default logger is used.
func NewFlashcardStore(pool *pgxpool.Pool, logger *slog.Logger) *FlashcardStore {
	if pool == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("pool cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardStore{
		pool:   pool,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure FlashcardStore implements store.FlashcardStore.
var _ store.FlashcardStore = (*FlashcardStore)(nil)

const insertFlashcardSQL = `
INSERT INTO flashcards (id, subject, question, answer, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const selectFlashcardSQL = `
SELECT id, subject, question, answer, created_at, updated_at
FROM flashcards
WHERE id = $1`

const deleteFlashcardSQL = `DELETE FROM flashcards WHERE id = $1`

// CreateMultiple saves all cards in a single transaction. Either every card
// is inserted or none are.
func (s *FlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", store.ErrTransactionFailed, err)
	}
	defer func() {
		// Rollback is a no-op after a successful commit.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.logger.Warn("transaction rollback failed", "error", rbErr)
		}
	}()

	batch := &pgx.Batch{}
	for _, card := range cards {
		batch.Queue(insertFlashcardSQL,
			card.ID, card.Subject, card.Question, card.Answer, card.CreatedAt, card.UpdatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	for _, card := range cards {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapError(err, card.ID)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("%w: close batch: %v", store.ErrTransactionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", store.ErrTransactionFailed, err)
	}

	s.logger.Debug("inserted flashcards", "count", len(cards))
	return nil
}

// GetByID retrieves a flashcard by its unique ID.
func (s *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	row := s.pool.QueryRow(ctx, selectFlashcardSQL, id)

	card, err := scanFlashcard(row)
	if err != nil {
		return nil, mapError(err, id)
	}

	return card, nil
}

// List returns one page of flashcards matching the query plus the total
// matching row count. Search matches case-insensitively against subject,
// question, and answer.
func (s *FlashcardStore) List(ctx context.Context, query store.ListQuery) (*store.ListResult, error) {
	if err := validateListQuery(query); err != nil {
		return nil, err
	}

	where, args := buildListFilter(query.Search)

	var total int
	countSQL := "SELECT count(*) FROM flashcards" + where
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count flashcards: %w", err)
	}

	pageSQL := "SELECT id, subject, question, answer, created_at, updated_at FROM flashcards" +
		where + orderClause(query.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, query.PageSize, query.Offset())

	rows, err := s.pool.Query(ctx, pageSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	defer rows.Close()

	cards, err := scanFlashcards(rows)
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}

	return &store.ListResult{Flashcards: cards, Total: total}, nil
}

// Update applies partial field changes to exactly one flashcard and returns
// the updated row.
func (s *FlashcardStore) Update(ctx context.Context, id uuid.UUID, updates store.FieldUpdates) (*domain.Flashcard, error) {
	setSQL, args, err := buildUpdateSet(updates)
	if err != nil {
		return nil, err
	}

	args = append(args, id)
	sql := fmt.Sprintf(`
UPDATE flashcards
SET %s
WHERE id = $%d
RETURNING id, subject, question, answer, created_at, updated_at`, setSQL, len(args))

	row := s.pool.QueryRow(ctx, sql, args...)
	card, err := scanFlashcard(row)
	if err != nil {
		return nil, mapError(err, id)
	}

	return card, nil
}

// Delete removes exactly one flashcard by ID.
func (s *FlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, deleteFlashcardSQL, id)
	if err != nil {
		return mapError(err, id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("flashcard %s: %w", id, store.ErrNotFound)
	}

	return nil
}

// validateListQuery rejects unusable cursors before touching the database.
func validateListQuery(query store.ListQuery) error {
	if query.Page < 0 {
		return fmt.Errorf("%w: negative page index", store.ErrInvalidQuery)
	}
	if query.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", store.ErrInvalidQuery)
	}
	if !query.Sort.Valid() {
		return fmt.Errorf("%w: unknown sort mode %q", store.ErrInvalidQuery, query.Sort)
	}
	return nil
}

// buildListFilter returns the WHERE clause (with leading space) and args for
// the search term. An empty term yields no filter.
func buildListFilter(search string) (string, []any) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", nil
	}

	pattern := "%" + escapeLike(search) + "%"
	where := ` WHERE subject ILIKE $1 ESCAPE '\' OR question ILIKE $1 ESCAPE '\' OR answer ILIKE $1 ESCAPE '\'`
	return where, []any{pattern}
}

// escapeLike escapes LIKE wildcards so the search term matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// orderClause returns the ORDER BY clause (with leading space) for a sort
// mode. Subject sorting uses recency as tie-break.
func orderClause(sort store.SortMode) string {
	if sort == store.SortSubject {
		return " ORDER BY subject ASC, created_at DESC"
	}
	return " ORDER BY created_at DESC"
}

// buildUpdateSet builds the SET clause and args for a partial update.
// updated_at is always touched.
func buildUpdateSet(updates store.FieldUpdates) (string, []any, error) {
	if updates.Empty() {
		return "", nil, fmt.Errorf("%w: no fields to update", store.ErrInvalidEntity)
	}

	var clauses []string
	var args []any

	next := func() int { return len(args) + 1 }

	if updates.Subject != nil {
		subject := strings.TrimSpace(*updates.Subject)
		if subject == "" {
			subject = domain.DefaultSubject
		}
		clauses = append(clauses, fmt.Sprintf("subject = $%d", next()))
		args = append(args, subject)
	}

	if updates.Question != nil {
		question := strings.TrimSpace(*updates.Question)
		if question == "" {
			return "", nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrQuestionEmpty)
		}
		clauses = append(clauses, fmt.Sprintf("question = $%d", next()))
		args = append(args, question)
	}

	if updates.Answer != nil {
		answer := strings.TrimSpace(*updates.Answer)
		if answer == "" {
			return "", nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrAnswerEmpty)
		}
		clauses = append(clauses, fmt.Sprintf("answer = $%d", next()))
		args = append(args, answer)
	}

	clauses = append(clauses, fmt.Sprintf("updated_at = $%d", next()))
	args = append(args, time.Now().UTC())

	return strings.Join(clauses, ", "), args, nil
}

// scanFlashcard scans a single row into a domain.Flashcard.
func scanFlashcard(row pgx.Row) (*domain.Flashcard, error) {
	var card domain.Flashcard
	if err := row.Scan(&card.ID, &card.Subject, &card.Question, &card.Answer,
		&card.CreatedAt, &card.UpdatedAt); err != nil {
		return nil, err
	}
	return &card, nil
}

// scanFlashcards scans all rows into a slice.
func scanFlashcards(rows pgx.Rows) ([]*domain.Flashcard, error) {
	cards := []*domain.Flashcard{}
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}
