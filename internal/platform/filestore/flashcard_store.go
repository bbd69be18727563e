package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/events"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// FlashcardStore implements store.FlashcardStore on top of a single JSON
// file. It is the local fallback backend used when no database is
// configured. All operations hold a mutex, so it is safe for concurrent use
// but meant for a single process.
type FlashcardStore struct {
	mu        sync.Mutex
	path      string
	publisher events.Publisher
	logger    *slog.Logger
}

// NewFlashcardStore creates a file-backed store at path. The file is created
// on first write; a missing file reads as an empty library. publisher may be
// nil when no change feed is wired.
func NewFlashcardStore(path string, publisher events.Publisher, logger *slog.Logger) (*FlashcardStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("filestore: path cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &FlashcardStore{
		path:      path,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "file_flashcard_store")),
	}

	// Fail fast on an unreadable or corrupt file.
	if _, err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Ensure FlashcardStore implements store.FlashcardStore.
var _ store.FlashcardStore = (*FlashcardStore)(nil)

// CreateMultiple appends all cards or none. The file is rewritten once.
func (s *FlashcardStore) CreateMultiple(ctx context.Context, cards []*domain.Flashcard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}

	for _, card := range cards {
		if _, found := indexOf(all, card.ID); found {
			return fmt.Errorf("flashcard %s: %w: duplicate id", card.ID, store.ErrInvalidEntity)
		}
	}

	for _, card := range cards {
		copied := *card
		all = append(all, &copied)
	}

	if err := s.save(all); err != nil {
		return err
	}

	s.publish(events.OpInsert, uuid.Nil)
	s.logger.Debug("inserted flashcards", "count", len(cards))
	return nil
}

// GetByID retrieves a flashcard by its unique ID.
func (s *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}

	i, found := indexOf(all, id)
	if !found {
		return nil, fmt.Errorf("flashcard %s: %w", id, store.ErrNotFound)
	}

	copied := *all[i]
	return &copied, nil
}

// List filters, sorts, and pages the library in memory.
func (s *FlashcardStore) List(ctx context.Context, query store.ListQuery) (*store.ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateListQuery(query); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}

	matched := filterCards(all, query.Search)
	sortCards(matched, query.Sort)

	total := len(matched)
	page := pageOf(matched, query.Offset(), query.PageSize)

	result := make([]*domain.Flashcard, len(page))
	for i, card := range page {
		copied := *card
		result[i] = &copied
	}

	return &store.ListResult{Flashcards: result, Total: total}, nil
}

// Update applies partial field changes to exactly one flashcard and returns
// the updated row.
func (s *FlashcardStore) Update(ctx context.Context, id uuid.UUID, updates store.FieldUpdates) (*domain.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if updates.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}

	i, found := indexOf(all, id)
	if !found {
		return nil, fmt.Errorf("flashcard %s: %w", id, store.ErrNotFound)
	}

	updated := *all[i]
	if err := applyUpdates(&updated, updates); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()

	all[i] = &updated
	if err := s.save(all); err != nil {
		return nil, err
	}

	s.publish(events.OpUpdate, id)

	copied := updated
	return &copied, nil
}

// Delete removes exactly one flashcard by ID.
func (s *FlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}

	i, found := indexOf(all, id)
	if !found {
		return fmt.Errorf("flashcard %s: %w", id, store.ErrNotFound)
	}

	all = append(all[:i], all[i+1:]...)
	if err := s.save(all); err != nil {
		return err
	}

	s.publish(events.OpDelete, id)
	return nil
}

// load reads the whole library. A missing file is an empty library.
func (s *FlashcardStore) load() ([]*domain.Flashcard, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Flashcard{}, nil
		}
		return nil, fmt.Errorf("read library file: %w", err)
	}

	if len(data) == 0 {
		return []*domain.Flashcard{}, nil
	}

	var cards []*domain.Flashcard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parse library file %s: %w", s.path, err)
	}

	return cards, nil
}

// save writes the whole library atomically via a temp file and rename, so a
// crash mid-write never corrupts the library.
func (s *FlashcardStore) save(cards []*domain.Flashcard) error {
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp library file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write library file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close library file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace library file: %w", err)
	}

	return nil
}

func (s *FlashcardStore) publish(op events.ChangeOp, id uuid.UUID) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.NewChangeEvent(op, id))
}

func indexOf(cards []*domain.Flashcard, id uuid.UUID) (int, bool) {
	for i, card := range cards {
		if card.ID == id {
			return i, true
		}
	}
	return 0, false
}

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

// filterCards matches the search term case-insensitively against subject,
// question, and answer. An empty term matches everything.
func filterCards(cards []*domain.Flashcard, search string) []*domain.Flashcard {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return append([]*domain.Flashcard{}, cards...)
	}

	matched := []*domain.Flashcard{}
	for _, card := range cards {
		if strings.Contains(strings.ToLower(card.Subject), search) ||
			strings.Contains(strings.ToLower(card.Question), search) ||
			strings.Contains(strings.ToLower(card.Answer), search) {
			matched = append(matched, card)
		}
	}
	return matched
}

// sortCards orders in place: newest first, or by subject with recency as
// tie-break.
func sortCards(cards []*domain.Flashcard, mode store.SortMode) {
	sort.SliceStable(cards, func(i, j int) bool {
		if mode == store.SortSubject && cards[i].Subject != cards[j].Subject {
			return cards[i].Subject < cards[j].Subject
		}
		return cards[i].CreatedAt.After(cards[j].CreatedAt)
	})
}

// pageOf returns the slice window for an offset and size, clamped to bounds.
func pageOf(cards []*domain.Flashcard, offset, size int) []*domain.Flashcard {
	if offset >= len(cards) {
		return nil
	}
	end := offset + size
	if end > len(cards) {
		end = len(cards)
	}
	return cards[offset:end]
}

func applyUpdates(card *domain.Flashcard, updates store.FieldUpdates) error {
	if updates.Subject != nil {
		subject := strings.TrimSpace(*updates.Subject)
		if subject == "" {
			subject = domain.DefaultSubject
		}
		card.Subject = subject
	}

	if updates.Question != nil {
		question := strings.TrimSpace(*updates.Question)
		if question == "" {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrQuestionEmpty)
		}
		card.Question = question
	}

	if updates.Answer != nil {
		answer := strings.TrimSpace(*updates.Answer)
		if answer == "" {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrAnswerEmpty)
		}
		card.Answer = answer
	}

	return nil
}
