package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/mocks"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// queryCapturingStore records the last List query it received.
type queryCapturingStore struct {
	*mocks.FlashcardStore
	lastQuery store.ListQuery
}

func (q *queryCapturingStore) List(ctx context.Context, query store.ListQuery) (*store.ListResult, error) {
	q.lastQuery = query
	return q.FlashcardStore.List(ctx, query)
}

func TestLibraryListDefaults(t *testing.T) {
	t.Parallel()

	st := &queryCapturingStore{FlashcardStore: mocks.NewFlashcardStore()}
	svc := NewLibraryService(st, nil)

	_, err := svc.List(context.Background(), store.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, st.lastQuery.PageSize)
	assert.Equal(t, store.SortRecent, st.lastQuery.Sort)

	_, err = svc.List(context.Background(), store.ListQuery{PageSize: 20, Sort: store.SortSubject})
	require.NoError(t, err)
	assert.Equal(t, 20, st.lastQuery.PageSize)
	assert.Equal(t, store.SortSubject, st.lastQuery.Sort)
}

func TestLibraryUpdateAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := mocks.NewFlashcardStore()
	svc := NewLibraryService(st, nil)

	card, err := domain.NewFlashcard("Biology", "What is ATP?", "Energy currency.")
	require.NoError(t, err)
	require.NoError(t, st.CreateMultiple(ctx, []*domain.Flashcard{card}))

	answer := "The cell's energy currency."
	updated, err := svc.Update(ctx, card.ID, store.FieldUpdates{Answer: &answer})
	require.NoError(t, err)
	assert.Equal(t, card.ID, updated.ID)

	_, err = svc.Update(ctx, uuid.New(), store.FieldUpdates{Answer: &answer})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, card.ID))
	assert.ErrorIs(t, svc.Delete(ctx, card.ID), store.ErrNotFound)
}
