package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlashcard(t *testing.T) {
	t.Run("valid card", func(t *testing.T) {
		card, err := NewFlashcard("Biology", "What does photosynthesis convert?", "Light into energy.")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, card.ID)
		assert.Equal(t, "Biology", card.Subject)
		assert.Equal(t, "What does photosynthesis convert?", card.Question)
		assert.Equal(t, "Light into energy.", card.Answer)
		assert.False(t, card.CreatedAt.IsZero())
		assert.Equal(t, card.CreatedAt, card.UpdatedAt)
	})

	t.Run("blank subject defaults", func(t *testing.T) {
		card, err := NewFlashcard("   ", "Q", "A")
		require.NoError(t, err)
		assert.Equal(t, DefaultSubject, card.Subject)
	})

	t.Run("trims question and answer", func(t *testing.T) {
		card, err := NewFlashcard("Math", "  2+2?  ", "  4  ")
		require.NoError(t, err)
		assert.Equal(t, "2+2?", card.Question)
		assert.Equal(t, "4", card.Answer)
	})

	t.Run("empty question rejected", func(t *testing.T) {
		_, err := NewFlashcard("Math", "   ", "4")
		assert.ErrorIs(t, err, ErrQuestionEmpty)
	})

	t.Run("empty answer rejected", func(t *testing.T) {
		_, err := NewFlashcard("Math", "2+2?", "")
		assert.ErrorIs(t, err, ErrAnswerEmpty)
	})
}

func TestFlashcardValidate(t *testing.T) {
	card, err := NewFlashcard("", "Q", "A")
	require.NoError(t, err)

	card.ID = uuid.Nil
	assert.ErrorIs(t, card.Validate(), ErrFlashcardIDEmpty)
}
