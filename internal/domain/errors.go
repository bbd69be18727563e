package domain

import "errors"

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrQuestionEmpty is returned when a flashcard question is blank after trimming.
	ErrQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrAnswerEmpty is returned when a flashcard answer is blank after trimming.
	ErrAnswerEmpty = errors.New("flashcard answer cannot be empty")

	// ErrNotesEmpty is returned when generation is requested with blank notes.
	ErrNotesEmpty = errors.New("notes cannot be empty")
)
