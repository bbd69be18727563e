package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested flashcard does not exist
	// in the store.
	ErrNotFound = errors.New("flashcard not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidQuery is returned when a listing cursor has an unusable
	// page, page size, or sort mode.
	ErrInvalidQuery = errors.New("invalid list query")

	// ErrTransactionFailed is returned when a batch write fails to commit.
	// No rows from the batch are persisted in that case.
	ErrTransactionFailed = errors.New("transaction failed")
)
