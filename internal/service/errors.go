package service

import "errors"

var (
	// ErrDraftNotFound is returned when a draft ID is unknown, already saved,
	// or already discarded.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrEmptyDraft is returned when save is requested for a draft that holds
	// no cards. Nothing is written in that case.
	ErrEmptyDraft = errors.New("draft contains no cards")
)
