// Package domain contains the core entities of the flashcard service:
// saved flashcards and transient generated drafts. Domain types validate
// their own invariants and have no dependencies on storage or transport.
package domain
