// Package mocks provides shared test doubles for the generator and the
// flashcard store.
package mocks
