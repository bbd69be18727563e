// Package filestore provides a JSON-file flashcard store used when no
// database URL is configured. It keeps the whole library in one file and
// rewrites it atomically on every mutation.
package filestore
