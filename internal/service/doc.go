// Package service contains the application services: draft orchestration
// (generate, save, discard, export) and library operations over the
// flashcard store.
package service
