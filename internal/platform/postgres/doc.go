// Package postgres implements flashcard persistence and the change-feed
// listener on top of PostgreSQL via pgx. Schema management is handled by
// goose migrations in the repository's migrations directory.
package postgres
