// Package store defines persistence interfaces and the shared error
// taxonomy for the flashcard library. Concrete backends live under
// internal/platform (postgres, filestore) and are chosen at startup from
// configuration.
package store
