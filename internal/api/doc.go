// Package api contains the HTTP layer: request/response models, error
// mapping, and the handlers for generation, drafts, the flashcard library,
// and the change-event stream.
package api
