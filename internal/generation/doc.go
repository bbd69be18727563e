// Package generation defines the Generator boundary for turning free-text
// notes into flashcard drafts, the shared prompt, and the strict parser for
// model output. Provider-specific clients live under internal/platform.
package generation
