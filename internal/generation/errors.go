package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by Generator implementations.
var (
	// ErrEmptyNotes is returned when generation is requested with blank notes.
	ErrEmptyNotes = errors.New("notes cannot be empty")

	// ErrInvalidConfig is returned when the generator configuration is
	// invalid, most importantly a missing provider API key.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrUpstreamFailure is returned when the provider API call does not
	// succeed. Wrapped by UpstreamError, which carries the upstream status
	// and body for diagnostics.
	ErrUpstreamFailure = errors.New("upstream model request failed")

	// ErrMalformedOutput is returned when the model's textual reply cannot
	// be parsed as a JSON array of question/answer pairs. Wrapped by
	// MalformedOutputError, which preserves the raw text.
	ErrMalformedOutput = errors.New("invalid JSON returned from model")
)

// UpstreamError reports a failed provider call with the upstream HTTP status
// and response body preserved for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%v: status %d", ErrUpstreamFailure, e.StatusCode)
}

// Unwrap lets errors.Is match ErrUpstreamFailure.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamFailure
}

// MalformedOutputError reports unparseable model output. Raw holds the
// model's text verbatim so it is never silently dropped.
type MalformedOutputError struct {
	Raw    string
	Reason error
}

func (e *MalformedOutputError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("%v: %v", ErrMalformedOutput, e.Reason)
	}
	return ErrMalformedOutput.Error()
}

// Unwrap lets errors.Is match ErrMalformedOutput.
func (e *MalformedOutputError) Unwrap() error {
	return ErrMalformedOutput
}
