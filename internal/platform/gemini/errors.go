package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("gemini API key cannot be empty")

	// ErrContentBlocked is returned when Gemini blocks the prompt or the output.
	ErrContentBlocked = errors.New("content blocked by gemini safety filters")

	// ErrEmptyResponse is returned when a response carries no candidate content.
	ErrEmptyResponse = errors.New("gemini returned no content")
)
