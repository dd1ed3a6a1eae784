package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is the root of every terminal generation failure
	ErrGenerationFailed = errors.New("failed to generate structured content")

	// ErrRetriesExhausted is returned when every attempt failed
	ErrRetriesExhausted = fmt.Errorf("%w: retries exhausted", ErrGenerationFailed)

	// ErrMalformedResponse is returned when the provider output is not valid JSON
	ErrMalformedResponse = errors.New("malformed response from language model")

	// ErrShapeMismatch is returned when the JSON parses but does not match the expected shape
	ErrShapeMismatch = errors.New("response does not match expected shape")

	// ErrProviderFailure is returned for any other failure of the provider call itself
	ErrProviderFailure = errors.New("language model provider call failed")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
