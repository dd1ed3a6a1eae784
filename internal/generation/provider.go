package generation

import "context"

// Provider defines the interface for a generative text provider.
// This interface serves as a boundary between the application core and
// external LLM services, following the hexagonal architecture pattern.
type Provider interface {
	// Name identifies the provider and model for logging and metrics.
	Name() string

	// Complete issues exactly one call to the provider and returns the raw
	// text content of the first choice. Implementations must not retry;
	// retrying is owned by Generate.
	Complete(ctx context.Context, req Request) (string, error)
}

// Request carries everything a provider needs for a single completion call.
type Request struct {
	// SystemInstruction constrains the output format.
	SystemInstruction string

	// Prompt is the user message.
	Prompt string

	// Temperature controls sampling randomness.
	Temperature float32

	// MaxTokens is the output token ceiling.
	MaxTokens int

	// JSONMode asks the provider to force a JSON response when it supports it.
	JSONMode bool

	// Shape describes the expected document. Providers that accept a response
	// schema may translate it; others can ignore it since the shape is also
	// rendered into SystemInstruction.
	Shape Descriptor
}
