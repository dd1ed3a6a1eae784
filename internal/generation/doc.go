// Package generation implements validated structured generation against a
// large language model. A caller supplies a prompt and a Shape describing the
// JSON document it expects back; Generate calls the configured Provider,
// decodes and validates the response against the Shape and retries a bounded
// number of times when the provider returns malformed or mis-shaped output or
// fails outright.
//
// Provider is the boundary to the external LLM service. Concrete providers
// live under internal/platform (OpenAI and Gemini) and the scripted test
// double lives in internal/mocks.
package generation
