// Package openai provides the OpenAI adapters of the service: a
// generation.Provider backed by the Chat Completions API in JSON mode and a
// moderation.Classifier backed by the Moderations API.
//
// Both talk to the REST API directly over net/http. Each call is a single
// request; retrying is owned by the generation package.
package openai
