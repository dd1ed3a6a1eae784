package openai

import (
	"context"
	"fmt"

	"github.com/phrazzld/blogsmith-api/internal/generation"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ChatProvider implements generation.Provider with the Chat Completions API.
type ChatProvider struct {
	client *client
	model  string
}

var _ generation.Provider = (*ChatProvider)(nil)

// NewChatProvider creates a ChatProvider.
func NewChatProvider(cfg Config) (*ChatProvider, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultChatModel
	}
	return &ChatProvider{client: c, model: model}, nil
}

// Name implements generation.Provider
func (p *ChatProvider) Name() string { return "openai:" + p.model }

// Complete implements generation.Provider. The shape is carried by the
// system instruction; JSON mode guarantees syntactically valid JSON only.
func (p *ChatProvider) Complete(ctx context.Context, req generation.Request) (string, error) {
	body := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemInstruction},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var resp chatResponse
	if err := p.client.postJSON(ctx, "/chat/completions", body, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrEmptyResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == "length" {
		return "", fmt.Errorf("%w: output truncated at %d tokens", generation.ErrMalformedResponse, req.MaxTokens)
	}

	return choice.Message.Content, nil
}
