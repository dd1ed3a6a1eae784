package gemini

import (
	"context"
	"fmt"

	"github.com/phrazzld/blogsmith-api/internal/generation"
	"google.golang.org/genai"
)

// Provider implements generation.Provider using the Gemini API.
type Provider struct {
	client *genai.Client
	model  string
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Provider.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	client, model, err := newClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err)
	}
	return &Provider{client: client, model: model}, nil
}

// Name implements generation.Provider
func (p *Provider) Name() string { return "gemini:" + p.model }

// Complete implements generation.Provider. In JSON mode the response MIME
// type is forced and the shape is sent as a response schema.
func (p *Provider) Complete(ctx context.Context, req generation.Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}}
	}
	if req.JSONMode {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = SchemaFor(req.Shape)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", err
	}

	if promptBlocked(resp) {
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}

	switch resp.Candidates[0].FinishReason {
	case genai.FinishReasonSafety:
		return "", fmt.Errorf("%w: output blocked", ErrContentBlocked)
	case genai.FinishReasonMaxTokens:
		return "", fmt.Errorf("%w: output truncated at %d tokens", generation.ErrMalformedResponse, req.MaxTokens)
	}

	text := candidateText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate", ErrEmptyResponse)
	}
	return text, nil
}
