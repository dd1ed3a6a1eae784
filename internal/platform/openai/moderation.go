package openai

import (
	"context"
	"fmt"

	"github.com/phrazzld/blogsmith-api/internal/moderation"
)

type moderationRequest struct {
	Model string `json:"model,omitempty"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Model   string `json:"model"`
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
}

// Moderator implements moderation.Classifier with the Moderations API.
type Moderator struct {
	client *client
	model  string
}

var _ moderation.Classifier = (*Moderator)(nil)

// NewModerator creates a Moderator.
func NewModerator(cfg Config) (*Moderator, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModerationModel
	}
	return &Moderator{client: c, model: model}, nil
}

// Name implements moderation.Classifier
func (m *Moderator) Name() string { return "openai-moderation" }

// Classify implements moderation.Classifier
func (m *Moderator) Classify(ctx context.Context, text string) (bool, error) {
	var resp moderationResponse
	if err := m.client.postJSON(ctx, "/moderations", moderationRequest{Model: m.model, Input: text}, &resp); err != nil {
		return false, err
	}

	if len(resp.Results) == 0 {
		return false, fmt.Errorf("%w: no moderation results", ErrEmptyResponse)
	}

	return resp.Results[0].Flagged, nil
}
