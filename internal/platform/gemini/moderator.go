package gemini

import (
	"context"
	"fmt"

	"github.com/phrazzld/blogsmith-api/internal/moderation"
	"google.golang.org/genai"
)

const moderationInstruction = "Reply with the single word OK."

// moderatedCategories are checked with the strictest blocking threshold.
var moderatedCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// Moderator implements moderation.Classifier using Gemini safety filters.
type Moderator struct {
	client   *genai.Client
	model    string
	settings []*genai.SafetySetting
}

var _ moderation.Classifier = (*Moderator)(nil)

// NewModerator creates a Moderator.
func NewModerator(ctx context.Context, cfg Config) (*Moderator, error) {
	client, model, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	settings := make([]*genai.SafetySetting, 0, len(moderatedCategories))
	for _, category := range moderatedCategories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockLowAndAbove,
		})
	}

	return &Moderator{client: client, model: model, settings: settings}, nil
}

// Name implements moderation.Classifier
func (m *Moderator) Name() string { return "gemini-safety" }

// Classify implements moderation.Classifier. A blocked prompt, a SAFETY
// finish reason or a blocked safety rating means flagged.
func (m *Moderator) Classify(ctx context.Context, text string) (bool, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: moderationInstruction}}},
		SafetySettings:    m.settings,
		MaxOutputTokens:   8,
		Temperature:       genai.Ptr[float32](0),
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(text), config)
	if err != nil {
		return false, err
	}

	if promptBlocked(resp) {
		return true, nil
	}
	if len(resp.Candidates) == 0 {
		return false, fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return true, nil
	}
	for _, rating := range candidate.SafetyRatings {
		if rating != nil && rating.Blocked {
			return true, nil
		}
	}
	return false, nil
}
