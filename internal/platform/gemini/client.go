package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Defaults used when the configuration leaves a value empty.
const (
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 30 * time.Second
)

// Config configures the Gemini client.
type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the API endpoint; empty uses Google's default.
	BaseURL string

	Timeout time.Duration
}

func newClient(ctx context.Context, cfg Config) (*genai.Client, string, error) {
	if cfg.APIKey == "" {
		return nil, "", ErrMissingAPIKey
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return client, model, nil
}

// candidateText concatenates the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// promptBlocked reports whether Gemini refused the prompt itself.
func promptBlocked(resp *genai.GenerateContentResponse) bool {
	return resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != ""
}
