package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/blogsmith-api/internal/generation"
	"github.com/phrazzld/blogsmith-api/internal/platform/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves handler and returns a Config pointing at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) openai.Config {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return openai.Config{APIKey: "sk-test", BaseURL: srv.URL}
}

func TestChatProvider_Complete(t *testing.T) {
	var captured map[string]any
	cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"[\"A\",\"B\"]"},"finish_reason":"stop"}]}`))
	})

	provider, err := openai.NewChatProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai:"+openai.DefaultChatModel, provider.Name())

	text, err := provider.Complete(context.Background(), generation.Request{
		SystemInstruction: "json only",
		Prompt:            "titles about Go",
		Temperature:       1,
		MaxTokens:         2000,
		JSONMode:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, `["A","B"]`, text)

	assert.Equal(t, openai.DefaultChatModel, captured["model"])
	assert.Equal(t, float64(2000), captured["max_tokens"])
	assert.Equal(t, float64(1), captured["temperature"])
	assert.Equal(t, map[string]any{"type": "json_object"}, captured["response_format"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, map[string]any{"role": "system", "content": "json only"}, messages[0])
	assert.Equal(t, map[string]any{"role": "user", "content": "titles about Go"}, messages[1])
}

func TestChatProvider_CompleteErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		errSubstr string
	}{
		{
			name:      "rate limited",
			status:    http.StatusTooManyRequests,
			body:      `{"error":{"message":"Rate limit reached"}}`,
			wantErr:   openai.ErrAPI,
			errSubstr: "Rate limit reached",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: openai.ErrEmptyResponse,
		},
		{
			name:    "truncated output",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{"content":"{\"titles\": [\"A\""},"finish_reason":"length"}]}`,
			wantErr: generation.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			provider, err := openai.NewChatProvider(cfg)
			require.NoError(t, err)

			_, err = provider.Complete(context.Background(), generation.Request{Prompt: "p", MaxTokens: 10})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.errSubstr != "" {
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestNewChatProvider_RequiresAPIKey(t *testing.T) {
	_, err := openai.NewChatProvider(openai.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	assert.ErrorIs(t, err, openai.ErrMissingAPIKey)
}

func TestModerator_Classify(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantFlagged bool
		wantErr     bool
	}{
		{
			name:        "flagged",
			body:        `{"model":"omni-moderation-latest","results":[{"flagged":true,"categories":{"violence":true}}]}`,
			wantFlagged: true,
		},
		{
			name:        "not flagged",
			body:        `{"model":"omni-moderation-latest","results":[{"flagged":false,"categories":{}}]}`,
			wantFlagged: false,
		},
		{
			name:    "no results",
			body:    `{"results":[]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured map[string]any
			cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/moderations", r.URL.Path)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
				_, _ = w.Write([]byte(tt.body))
			})

			moderator, err := openai.NewModerator(cfg)
			require.NoError(t, err)

			flagged, err := moderator.Classify(context.Background(), "AI Tools for Writers")
			if tt.wantErr {
				assert.ErrorIs(t, err, openai.ErrEmptyResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFlagged, flagged)
			assert.Equal(t, "AI Tools for Writers", captured["input"])
			assert.Equal(t, openai.DefaultModerationModel, captured["model"])
		})
	}
}

func TestModerator_ServerError(t *testing.T) {
	cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	moderator, err := openai.NewModerator(cfg)
	require.NoError(t, err)

	_, err = moderator.Classify(context.Background(), "anything")
	assert.ErrorIs(t, err, openai.ErrAPI)
}
