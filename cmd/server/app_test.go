package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/blogsmith-api/internal/config"
	"github.com/phrazzld/blogsmith-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAI serves the chat and moderation endpoints of the OpenAI API.
type fakeOpenAI struct {
	chatContent string
	flagged     bool
	chatCalls   atomic.Int32
	modCalls    atomic.Int32
}

func (f *fakeOpenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/chat/completions":
		f.chatCalls.Add(1)
		content, _ := json.Marshal(f.chatContent)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":` + string(content) + `},"finish_reason":"stop"}]}`))
	case "/moderations":
		f.modCalls.Add(1)
		if f.flagged {
			_, _ = w.Write([]byte(`{"results":[{"flagged":true}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"flagged":false}]}`))
	default:
		http.NotFound(w, r)
	}
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                  8000,
			LogLevel:              "debug",
			RequestTimeoutSeconds: 5,
		},
		LLM: config.LLMConfig{
			Provider:       "openai",
			OpenAIAPIKey:   "sk-test",
			OpenAIBaseURL:  baseURL,
			Temperature:    1.0,
			MaxTokens:      2000,
			MaxRetries:     5,
			TimeoutSeconds: 5,
		},
		Moderation: config.ModerationConfig{
			Provider:      "auto",
			FailurePolicy: "open",
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	return app
}

func TestApplication_GenerateTitlesEndToEnd(t *testing.T) {
	fake := &fakeOpenAI{chatContent: `{"titles": ["One", "Two"]}`}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	router := newTestApp(t, testConfig(srv.URL)).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog/generate-titles?user_topic=Go", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Generated Titles Successfully","result":["One","Two"]}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
	assert.EqualValues(t, 1, fake.modCalls.Load())
	assert.EqualValues(t, 1, fake.chatCalls.Load())
}

func TestApplication_FlaggedInputEndToEnd(t *testing.T) {
	fake := &fakeOpenAI{chatContent: `{"titles": ["One"]}`, flagged: true}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	router := newTestApp(t, testConfig(srv.URL)).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/blog/generate-blog-ideas?blog_post_idea=Startups&tone=casual", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Input Not Allowed","result":null}`, w.Body.String())
	assert.EqualValues(t, 0, fake.chatCalls.Load())
}

func TestNewApplication_ModerationDisabled(t *testing.T) {
	fake := &fakeOpenAI{chatContent: `["One"]`}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Moderation.Provider = "disabled"
	router := newTestApp(t, cfg).setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blog/generate-titles?user_topic=Go", nil))

	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.EqualValues(t, 0, fake.modCalls.Load())
}

func TestNewApplication_Errors(t *testing.T) {
	log, _ := logger.GetTestLogger(t)

	_, err := newApplication(context.Background(), nil, log)
	assert.Error(t, err)

	_, err = newApplication(context.Background(), testConfig(""), nil)
	assert.Error(t, err)

	cfg := testConfig("")
	cfg.LLM.OpenAIAPIKey = ""
	_, err = newApplication(context.Background(), cfg, log)
	assert.Error(t, err)

	cfg = testConfig("")
	cfg.LLM.Provider = "parrot"
	_, err = newApplication(context.Background(), cfg, log)
	assert.Error(t, err)

	cfg = testConfig("")
	cfg.Moderation.FailurePolicy = "sometimes"
	_, err = newApplication(context.Background(), cfg, log)
	assert.Error(t, err)

	cfg = testConfig("")
	cfg.LLM.PromptDir = t.TempDir()
	_, err = newApplication(context.Background(), cfg, log)
	assert.Error(t, err, "an empty prompt directory has no templates")
}

func TestNewApplication_Gemini(t *testing.T) {
	cfg := testConfig("")
	cfg.LLM.Provider = "gemini"
	cfg.LLM.GeminiAPIKey = "gemini-key"

	app := newTestApp(t, cfg)
	assert.NotNil(t, app.blogService)
}

func TestRouter_Endpoints(t *testing.T) {
	router := newTestApp(t, testConfig("")).setupRouter()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "health", path: "/health", wantStatus: http.StatusOK, wantBody: "OK"},
		{name: "info", path: "/", wantStatus: http.StatusOK, wantBody: "Blog Title Generator API is running!"},
		{name: "metrics", path: "/metrics", wantStatus: http.StatusOK, wantBody: "blogsmith_http_request_duration_seconds"},
		{name: "unknown", path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// hit the router once so the histogram has a sample to expose
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	cfg := testConfig("")
	cfg.CORS.AllowedOrigins = []string{"https://blog.example"}
	router := newTestApp(t, cfg).setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://blog.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "https://blog.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartHTTPServer_GracefulShutdown(t *testing.T) {
	cfg := testConfig("")
	cfg.Server.Port = 0
	app := newTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.startHTTPServer(ctx, app.setupRouter())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartHTTPServer_ListenError(t *testing.T) {
	cfg := testConfig("")
	cfg.Server.Port = -1
	app := newTestApp(t, cfg)

	err := app.startHTTPServer(context.Background(), app.setupRouter())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "server failed"))
}
