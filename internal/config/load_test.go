package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for the duration of the test
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// TestLoadDefaults verifies that the Load function sets the expected default values
// when only the required fields are provided.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"BLOGSMITH_LLM_OPENAI_API_KEY": "test-api-key",
	})

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8000, cfg.Server.Port, "Default server port should be 8000")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 60, cfg.Server.RequestTimeoutSeconds)
	assert.False(t, cfg.Server.StrictStatusCodes)
	assert.False(t, cfg.Server.UniformFailureMessages)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 5, cfg.LLM.MaxRetries, "Default retry count should be 5")
	assert.Equal(t, 2000, cfg.LLM.MaxTokens, "Default token ceiling should be 2000")
	assert.InDelta(t, 1.0, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 0, cfg.LLM.RetryBaseDelayMS, "Backoff should be disabled by default")
	assert.Equal(t, "open", cfg.Moderation.FailurePolicy, "Moderation should fail open by default")
	assert.Equal(t, "openai", cfg.ModerationProvider())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Telemetry.Enabled, "Tracing should be off by default")
	assert.Equal(t, "blogsmith-api", cfg.Telemetry.ServiceName)
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"BLOGSMITH_SERVER_PORT":                     "9090",
		"BLOGSMITH_SERVER_LOG_LEVEL":                "debug",
		"BLOGSMITH_SERVER_STRICT_STATUS_CODES":      "true",
		"BLOGSMITH_SERVER_UNIFORM_FAILURE_MESSAGES": "true",
		"BLOGSMITH_LLM_PROVIDER":                    "gemini",
		"BLOGSMITH_LLM_GEMINI_API_KEY":              "gemini-key",
		"BLOGSMITH_LLM_MAX_RETRIES":                 "3",
		"BLOGSMITH_LLM_MAX_TOKENS":                  "4000",
		"BLOGSMITH_LLM_RETRY_BASE_DELAY_MS":         "250",
		"BLOGSMITH_MODERATION_FAILURE_POLICY":       "closed",
		"BLOGSMITH_CORS_ALLOWED_ORIGINS":            "https://a.example,https://b.example",
	})

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.True(t, cfg.Server.StrictStatusCodes)
	assert.True(t, cfg.Server.UniformFailureMessages)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, 4000, cfg.LLM.MaxTokens)
	assert.Equal(t, 250, cfg.LLM.RetryBaseDelayMS)
	assert.Equal(t, "closed", cfg.Moderation.FailurePolicy)
	assert.Equal(t, "gemini", cfg.ModerationProvider(), "auto moderation should follow the LLM provider")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing OpenAI key for default provider",
			envVars: map[string]string{
				"BLOGSMITH_LLM_OPENAI_API_KEY": "",
			},
		},
		{
			name: "Invalid port number",
			envVars: map[string]string{
				"BLOGSMITH_SERVER_PORT":        "999999",
				"BLOGSMITH_LLM_OPENAI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Invalid log level",
			envVars: map[string]string{
				"BLOGSMITH_SERVER_LOG_LEVEL":   "invalid-level",
				"BLOGSMITH_LLM_OPENAI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Unknown provider",
			envVars: map[string]string{
				"BLOGSMITH_LLM_PROVIDER":       "parrot",
				"BLOGSMITH_LLM_OPENAI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Zero retries",
			envVars: map[string]string{
				"BLOGSMITH_LLM_MAX_RETRIES":    "0",
				"BLOGSMITH_LLM_OPENAI_API_KEY": "test-api-key",
			},
		},
		{
			name: "Unknown failure policy",
			envVars: map[string]string{
				"BLOGSMITH_MODERATION_FAILURE_POLICY": "maybe",
				"BLOGSMITH_LLM_OPENAI_API_KEY":        "test-api-key",
			},
		},
		{
			name: "Sample rate above one",
			envVars: map[string]string{
				"BLOGSMITH_TELEMETRY_SAMPLE_RATE": "1.5",
				"BLOGSMITH_LLM_OPENAI_API_KEY":    "test-api-key",
			},
		},
		{
			name: "OpenAI moderation without OpenAI key",
			envVars: map[string]string{
				"BLOGSMITH_LLM_PROVIDER":        "gemini",
				"BLOGSMITH_LLM_GEMINI_API_KEY":  "gemini-key",
				"BLOGSMITH_MODERATION_PROVIDER": "openai",
				"BLOGSMITH_LLM_OPENAI_API_KEY":  "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}

func TestModerationProvider_Disabled(t *testing.T) {
	setupEnv(t, map[string]string{
		"BLOGSMITH_LLM_OPENAI_API_KEY":  "test-api-key",
		"BLOGSMITH_MODERATION_PROVIDER": "disabled",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "disabled", cfg.ModerationProvider())
}

// TestLoadDotEnv verifies that a .env file in the working directory feeds
// the environment without overriding variables that are already set.
func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := "BLOGSMITH_LLM_OPENAI_API_KEY=from-dotenv\nBLOGSMITH_LLM_MAX_TOKENS=3000\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))
	t.Chdir(dir)

	setupEnv(t, map[string]string{
		"BLOGSMITH_LLM_MAX_TOKENS": "2500",
	})
	t.Cleanup(func() { _ = os.Unsetenv("BLOGSMITH_LLM_OPENAI_API_KEY") })

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, 2500, cfg.LLM.MaxTokens, "existing environment wins over .env")
}
