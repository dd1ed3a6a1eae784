package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Moderation ModerationConfig `mapstructure:"moderation" validate:"required"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RequestTimeoutSeconds bounds the whole handling of one request,
	// moderation and every generation attempt included. Zero disables it.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=0"`

	// StrictStatusCodes maps business failures to distinct HTTP status codes
	// instead of answering 200 for every outcome. The body is unchanged.
	StrictStatusCodes bool `mapstructure:"strict_status_codes"`

	// UniformFailureMessages reports the attempt count on exhausted
	// generations for both endpoints. When false only the titles endpoint
	// carries it and ideas fail with "Failed to generate blog ideas".
	UniformFailureMessages bool `mapstructure:"uniform_failure_messages"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=openai gemini"`

	OpenAIAPIKey  string `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	OpenAIBaseURL string `mapstructure:"openai_base_url" validate:"omitempty,url"`
	GeminiAPIKey  string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`

	// ModelName overrides the provider's default model when set.
	ModelName string `mapstructure:"model_name"`

	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gt=0"`
	MaxRetries  int     `mapstructure:"max_retries" validate:"gt=0,lte=20"`

	// RetryBaseDelayMS enables exponential backoff with jitter when positive.
	RetryBaseDelayMS int `mapstructure:"retry_base_delay_ms" validate:"gte=0"`

	// TimeoutSeconds bounds a single provider call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gt=0"`

	// PromptDir optionally overrides the embedded prompt templates.
	PromptDir string `mapstructure:"prompt_dir" validate:"omitempty,dir"`
}

// ModerationConfig contains content moderation settings.
type ModerationConfig struct {
	// Provider is auto (same as llm.provider), openai, gemini or disabled.
	Provider string `mapstructure:"provider" validate:"required,oneof=auto openai gemini disabled"`

	// FailurePolicy decides the verdict when the moderation call fails.
	FailurePolicy string `mapstructure:"failure_policy" validate:"required,oneof=open closed"`

	// Model overrides the moderation model when set.
	Model string `mapstructure:"model"`
}

// CORSConfig contains cross-origin settings for browser clients.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TelemetryConfig contains OpenTelemetry tracing settings.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// OTLPEndpoint is the host:port of an OTLP gRPC collector.
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" validate:"required_if=Enabled true"`
	ServiceName  string  `mapstructure:"service_name" validate:"required_if=Enabled true"`
	SampleRate   float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ModerationProvider resolves "auto" to the LLM provider.
func (c *Config) ModerationProvider() string {
	if c.Moderation.Provider == "auto" {
		return c.LLM.Provider
	}
	return c.Moderation.Provider
}
