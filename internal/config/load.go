package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. BLOGSMITH_SERVER_PORT.
const EnvPrefix = "BLOGSMITH"

var validate = validator.New()

// setDefaults registers every key so that environment variables are picked
// up by Unmarshal even when no config file mentions them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout_seconds", 60)
	v.SetDefault("server.strict_status_codes", false)
	v.SetDefault("server.uniform_failure_messages", false)

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openai_base_url", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "")
	v.SetDefault("llm.temperature", 1.0)
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.max_retries", 5)
	v.SetDefault("llm.retry_base_delay_ms", 0)
	v.SetDefault("llm.timeout_seconds", 30)
	v.SetDefault("llm.prompt_dir", "")

	v.SetDefault("moderation.provider", "auto")
	v.SetDefault("moderation.failure_policy", "open")
	v.SetDefault("moderation.model", "")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "localhost:4317")
	v.SetDefault("telemetry.service_name", "blogsmith-api")
	v.SetDefault("telemetry.sample_rate", 1.0)
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. A .env file in the working directory is loaded
// into the environment first without overriding variables that are already
// set. Environment variables take precedence over values from the config
// file. Returns a populated Config struct or an error if loading/validation
// fails.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and the rules that span sections.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch c.ModerationProvider() {
	case "openai":
		if c.LLM.OpenAIAPIKey == "" {
			return errors.New("config validation failed: openai moderation requires llm.openai_api_key")
		}
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			return errors.New("config validation failed: gemini moderation requires llm.gemini_api_key")
		}
	}

	return nil
}
