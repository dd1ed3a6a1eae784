package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/blogsmith-api/internal/blog"
	"github.com/phrazzld/blogsmith-api/internal/config"
	"github.com/phrazzld/blogsmith-api/internal/generation"
	"github.com/phrazzld/blogsmith-api/internal/moderation"
	"github.com/phrazzld/blogsmith-api/internal/platform/gemini"
	"github.com/phrazzld/blogsmith-api/internal/platform/openai"
)

// application holds the wired dependencies of the server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	blogService blog.Service
}

// newApplication creates the providers selected by cfg and wires the blog
// service on top of them.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	classifier, err := newClassifier(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create moderation classifier: %w", err)
	}

	policy, err := moderation.ParsePolicy(cfg.Moderation.FailurePolicy)
	if err != nil {
		return nil, err
	}

	moderator, err := moderation.NewModerator(classifier, policy, logger.With(slog.String("component", "moderation")))
	if err != nil {
		return nil, fmt.Errorf("failed to create moderator: %w", err)
	}

	generator, err := generation.NewGenerator(provider, generation.Options{
		MaxRetries:     cfg.LLM.MaxRetries,
		Temperature:    float32(cfg.LLM.Temperature),
		MaxTokens:      cfg.LLM.MaxTokens,
		RetryBaseDelay: time.Duration(cfg.LLM.RetryBaseDelayMS) * time.Millisecond,
	}, logger.With(slog.String("component", "generation")))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	prompts, err := blog.LoadPrompts(cfg.LLM.PromptDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	service, err := blog.NewService(moderator, generator, prompts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog service: %w", err)
	}

	logger.Info("Application initialized",
		"provider", provider.Name(),
		"classifier", classifier.Name())

	return &application{
		config:      cfg,
		logger:      logger,
		blogService: service,
	}, nil
}

// newProvider creates the generation provider named by llm.provider.
func newProvider(ctx context.Context, cfg *config.Config) (generation.Provider, error) {
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second

	switch cfg.LLM.Provider {
	case "openai":
		return openai.NewChatProvider(openai.Config{
			APIKey:  cfg.LLM.OpenAIAPIKey,
			BaseURL: cfg.LLM.OpenAIBaseURL,
			Model:   cfg.LLM.ModelName,
			Timeout: timeout,
		})
	case "gemini":
		return gemini.NewProvider(ctx, gemini.Config{
			APIKey:  cfg.LLM.GeminiAPIKey,
			Model:   cfg.LLM.ModelName,
			Timeout: timeout,
		})
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.LLM.Provider)
	}
}

// newClassifier creates the moderation classifier for the resolved
// moderation provider.
func newClassifier(ctx context.Context, cfg *config.Config) (moderation.Classifier, error) {
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second

	switch provider := cfg.ModerationProvider(); provider {
	case "openai":
		return openai.NewModerator(openai.Config{
			APIKey:  cfg.LLM.OpenAIAPIKey,
			BaseURL: cfg.LLM.OpenAIBaseURL,
			Model:   cfg.Moderation.Model,
			Timeout: timeout,
		})
	case "gemini":
		return gemini.NewModerator(ctx, gemini.Config{
			APIKey:  cfg.LLM.GeminiAPIKey,
			Model:   cfg.Moderation.Model,
			Timeout: timeout,
		})
	case "disabled":
		return moderation.Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown moderation provider %q", provider)
	}
}
