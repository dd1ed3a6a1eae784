// Package main implements the entry point for the blogsmith API server,
// which generates blog post titles and blog post ideas with an LLM.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/blogsmith-api/internal/config"
	"github.com/phrazzld/blogsmith-api/internal/platform/logger"
	"github.com/phrazzld/blogsmith-api/internal/platform/telemetry"
)

// main is the entry point for the blogsmith-api server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("blogsmith-api: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application and serves until ctx is done.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"moderation_provider", cfg.ModerationProvider(),
		"moderation_failure_policy", cfg.Moderation.FailurePolicy,
		"strict_status_codes", cfg.Server.StrictStatusCodes)
	slog.Debug("LLM configuration",
		"max_retries", cfg.LLM.MaxRetries,
		"max_tokens", cfg.LLM.MaxTokens,
		"temperature", cfg.LLM.Temperature,
		"retry_base_delay_ms", cfg.LLM.RetryBaseDelayMS,
		"prompt_dir", cfg.LLM.PromptDir)

	providers, err := telemetry.Init(ctx, cfg.Telemetry, l)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			l.Error("Telemetry shutdown failed", "error", err)
		}
	}()

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
