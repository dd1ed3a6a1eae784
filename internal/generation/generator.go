package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/phrazzld/blogsmith-api/internal/metrics"
	"github.com/phrazzld/blogsmith-api/internal/platform/logger"
	"github.com/phrazzld/blogsmith-api/internal/redact"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/phrazzld/blogsmith-api/internal/generation"

// Default generation settings
const (
	DefaultMaxRetries  = 5
	DefaultTemperature = 1.0
	DefaultMaxTokens   = 2000
)

// jsonSystemInstruction is sent with every call; the shape skeleton is appended.
const jsonSystemInstruction = "You are a helpful assistant that outputs only valid JSON. " +
	"Always complete your JSON responses fully."

// Options controls a Generate call.
type Options struct {
	// MaxRetries is the total number of provider calls allowed.
	MaxRetries int

	// Temperature is passed to the provider.
	Temperature float32

	// MaxTokens is the output token ceiling passed to the provider. It must be
	// generous enough that a complete response never truncates.
	MaxTokens int

	// RetryBaseDelay enables exponential backoff with jitter between attempts
	// when positive. Zero retries immediately.
	RetryBaseDelay time.Duration
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxRetries:  DefaultMaxRetries,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Option overrides a single setting for one Generate call.
type Option func(*Options)

// WithTemperature overrides the sampling temperature.
func WithTemperature(temperature float32) Option {
	return func(o *Options) {
		o.Temperature = temperature
	}
}

// WithMaxRetries overrides the number of attempts.
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.MaxRetries = n
	}
}

// Report describes how a Generate call went.
type Report struct {
	Attempts int
	Elapsed  time.Duration
}

// Generator owns a provider and the default options applied to every call.
// It holds no per-request state and is safe for concurrent use.
type Generator struct {
	provider Provider
	options  Options
	logger   *slog.Logger
	tracer   trace.Tracer

	// sleep waits between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGenerator creates a Generator.
func NewGenerator(provider Provider, options Options, logger *slog.Logger) (*Generator, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if options.MaxRetries < 1 {
		return nil, fmt.Errorf("%w: max retries must be at least 1, got %d", ErrInvalidConfig, options.MaxRetries)
	}
	if options.MaxTokens < 1 {
		return nil, fmt.Errorf("%w: max tokens must be positive, got %d", ErrInvalidConfig, options.MaxTokens)
	}
	if options.RetryBaseDelay < 0 {
		return nil, fmt.Errorf("%w: retry delay cannot be negative", ErrInvalidConfig)
	}

	return &Generator{
		provider: provider,
		options:  options,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		sleep:    sleepContext,
	}, nil
}

// MaxRetries returns the configured number of attempts.
func (g *Generator) MaxRetries() int {
	return g.options.MaxRetries
}

// Generate asks the provider for a document matching shape and returns the
// first response that parses and validates.
//
// Attempts are strictly sequential. Malformed JSON and shape mismatches are
// logged at WARN, any other provider failure at ERROR, and in every case the
// loop moves on to the next attempt. After MaxRetries failures it returns
// ErrRetriesExhausted. A done context stops the loop early.
func Generate[T any](
	ctx context.Context,
	g *Generator,
	prompt string,
	shape Shape[T],
	opts ...Option,
) (T, Report, error) {
	var zero T

	options := g.options
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxRetries < 1 {
		options.MaxRetries = 1
	}

	req := Request{
		SystemInstruction: jsonSystemInstruction + "\nRespond with a JSON object of this shape: " + shape.Describe(),
		Prompt:            prompt,
		Temperature:       options.Temperature,
		MaxTokens:         options.MaxTokens,
		JSONMode:          true,
		Shape:             shape.Descriptor,
	}

	log := logger.FromContextOrDefault(ctx, g.logger).With("shape", shape.Name, "provider", g.provider.Name())
	start := time.Now()
	report := Report{}

	ctx, span := g.tracer.Start(ctx, "generation.Generate", trace.WithAttributes(
		attribute.String("generation.shape", shape.Name),
		attribute.String("llm.provider", g.provider.Name()),
		attribute.Int("generation.max_retries", options.MaxRetries),
	))
	defer func() {
		span.SetAttributes(attribute.Int("generation.attempts", report.Attempts))
		span.End()
	}()

	canceled := func(err error) (T, Report, error) {
		report.Elapsed = time.Since(start)
		metrics.ObserveGenerationRequest(shape.Name, "canceled")
		span.SetStatus(codes.Error, "canceled")
		return zero, report, fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, report.Attempts, err)
	}

	for attempt := 0; attempt < options.MaxRetries; attempt++ {
		if attempt > 0 && options.RetryBaseDelay > 0 {
			delay := backoff(options.RetryBaseDelay, attempt-1)
			log.DebugContext(ctx, "Retrying after delay",
				"attempt", attempt+1,
				"delay_ms", delay.Milliseconds())
			if err := g.sleep(ctx, delay); err != nil {
				return canceled(err)
			}
		}

		if err := ctx.Err(); err != nil {
			return canceled(err)
		}

		report.Attempts++
		result, err := attemptOnce(ctx, g.tracer, report.Attempts, g.provider, req, shape)
		if err == nil {
			report.Elapsed = time.Since(start)
			metrics.ObserveGenerationAttempt(shape.Name, "success")
			metrics.ObserveGenerationRequest(shape.Name, "success")
			log.InfoContext(ctx, "Structured generation succeeded",
				"attempt", report.Attempts,
				"elapsed_ms", report.Elapsed.Milliseconds())
			return result, report, nil
		}

		switch {
		case errors.Is(err, ErrMalformedResponse):
			metrics.ObserveGenerationAttempt(shape.Name, "malformed")
			log.WarnContext(ctx, "Failed during JSON decoding",
				"attempt", report.Attempts,
				"error", redact.Error(err))
		case errors.Is(err, ErrShapeMismatch):
			metrics.ObserveGenerationAttempt(shape.Name, "shape_mismatch")
			log.WarnContext(ctx, "Failed during response validation",
				"attempt", report.Attempts,
				"error", redact.Error(err))
		default:
			metrics.ObserveGenerationAttempt(shape.Name, "provider_error")
			log.ErrorContext(ctx, "Provider call failed",
				"attempt", report.Attempts,
				"error", redact.Error(err))
		}
	}

	report.Elapsed = time.Since(start)
	metrics.ObserveGenerationRequest(shape.Name, "exhausted")
	span.SetStatus(codes.Error, "retries exhausted")
	log.ErrorContext(ctx, "Maximum attempts reached",
		"attempts", report.Attempts,
		"elapsed_ms", report.Elapsed.Milliseconds())

	return zero, report, fmt.Errorf("%w: %d attempts", ErrRetriesExhausted, report.Attempts)
}

// attemptOnce performs one provider call and parses its output.
func attemptOnce[T any](
	ctx context.Context,
	tracer trace.Tracer,
	attempt int,
	provider Provider,
	req Request,
	shape Shape[T],
) (result T, err error) {
	ctx, span := tracer.Start(ctx, "generation.attempt",
		trace.WithAttributes(attribute.Int("generation.attempt", attempt)))
	defer func() {
		if err != nil {
			span.RecordError(errors.New(redact.Error(err)))
			span.SetStatus(codes.Error, "attempt failed")
		}
		span.End()
	}()

	metrics.IncLLMRequest(provider.Name())
	raw, err := provider.Complete(ctx, req)
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrShapeMismatch) {
			return result, err
		}
		return result, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}

	return shape.Parse(raw)
}

// backoff computes base * 2^attempt scaled by a jitter factor in [0.5, 1.0).
func backoff(base time.Duration, attempt int) time.Duration {
	scaled := float64(base) * math.Pow(2, float64(attempt))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(scaled * jitter)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
