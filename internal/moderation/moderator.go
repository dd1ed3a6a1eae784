package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blogsmith-api/internal/metrics"
	"github.com/phrazzld/blogsmith-api/internal/platform/logger"
	"github.com/phrazzld/blogsmith-api/internal/redact"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidPolicy is returned for an unknown failure policy name.
var ErrInvalidPolicy = errors.New("invalid moderation failure policy")

// Classifier is the boundary to an external moderation capability.
type Classifier interface {
	// Name identifies the classifier for logging.
	Name() string

	// Classify reports whether the provider flags text as violating
	// content policy.
	Classify(ctx context.Context, text string) (bool, error)
}

// FailurePolicy maps an absent verdict to allow or deny.
type FailurePolicy string

// Failure policies
const (
	FailOpen   FailurePolicy = "open"
	FailClosed FailurePolicy = "closed"
)

// ParsePolicy converts a configuration value into a FailurePolicy.
func ParsePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case FailOpen, FailClosed:
		return FailurePolicy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Moderator checks input before any generation work happens.
type Moderator struct {
	classifier Classifier
	policy     FailurePolicy
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewModerator creates a Moderator.
func NewModerator(classifier Classifier, policy FailurePolicy, logger *slog.Logger) (*Moderator, error) {
	if classifier == nil {
		return nil, errors.New("classifier cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if _, err := ParsePolicy(string(policy)); err != nil {
		return nil, err
	}

	return &Moderator{
		classifier: classifier,
		policy:     policy,
		logger:     logger,
		tracer:     otel.Tracer("github.com/phrazzld/blogsmith-api/internal/moderation"),
	}, nil
}

// IsFlagged reports whether text must be rejected. Classifier errors never
// surface to the caller: they are logged and resolved by the failure policy.
func (m *Moderator) IsFlagged(ctx context.Context, text string) bool {
	log := logger.FromContextOrDefault(ctx, m.logger)

	ctx, span := m.tracer.Start(ctx, "moderation.IsFlagged", trace.WithAttributes(
		attribute.String("moderation.classifier", m.classifier.Name()),
		attribute.String("moderation.policy", string(m.policy)),
	))
	defer span.End()

	flagged, err := m.classifier.Classify(ctx, text)
	if err != nil {
		verdict := m.policy == FailClosed
		span.SetStatus(codes.Error, "classifier failed")
		span.SetAttributes(attribute.Bool("moderation.flagged", verdict))
		log.ErrorContext(ctx, "Moderation check failed",
			"classifier", m.classifier.Name(),
			"policy", string(m.policy),
			"flagged", verdict,
			"error", redact.Error(err))
		if verdict {
			metrics.IncModerationCheck("error_flagged")
		} else {
			metrics.IncModerationCheck("error_allowed")
		}
		return verdict
	}

	span.SetAttributes(attribute.Bool("moderation.flagged", flagged))
	if flagged {
		metrics.IncModerationCheck("flagged")
		log.InfoContext(ctx, "Input flagged by moderation",
			"classifier", m.classifier.Name(),
			"input_length", len(text))
		return true
	}

	metrics.IncModerationCheck("allowed")
	return false
}

// Disabled is a Classifier that never flags anything.
type Disabled struct{}

// Name implements Classifier.
func (Disabled) Name() string { return "disabled" }

// Classify implements Classifier.
func (Disabled) Classify(context.Context, string) (bool, error) { return false, nil }
