package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blogsmith-api/internal/generation"
	"github.com/phrazzld/blogsmith-api/internal/platform/logger"
)

// ErrInputNotAllowed indicates that moderation rejected the input.
var ErrInputNotAllowed = errors.New("input not allowed")

// Moderator decides whether input must be rejected before generation.
type Moderator interface {
	IsFlagged(ctx context.Context, text string) bool
}

// Service provides the blog content operations.
type Service interface {
	// GenerateTitles returns blog post titles for topic.
	GenerateTitles(ctx context.Context, topic string) ([]string, error)

	// GenerateIdeas returns blog post ideas for a subject written in tone.
	GenerateIdeas(ctx context.Context, blogPostIdea, tone string) ([]Idea, error)
}

// ServiceError wraps errors from the blog service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "generate_titles")
	Operation string
	// Attempts is the number of provider calls made before failing
	Attempts int
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("blog service %s failed after %d attempts: %v", e.Operation, e.Attempts, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError creates a new ServiceError.
// ErrInputNotAllowed is returned directly without wrapping.
func newServiceError(operation string, attempts int, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInputNotAllowed) {
		return ErrInputNotAllowed
	}
	return &ServiceError{Operation: operation, Attempts: attempts, Err: err}
}

// serviceImpl implements the Service interface
type serviceImpl struct {
	moderator Moderator
	generator *generation.Generator
	prompts   *Prompts
	logger    *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates a new blog Service
// It returns an error if any of the required dependencies are nil.
func NewService(
	moderator Moderator,
	generator *generation.Generator,
	prompts *Prompts,
	logger *slog.Logger,
) (Service, error) {
	if moderator == nil {
		return nil, errors.New("moderator cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if prompts == nil {
		return nil, errors.New("prompts cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &serviceImpl{
		moderator: moderator,
		generator: generator,
		prompts:   prompts,
		logger:    logger.With(slog.String("component", "blog_service")),
	}, nil
}

// GenerateTitles implements Service
func (s *serviceImpl) GenerateTitles(ctx context.Context, topic string) ([]string, error) {
	const op = "generate_titles"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.moderator.IsFlagged(ctx, topic) {
		log.InfoContext(ctx, "Rejected flagged topic", "operation", op)
		return nil, ErrInputNotAllowed
	}

	prompt, err := s.prompts.Titles(topic)
	if err != nil {
		return nil, newServiceError(op, 0, err)
	}

	result, report, err := generation.Generate(ctx, s.generator, prompt, TitlesShape)
	if err != nil {
		return nil, newServiceError(op, report.Attempts, err)
	}

	log.DebugContext(ctx, "Generated titles",
		"operation", op,
		"count", len(result.Titles),
		"attempts", report.Attempts)
	return result.Titles, nil
}

// GenerateIdeas implements Service. Only the blog post idea is moderated;
// the tone is passed to the prompt as given.
func (s *serviceImpl) GenerateIdeas(ctx context.Context, blogPostIdea, tone string) ([]Idea, error) {
	const op = "generate_ideas"
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.moderator.IsFlagged(ctx, blogPostIdea) {
		log.InfoContext(ctx, "Rejected flagged blog post idea", "operation", op)
		return nil, ErrInputNotAllowed
	}

	prompt, err := s.prompts.Ideas(blogPostIdea, tone)
	if err != nil {
		return nil, newServiceError(op, 0, err)
	}

	result, report, err := generation.Generate(ctx, s.generator, prompt, IdeasShape)
	if err != nil {
		return nil, newServiceError(op, report.Attempts, err)
	}

	log.DebugContext(ctx, "Generated blog ideas",
		"operation", op,
		"count", len(result.Items),
		"attempts", report.Attempts)
	return result.Items, nil
}
