package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/blogsmith-api/internal/api/shared"
	"github.com/phrazzld/blogsmith-api/internal/blog"
)

// GenerateTitlesRequest holds the query parameters of GET /api/blog/generate-titles
type GenerateTitlesRequest struct {
	UserTopic string `query:"user_topic" validate:"required"`
}

// GenerateIdeasRequest holds the query parameters of GET /api/blog/generate-blog-ideas
type GenerateIdeasRequest struct {
	BlogPostIdea string `query:"blog_post_idea" validate:"required"`
	Tone         string `query:"tone" validate:"required"`
}

// HandlerOptions tunes how failures are reported.
type HandlerOptions struct {
	// StrictStatusCodes uses distinct HTTP statuses for failures instead of 200.
	StrictStatusCodes bool

	// UniformFailureMessages appends the attempt count to the ideas failure
	// message too. Titles always carry it.
	UniformFailureMessages bool
}

// BlogHandler handles the blog content endpoints
type BlogHandler struct {
	service blog.Service
	options HandlerOptions
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service blog.Service, options HandlerOptions) *BlogHandler {
	return &BlogHandler{
		service: service,
		options: options,
	}
}

// GenerateTitles handles GET /api/blog/generate-titles requests
func (h *BlogHandler) GenerateTitles(w http.ResponseWriter, r *http.Request) {
	var req GenerateTitlesRequest
	if !h.bindAndValidate(w, r, &req) {
		return
	}

	titles, err := h.service.GenerateTitles(r.Context(), req.UserTopic)
	if err != nil {
		h.respondWithServiceError(w, r, err, "titles", true)
		return
	}

	shared.RespondWithSuccess(w, r, MsgTitlesOK, titles)
}

// GenerateIdeas handles GET /api/blog/generate-blog-ideas requests
func (h *BlogHandler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var req GenerateIdeasRequest
	if !h.bindAndValidate(w, r, &req) {
		return
	}

	ideas, err := h.service.GenerateIdeas(r.Context(), req.BlogPostIdea, req.Tone)
	if err != nil {
		h.respondWithServiceError(w, r, err, "blog ideas", h.options.UniformFailureMessages)
		return
	}

	shared.RespondWithSuccess(w, r, MsgIdeasOK, ideas)
}

// bindAndValidate fills req from the query string and writes a failure
// envelope when validation fails.
func (h *BlogHandler) bindAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	shared.BindQuery(r.URL.Query(), req)

	if err := shared.ValidateRequest(req); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		shared.RespondWithFailure(w, r,
			MapErrorToStatusCode(err, h.options.StrictStatusCodes),
			SanitizeValidationError(err),
			err)
		return false
	}
	return true
}

func (h *BlogHandler) respondWithServiceError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	subject string,
	withAttempts bool,
) {
	level := slog.LevelWarn
	if errors.Is(err, blog.ErrInputNotAllowed) {
		level = slog.LevelInfo
	}

	shared.RespondWithFailure(w, r,
		MapErrorToStatusCode(err, h.options.StrictStatusCodes),
		GetSafeErrorMessage(err, subject, withAttempts),
		err,
		shared.WithLogLevel(level))
}
