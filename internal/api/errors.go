package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/blogsmith-api/internal/blog"
	"github.com/phrazzld/blogsmith-api/internal/generation"
)

// ErrInvalidRequest indicates missing or malformed query parameters.
var ErrInvalidRequest = errors.New("invalid request")

// Response messages
const (
	MsgInputNotAllowed = "Input Not Allowed"
	MsgTitlesOK        = "Generated Titles Successfully"
	MsgIdeasOK         = "Generated Blog Ideas Successfully"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Without
// strict status codes every business outcome is reported with 200 and only
// the envelope tells success from failure.
func MapErrorToStatusCode(err error, strict bool) int {
	if !strict {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, blog.ErrInputNotAllowed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrRetriesExhausted):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for a failed
// generation of subject ("titles", "blog ideas"). The attempt count is only
// appended when withAttempts is set. It never includes provider error text.
func GetSafeErrorMessage(err error, subject string, withAttempts bool) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	if errors.Is(err, blog.ErrInputNotAllowed) {
		return MsgInputNotAllowed
	}

	var svcErr *blog.ServiceError
	if withAttempts && errors.As(err, &svcErr) && svcErr.Attempts > 0 {
		return fmt.Sprintf("Failed to generate %s after %d attempts", subject, svcErr.Attempts)
	}
	return fmt.Sprintf("Failed to generate %s", subject)
}

// SanitizeValidationError turns a validator error into a message naming the
// offending query parameter.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("Invalid request: %s %s", verrs[0].Field(), getValidationTagMessage(verrs[0].Tag()))
	}

	// Fall back to a generic validation error message
	return "Invalid request"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
