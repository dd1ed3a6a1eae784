package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/blogsmith-api/internal/platform/logger"
	"github.com/phrazzld/blogsmith-api/internal/redact"
)

// Envelope is the body of every blog API response. Result is null whenever
// Success is false.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for failure responses.
type responseOptions struct {
	logLevel *slog.Level
}

// WithLogLevel overrides the level the failure is logged at.
func WithLogLevel(level slog.Level) ResponseOption {
	return func(opts *responseOptions) {
		opts.logLevel = &level
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithSuccess writes a successful envelope carrying result.
func RespondWithSuccess(w http.ResponseWriter, r *http.Request, message string, result interface{}) {
	RespondWithJSON(w, r, http.StatusOK, Envelope{Success: true, Message: message, Result: result})
}

// RespondWithFailure writes a failed envelope and logs the detailed error.
// Only message reaches the client; the error is redacted and logged.
//
// Log level strategy:
// - 5xx statuses: ERROR
// - anything else: DEBUG, unless overridden with WithLogLevel
func RespondWithFailure(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", message),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	if responseOpts.logLevel != nil {
		logLevel = *responseOpts.logLevel
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API failure response", logAttrs...)

	RespondWithJSON(w, r, status, Envelope{Success: false, Message: message, Result: nil})
}
