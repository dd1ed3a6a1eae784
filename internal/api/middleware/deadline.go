package middleware

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds the request context by timeout. Unlike chi's Timeout it
// never writes a response itself: handlers observe the expired context,
// answer with their own envelope, and no second WriteHeader is issued.
func Deadline(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
