package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/phrazzld/blogsmith-api/internal/api"
	apiMiddleware "github.com/phrazzld/blogsmith-api/internal/api/middleware"
	"github.com/phrazzld/blogsmith-api/internal/api/shared"
	"github.com/phrazzld/blogsmith-api/internal/metrics"
)

// setupRouter creates the application router with all routes and middleware,
// wrapped in the CORS handler.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	if timeout := app.config.Server.RequestTimeoutSeconds; timeout > 0 {
		r.Use(apiMiddleware.Deadline(time.Duration(timeout) * time.Second))
	}

	blogHandler := api.NewBlogHandler(app.blogService, api.HandlerOptions{
		StrictStatusCodes:      app.config.Server.StrictStatusCodes,
		UniformFailureMessages: app.config.Server.UniformFailureMessages,
	})

	r.Get("/", api.Info)

	r.Route("/api/blog", func(r chi.Router) {
		r.Get("/generate-titles", blogHandler.GenerateTitles)
		r.Get("/generate-blog-ideas", blogHandler.GenerateIdeas)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return handlers.CORS(
		handlers.AllowedOrigins(app.config.CORS.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
		handlers.ExposedHeaders([]string{shared.TraceIDHeader}),
	)(r)
}
