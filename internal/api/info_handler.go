package api

import (
	"net/http"

	"github.com/phrazzld/blogsmith-api/internal/api/shared"
)

// InfoResponse is the body of GET /
type InfoResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// Info handles GET / and tells clients the service is up and what it serves.
func Info(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, InfoResponse{
		Message: "Blog Title Generator API is running!",
		Endpoints: map[string]string{
			"generate_titles":     "/api/blog/generate-titles?user_topic=YOUR_TOPIC",
			"generate_blog_ideas": "/api/blog/generate-blog-ideas?blog_post_idea=YOUR_IDEA&tone=YOUR_TONE",
		},
	})
}
