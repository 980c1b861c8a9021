// internal/server/router.go
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes assembles the full API surface with logging and CORS applied.
func (s *Server) Routes(corsOrigin string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.withLogging("/api/chat", s.handleChat))
	mux.HandleFunc("POST /api/help-me-write", s.withLogging("/api/help-me-write", s.handleHelpMeWrite))

	mux.HandleFunc("POST /api/applications/validate", s.withLogging("/api/applications/validate", s.handleValidate))
	mux.HandleFunc("GET /api/draft", s.withLogging("/api/draft", s.handleGetDraft))
	mux.HandleFunc("PUT /api/draft", s.withLogging("/api/draft", s.handlePutDraft))
	mux.HandleFunc("DELETE /api/draft", s.withLogging("/api/draft", s.handleDeleteDraft))
	mux.HandleFunc("POST /api/applications/submit", s.withLogging("/api/applications/submit", s.handleSubmit))

	mux.HandleFunc("GET /api/applications", s.withLogging("/api/applications", s.handleListApplications))
	mux.HandleFunc("GET /api/applications/{id}", s.withLogging("/api/applications/{id}", s.handleGetApplication))
	mux.HandleFunc("POST /api/applications/{id}/status", s.withLogging("/api/applications/{id}/status", s.handleUpdateStatus))

	mux.HandleFunc("GET /api/services", s.withLogging("/api/services", s.handleListServices))
	mux.HandleFunc("GET /api/services/search", s.withLogging("/api/services/search", s.handleSearchServices))

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return withCORS(corsOrigin, mux)
}
