// internal/server/middleware.go
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"social-support-portal/internal/common/metrics"
)

// JSONResponse writes v as JSON with the given status code.
func JSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse writes the {error} shape every failure path uses.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs each request and feeds the prometheus and otel
// instruments.
func (s *Server) withLogging(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		elapsed := time.Since(started)
		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

		if s.obs != nil {
			s.obs.RecordRequest(r.Context(), route, strconv.Itoa(rec.status))
			s.obs.RecordRequestDuration(r.Context(), elapsed, route)
		}

		s.logger.Info("request handled", map[string]interface{}{
			"route":     route,
			"method":    r.Method,
			"status":    rec.status,
			"elapsedMs": elapsed.Milliseconds(),
		})
	}
}

// withCORS allows the configured frontend origin.
func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionKey reads the session from X-Session-ID, defaulting to "default"
// for anonymous single-session clients.
func sessionKey(r *http.Request) string {
	if s := r.Header.Get("X-Session-ID"); s != "" {
		return s
	}
	return "default"
}
