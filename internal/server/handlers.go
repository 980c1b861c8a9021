// internal/server/handlers.go
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"social-support-portal/internal/assistant/catalog"
	"social-support-portal/internal/assistant/router"
	"social-support-portal/internal/common/errors"
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/common/metrics"
	"social-support-portal/internal/common/observability"
	"social-support-portal/internal/models"
	"social-support-portal/internal/wizard/persist"
	"social-support-portal/internal/wizard/schema"
	"social-support-portal/internal/wizard/submit"
	"social-support-portal/internal/wizard/tracker"
)

type Server struct {
	assistant *router.Assistant
	pipeline  *submit.Pipeline
	tracker   *tracker.Tracker
	searcher  *catalog.Searcher
	store     persist.Store
	obs       *observability.Observability
	logger    logger.Logger
}

func New(assistant *router.Assistant, pipeline *submit.Pipeline, tr *tracker.Tracker, searcher *catalog.Searcher, store persist.Store, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		assistant: assistant,
		pipeline:  pipeline,
		tracker:   tr,
		searcher:  searcher,
		store:     store,
		obs:       obs,
		logger:    log,
	}
}

// ==========================
// Assistant endpoints
// ==========================

type chatRequest struct {
	Prompt    string `json:"prompt"`
	Lang      string `json:"lang"`
	UserInput string `json:"userInput"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	started := time.Now()
	answer, err := s.assistant.Chat(r.Context(), sessionKey(r), req.Prompt, req.Lang)
	metrics.AssistantLatency.WithLabelValues("chat").Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("chat", "error").Inc()
		ErrorResponse(w, http.StatusInternalServerError, userFacingMessage(err))
		return
	}

	metrics.AssistantRequestsTotal.WithLabelValues("chat", "ok").Inc()
	JSONResponse(w, http.StatusOK, map[string]string{"response": answer})
}

func (s *Server) handleHelpMeWrite(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	started := time.Now()
	answer, err := s.assistant.HelpMeWrite(r.Context(), sessionKey(r), req.Prompt, req.Lang, req.UserInput)
	metrics.AssistantLatency.WithLabelValues("help-me-write").Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("help-me-write", "error").Inc()
		ErrorResponse(w, http.StatusInternalServerError, userFacingMessage(err))
		return
	}

	metrics.AssistantRequestsTotal.WithLabelValues("help-me-write", "ok").Inc()
	JSONResponse(w, http.StatusOK, map[string]string{"response": answer})
}

func (s *Server) decodeChatRequest(w http.ResponseWriter, r *http.Request) (*chatRequest, bool) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if strings.TrimSpace(req.Prompt) == "" {
		ErrorResponse(w, http.StatusBadRequest, "Missing or invalid prompt")
		return nil, false
	}
	if req.Lang == "" {
		req.Lang = "en"
	}
	return &req, true
}

// ==========================
// Wizard endpoints
// ==========================

type validateRequest struct {
	Section string                  `json:"section"`
	Draft   models.ApplicationDraft `json:"draft"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var result *schema.ValidationResult
	if req.Section == "" {
		result = schema.ValidateAll(&req.Draft)
	} else {
		result = schema.ValidateSection(req.Section, &req.Draft)
	}
	JSONResponse(w, http.StatusOK, result)
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.Get(r.Context(), persist.DraftKey(sessionKey(r)))
	if err != nil {
		if err == persist.ErrNotFound {
			JSONResponse(w, http.StatusOK, models.ApplicationDraft{})
			return
		}
		ErrorResponse(w, http.StatusInternalServerError, "Draft could not be loaded")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(raw))
}

func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	var draft models.ApplicationDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid draft payload")
		return
	}

	data, err := json.Marshal(&draft)
	if err != nil {
		ErrorResponse(w, http.StatusInternalServerError, "Draft could not be saved")
		return
	}
	if err := s.store.Set(r.Context(), persist.DraftKey(sessionKey(r)), string(data)); err != nil {
		ErrorResponse(w, http.StatusInternalServerError, "Draft could not be saved")
		return
	}
	metrics.DraftOperations.WithLabelValues("save").Inc()
	JSONResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), persist.DraftKey(sessionKey(r))); err != nil {
		ErrorResponse(w, http.StatusInternalServerError, "Draft could not be cleared")
		return
	}
	metrics.DraftOperations.WithLabelValues("clear").Inc()
	JSONResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type submitRequest struct {
	Draft models.ApplicationDraft `json:"draft"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, result, err := s.pipeline.Submit(r.Context(), sessionKey(r), &req.Draft)
	if err != nil {
		if stdErr, ok := err.(*errors.StandardError); ok {
			switch stdErr.Code {
			case errors.ErrCodeApplicationValidationFailed:
				metrics.ApplicationsSubmitted.WithLabelValues("validation_failed").Inc()
				JSONResponse(w, http.StatusUnprocessableEntity, result)
				return
			case errors.ErrCodeDuplicateApplication:
				metrics.ApplicationsSubmitted.WithLabelValues("duplicate").Inc()
				ErrorResponse(w, http.StatusConflict, stdErr.Message)
				return
			}
		}
		metrics.ApplicationsSubmitted.WithLabelValues("failed").Inc()
		ErrorResponse(w, http.StatusInternalServerError, userFacingMessage(err))
		return
	}

	metrics.ApplicationsSubmitted.WithLabelValues("accepted").Inc()
	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"reference":   app.Reference,
		"application": app,
	})
}

// ==========================
// Tracking endpoints
// ==========================

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, s.tracker.List(r.Context()))
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.tracker.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, http.StatusNotFound, "Application not found")
		return
	}
	JSONResponse(w, http.StatusOK, app)
}

type statusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		ErrorResponse(w, http.StatusBadRequest, "Missing or invalid status")
		return
	}

	app, err := s.tracker.Transition(r.Context(), r.PathValue("id"), req.Status, req.Notes)
	if err != nil {
		if stdErr, ok := err.(*errors.StandardError); ok {
			switch stdErr.Code {
			case errors.ErrCodeApplicationNotFound:
				ErrorResponse(w, http.StatusNotFound, "Application not found")
				return
			case errors.ErrCodeInvalidStatusTransition:
				ErrorResponse(w, http.StatusConflict, stdErr.Message)
				return
			}
		}
		ErrorResponse(w, http.StatusInternalServerError, userFacingMessage(err))
		return
	}
	JSONResponse(w, http.StatusOK, app)
}

// ==========================
// Directory endpoints
// ==========================

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"featured": catalog.FeaturedServices,
		"taxonomy": catalog.Taxonomy,
		"contacts": catalog.Contacts,
	})
}

func (s *Server) handleSearchServices(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		ErrorResponse(w, http.StatusBadRequest, "Missing query parameter q")
		return
	}
	JSONResponse(w, http.StatusOK, s.searcher.Search(r.Context(), query))
}

// ==========================
// Health
// ==========================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSONResponse(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// userFacingMessage maps internal errors to the single message each call
// site exposes.
func userFacingMessage(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return stdErr.Message
	}
	return "Internal server error"
}
