package handler

import (
	"io"
	"net/http"

	"audiosurvey/internal/service"
	"audiosurvey/internal/survey"

	"github.com/rs/zerolog"
)

// PageRenderer renders the full survey document
type PageRenderer interface {
	RenderPage(w io.Writer, snap survey.Snapshot, token string) error
}

// PageHandler serves the survey page. Every load opens a new session.
type PageHandler struct {
	surveySvc *service.SurveyService
	renderer  PageRenderer
	log       zerolog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(surveySvc *service.SurveyService, renderer PageRenderer, log zerolog.Logger) *PageHandler {
	return &PageHandler{surveySvc: surveySvc, renderer: renderer, log: log}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	open, err := h.surveySvc.Open(r.Context())
	if err != nil {
		http.Error(w, "could not start survey", http.StatusInternalServerError)
		return
	}
	snap, err := h.surveySvc.Snapshot(r.Context(), open.SessionID)
	if err != nil {
		http.Error(w, "could not start survey", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.RenderPage(w, snap, open.Token); err != nil {
		h.log.Error().Err(err).Str("sessionId", open.SessionID).Msg("render page")
	}
}
