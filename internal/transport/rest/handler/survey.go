package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"audiosurvey/internal/catalog"
	"audiosurvey/internal/model"
	"audiosurvey/internal/service"
	"audiosurvey/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// SurveyHandler handles the JSON survey endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// AnswerRequest is the request body for recording an answer
type AnswerRequest struct {
	Value *model.Answer `json:"value" swaggertype:"string"`
}

// Questions handles GET /v1/questions
// @Summary List the survey questions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /questions [get]
func (h *SurveyHandler) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": catalog.Questions()})
}

// Create handles POST /v1/sessions
// @Summary Open a survey session
// @Produce json
// @Success 201 {object} model.SessionCreateResponse
// @Router /sessions [post]
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	resp, err := h.surveySvc.Open(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/sessions/{id}
// @Summary Current session state
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} survey.Snapshot
// @Router /sessions/{id} [get]
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.surveySvc.Snapshot(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Answer handles PUT /v1/sessions/{id}/answers/{questionId}
// @Summary Record or replace an answer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param questionId path int true "Question ID"
// @Param body body AnswerRequest true "Text for INTELLIGIBILITY, 1-5 otherwise"
// @Success 200 {object} survey.Snapshot
// @Router /sessions/{id}/answers/{questionId} [put]
func (h *SurveyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	questionID, err := questionParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	snap, err := h.surveySvc.Answer(r.Context(), middleware.GetSessionID(r.Context()), questionID, *req.Value)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Toggle handles POST /v1/sessions/{id}/playback/{questionId}
// @Summary Play a question's clip, or stop it if it is playing
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param questionId path int true "Question ID"
// @Success 200 {object} survey.Snapshot
// @Router /sessions/{id}/playback/{questionId} [post]
func (h *SurveyHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	questionID, err := questionParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.surveySvc.TogglePlayback(r.Context(), middleware.GetSessionID(r.Context()), questionID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Ended handles POST /v1/sessions/{id}/playback/ended
// @Summary Report end of media
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} survey.Snapshot
// @Router /sessions/{id}/playback/ended [post]
func (h *SurveyHandler) Ended(w http.ResponseWriter, r *http.Request) {
	snap, err := h.surveySvc.PlaybackEnded(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Submit handles POST /v1/sessions/{id}/submit
// @Summary Submit the survey
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} survey.Snapshot
// @Failure 409 {object} map[string]interface{}
// @Router /sessions/{id}/submit [post]
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	snap, err := h.surveySvc.Submit(r.Context(), sessionID)
	if errors.Is(err, model.ErrIncomplete) {
		current, _ := h.surveySvc.Snapshot(r.Context(), sessionID)
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":    err.Error(),
			"hint":     fmt.Sprintf("Please answer all %d questions before submitting.", current.Total),
			"answered": current.Answered,
			"total":    current.Total,
		})
		return
	}
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Restart handles POST /v1/sessions/{id}/restart
// @Summary Clear the session and start over
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} survey.Snapshot
// @Router /sessions/{id}/restart [post]
func (h *SurveyHandler) Restart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.surveySvc.Restart(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func questionParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["questionId"])
	if err != nil {
		return 0, fmt.Errorf("questionId must be an integer")
	}
	return id, nil
}
