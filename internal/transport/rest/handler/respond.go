package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"audiosurvey/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrSessionNotFound), errors.Is(err, model.ErrUnknownQuestion):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidAnswer):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrIncomplete), errors.Is(err, model.ErrAlreadySubmitted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
