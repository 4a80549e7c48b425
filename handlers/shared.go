package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/models"
)

// errorResponse is the JSON body for rejected requests
type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Code: code, Message: message})
}

// respondRejection maps engine rejections onto HTTP statuses and stable
// reason codes. Anything outside the taxonomy is a storage failure.
func respondRejection(w http.ResponseWriter, err error) {
	var ineligible *models.IneligibleError

	switch {
	case errors.Is(err, models.ErrWeekClosed):
		respondError(w, http.StatusConflict, "week_closed", err.Error())
	case errors.Is(err, models.ErrMatchNotFound):
		respondError(w, http.StatusNotFound, "match_not_found", err.Error())
	case errors.Is(err, models.ErrInvalidTeamForMatch):
		respondError(w, http.StatusUnprocessableEntity, "invalid_team_for_match", err.Error())
	case errors.As(err, &ineligible):
		respondError(w, http.StatusUnprocessableEntity, string(ineligible.Reason), ineligible.Error())
	case errors.Is(err, models.ErrWeekOpen):
		respondError(w, http.StatusConflict, "week_open", err.Error())
	case errors.Is(err, models.ErrAlreadyResolved):
		respondError(w, http.StatusConflict, "already_resolved", err.Error())
	default:
		logging.Errorf("Storage failure: %v", err)
		respondError(w, http.StatusInternalServerError, "storage_unavailable", "storage unavailable")
	}
}
