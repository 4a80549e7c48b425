package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/middleware"
	"nfl-survivor-go/services"
)

// PicksHandler exposes the survivor engine over HTTP
type PicksHandler struct {
	survivor *services.SurvivorService
	logger   *logging.Logger
}

// NewPicksHandler creates a new picks handler
func NewPicksHandler(survivor *services.SurvivorService) *PicksHandler {
	return &PicksHandler{
		survivor: survivor,
		logger:   logging.WithPrefix("PicksHandler"),
	}
}

// submitPickRequest is the POST /api/picks body
type submitPickRequest struct {
	Week    int `json:"week"`
	MatchID int `json:"match_id"`
	TeamID  int `json:"team_id"`
}

// GetEligibleTeams handles GET /api/picks/eligible?week=N
func (h *PicksHandler) GetEligibleTeams(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUserFromContext(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "not logged in")
		return
	}

	week := 0
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "bad_request", "week must be a positive integer")
			return
		}
		week = parsed
	}
	if week == 0 {
		current, err := h.survivor.CurrentWeek(ctx)
		if err != nil {
			respondRejection(w, err)
			return
		}
		week = current
	}

	eligible, err := h.survivor.EligibleTeams(ctx, user.ID, week)
	if err != nil {
		respondRejection(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":           week,
		"eligible_teams": eligible,
	})
}

// SubmitPick handles POST /api/picks. Submitting again for the same week
// replaces the previous selection.
func (h *PicksHandler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUserFromContext(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "not logged in")
		return
	}

	var req submitPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.MatchID == 0 || req.TeamID == 0 {
		respondError(w, http.StatusBadRequest, "bad_request", "match_id and team_id are required")
		return
	}

	week := req.Week
	if week == 0 {
		current, err := h.survivor.CurrentWeek(ctx)
		if err != nil {
			respondRejection(w, err)
			return
		}
		week = current
	}

	pick, err := h.survivor.SubmitPick(ctx, user.ID, week, req.MatchID, req.TeamID)
	if err != nil {
		respondRejection(w, err)
		return
	}

	h.logger.Infof("User %s picked team %d for week %d", user.Username, req.TeamID, week)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"pick":    pick,
	})
}
