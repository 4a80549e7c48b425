package handlers

import (
	"net/http"

	"nfl-survivor-go/middleware"
	"nfl-survivor-go/services"
)

// LeaderboardHandler serves standings, dashboards and the shared pick history
type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
	teamService *services.TeamService
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboard *services.LeaderboardService, teamService *services.TeamService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: leaderboard,
		teamService: teamService,
	}
}

// GetLeaderboard handles GET /api/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.GetLeaderboard(r.Context())
	if err != nil {
		respondRejection(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": entries,
	})
}

// GetDashboard handles GET /api/dashboard for the authenticated user
func (h *LeaderboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "not logged in")
		return
	}

	dashboard, err := h.leaderboard.GetDashboard(r.Context(), user)
	if err != nil {
		respondRejection(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

// resolvedPickView is one row of the shared pick history
type resolvedPickView struct {
	Week     int    `json:"week"`
	UserID   int    `json:"user_id"`
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
	Result   string `json:"result"`
	Points   int    `json:"points"`
}

// GetAllPicks handles GET /api/picks/all: everyone's resolved picks,
// newest week first.
func (h *LeaderboardHandler) GetAllPicks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	picks, err := h.leaderboard.GetAllResolvedPicks(ctx)
	if err != nil {
		respondRejection(w, err)
		return
	}

	teams, err := h.teamService.TeamsByID(ctx)
	if err != nil {
		respondRejection(w, err)
		return
	}

	views := make([]resolvedPickView, 0, len(picks))
	for _, pick := range picks {
		view := resolvedPickView{
			Week:   pick.Week,
			UserID: pick.UserID,
			TeamID: pick.TeamID,
			Result: string(pick.Result),
			Points: pick.Points,
		}
		if team := teams[pick.TeamID]; team != nil {
			view.TeamName = team.Name
		}
		views = append(views, view)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"picks": views,
	})
}
