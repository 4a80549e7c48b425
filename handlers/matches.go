package handlers

import (
	"net/http"
	"strconv"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/models"
	"nfl-survivor-go/services"
)

// MatchesHandler serves the week schedule
type MatchesHandler struct {
	matchRepo   services.MatchRepository
	teamService *services.TeamService
	survivor    *services.SurvivorService
	logger      *logging.Logger
}

// NewMatchesHandler creates a new matches handler
func NewMatchesHandler(matchRepo services.MatchRepository, teamService *services.TeamService, survivor *services.SurvivorService) *MatchesHandler {
	return &MatchesHandler{
		matchRepo:   matchRepo,
		teamService: teamService,
		survivor:    survivor,
		logger:      logging.WithPrefix("MatchesHandler"),
	}
}

// matchView is a match enriched with team info for display
type matchView struct {
	ID               int          `json:"id"`
	Week             int          `json:"week"`
	HomeTeam         *models.Team `json:"home_team"`
	AwayTeam         *models.Team `json:"away_team"`
	StartTime        string       `json:"start_time"`
	StartTimeDisplay string       `json:"start_time_display"`
	IsCompleted      bool         `json:"is_completed"`
	HomeScore        int          `json:"home_score"`
	AwayScore        int          `json:"away_score"`
	WinnerTeamID     int          `json:"winner_team_id"`
}

// GetMatches handles GET /api/matches?week=N. Without a week parameter it
// serves the current (lowest unfinished) week.
func (h *MatchesHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

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

	matches, err := h.matchRepo.GetByWeek(ctx, week)
	if err != nil {
		respondRejection(w, err)
		return
	}

	teams, err := h.teamService.TeamsByID(ctx)
	if err != nil {
		respondRejection(w, err)
		return
	}

	views := make([]matchView, 0, len(matches))
	for _, match := range matches {
		views = append(views, matchView{
			ID:               match.ID,
			Week:             match.Week,
			HomeTeam:         teams[match.HomeTeamID],
			AwayTeam:         teams[match.AwayTeamID],
			StartTime:        match.StartTime.Format("2006-01-02T15:04:05Z07:00"),
			StartTimeDisplay: match.FormatStartTime(),
			IsCompleted:      match.IsCompleted(),
			HomeScore:        match.HomeScore,
			AwayScore:        match.AwayScore,
			WinnerTeamID:     match.WinnerTeamID,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":    week,
		"matches": views,
	})
}
