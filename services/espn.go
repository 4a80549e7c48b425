package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/models"
)

// ESPNService fetches the NFL schedule, scores and franchise data from the
// public ESPN site API. The engine treats this feed as authoritative and
// never second-guesses it.
type ESPNService struct {
	client        *http.Client
	scoreboardURL string
	teamsURL      string
	logger        *logging.Logger
}

// NewESPNService creates a new ESPN feed client
func NewESPNService() *ESPNService {
	return &ESPNService{
		client:        &http.Client{Timeout: 15 * time.Second},
		scoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard",
		teamsURL:      "https://site.api.espn.com/apis/site/v2/sports/football/nfl/teams",
		logger:        logging.WithPrefix("ESPN"),
	}
}

// ESPN API response structures

type espnScoreboardResponse struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Week         espnWeek          `json:"week"`
	Season       espnSeason        `json:"season"`
	Status       espnStatus        `json:"status"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnSeason struct {
	Year int `json:"year"`
	Type int `json:"type"`
}

type espnWeek struct {
	Number int `json:"number"`
}

type espnStatus struct {
	Type espnStatusType `json:"type"`
}

type espnStatusType struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}

type espnCompetition struct {
	Competitors []espnCompetitor `json:"competitors"`
}

type espnCompetitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     espnTeam `json:"team"`
}

type espnTeam struct {
	ID           string     `json:"id"`
	Abbreviation string     `json:"abbreviation"`
	DisplayName  string     `json:"displayName"`
	Logos        []espnLogo `json:"logos"`
}

type espnLogo struct {
	Href string `json:"href"`
}

type espnTeamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team espnTeam `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// GetSeasonSchedule fetches the full regular-season scoreboard for a year.
// The date range runs from July to the following January to capture Week 18.
func (e *ESPNService) GetSeasonSchedule(ctx context.Context, year int) ([]*models.Match, error) {
	url := fmt.Sprintf("%s?dates=%d0701-%d0131&limit=1000", e.scoreboardURL, year, year+1)
	return e.fetchScoreboard(ctx, url)
}

// GetWeekScoreboard fetches the scoreboard for a single week of a season
func (e *ESPNService) GetWeekScoreboard(ctx context.Context, year, week int) ([]*models.Match, error) {
	url := fmt.Sprintf("%s?dates=%d&seasontype=2&week=%d", e.scoreboardURL, year, week)
	return e.fetchScoreboard(ctx, url)
}

func (e *ESPNService) fetchScoreboard(ctx context.Context, url string) ([]*models.Match, error) {
	e.logger.Debugf("Fetching scoreboard from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scoreboard request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ESPN scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESPN API returned status %d", resp.StatusCode)
	}

	var scoreboard espnScoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&scoreboard); err != nil {
		return nil, fmt.Errorf("failed to decode ESPN response: %w", err)
	}

	matches := e.convertEvents(scoreboard.Events)
	e.logger.Debugf("Received %d events, converted %d matches", len(scoreboard.Events), len(matches))
	return matches, nil
}

// convertEvents converts ESPN events to Match rows, keeping regular-season
// games only (season type 2).
func (e *ESPNService) convertEvents(events []espnEvent) []*models.Match {
	matches := make([]*models.Match, 0, len(events))
	for _, event := range events {
		if event.Season.Type != 2 {
			continue
		}
		match, err := e.convertEvent(event)
		if err != nil {
			e.logger.Warnf("Skipping event %s: %v", event.ID, err)
			continue
		}
		matches = append(matches, match)
	}
	return matches
}

func (e *ESPNService) convertEvent(event espnEvent) (*models.Match, error) {
	if len(event.Competitions) == 0 || len(event.Competitions[0].Competitors) < 2 {
		return nil, fmt.Errorf("event has no competitors")
	}

	id, err := strconv.Atoi(event.ID)
	if err != nil {
		return nil, fmt.Errorf("bad event id %q: %w", event.ID, err)
	}

	var home, away *espnCompetitor
	for i := range event.Competitions[0].Competitors {
		competitor := &event.Competitions[0].Competitors[i]
		switch competitor.HomeAway {
		case "home":
			home = competitor
		case "away":
			away = competitor
		}
	}
	if home == nil || away == nil {
		return nil, fmt.Errorf("event missing home or away side")
	}

	homeTeamID, err := strconv.Atoi(home.Team.ID)
	if err != nil {
		return nil, fmt.Errorf("bad home team id %q: %w", home.Team.ID, err)
	}
	awayTeamID, err := strconv.Atoi(away.Team.ID)
	if err != nil {
		return nil, fmt.Errorf("bad away team id %q: %w", away.Team.ID, err)
	}

	startTime, err := time.Parse(time.RFC3339, normalizeESPNDate(event.Date))
	if err != nil {
		return nil, fmt.Errorf("bad event date %q: %w", event.Date, err)
	}

	match := &models.Match{
		ID:         id,
		Week:       event.Week.Number,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		StartTime:  startTime.UTC(),
		Completed:  event.Status.Type.Completed,
		LastSync:   time.Now().UTC(),
	}

	if match.Completed {
		match.HomeScore, _ = strconv.Atoi(home.Score)
		match.AwayScore, _ = strconv.Atoi(away.Score)
		match.WinnerTeamID = match.Winner()
	}
	return match, nil
}

// normalizeESPNDate widens ESPN's abbreviated timestamps ("2024-09-05T00:20Z")
// into full RFC 3339.
func normalizeESPNDate(date string) string {
	if len(date) == len("2006-01-02T15:04Z") {
		return date[:len(date)-1] + ":00Z"
	}
	return date
}

// GetTeams fetches the 32 franchise records
func (e *ESPNService) GetTeams(ctx context.Context) ([]*models.Team, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.teamsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build teams request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ESPN teams: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESPN teams API returned status %d", resp.StatusCode)
	}

	var teamsResp espnTeamsResponse
	if err := json.NewDecoder(resp.Body).Decode(&teamsResp); err != nil {
		return nil, fmt.Errorf("failed to decode ESPN teams response: %w", err)
	}

	var teams []*models.Team
	for _, sport := range teamsResp.Sports {
		for _, league := range sport.Leagues {
			for _, entry := range league.Teams {
				id, err := strconv.Atoi(entry.Team.ID)
				if err != nil {
					e.logger.Warnf("Skipping team with bad id %q", entry.Team.ID)
					continue
				}
				team := &models.Team{
					ID:           id,
					Name:         entry.Team.DisplayName,
					Abbreviation: entry.Team.Abbreviation,
				}
				if len(entry.Team.Logos) > 0 {
					team.LogoURL = entry.Team.Logos[0].Href
				}
				teams = append(teams, team)
			}
		}
	}

	e.logger.Debugf("Received %d teams", len(teams))
	return teams, nil
}
