package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScoreboard = `{
	"events": [
		{
			"id": "401671789",
			"date": "2025-09-07T17:00Z",
			"week": {"number": 1},
			"season": {"year": 2025, "type": 2},
			"status": {"type": {"name": "STATUS_FINAL", "state": "post", "completed": true}},
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "27", "team": {"id": "12", "abbreviation": "KC", "displayName": "Kansas City Chiefs"}},
					{"homeAway": "away", "score": "20", "team": {"id": "33", "abbreviation": "BAL", "displayName": "Baltimore Ravens"}}
				]
			}]
		},
		{
			"id": "401671790",
			"date": "2025-09-07T20:25Z",
			"week": {"number": 1},
			"season": {"year": 2025, "type": 2},
			"status": {"type": {"name": "STATUS_SCHEDULED", "state": "pre", "completed": false}},
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "", "team": {"id": "25", "abbreviation": "SF", "displayName": "San Francisco 49ers"}},
					{"homeAway": "away", "score": "", "team": {"id": "22", "abbreviation": "ARI", "displayName": "Arizona Cardinals"}}
				]
			}]
		},
		{
			"id": "401671000",
			"date": "2025-08-10T00:00Z",
			"week": {"number": 1},
			"season": {"year": 2025, "type": 1},
			"status": {"type": {"name": "STATUS_FINAL", "state": "post", "completed": true}},
			"competitions": [{
				"competitors": [
					{"homeAway": "home", "score": "10", "team": {"id": "1", "abbreviation": "ATL", "displayName": "Atlanta Falcons"}},
					{"homeAway": "away", "score": "13", "team": {"id": "2", "abbreviation": "BUF", "displayName": "Buffalo Bills"}}
				]
			}]
		}
	]
}`

const sampleTeams = `{
	"sports": [{
		"leagues": [{
			"teams": [
				{"team": {"id": "12", "abbreviation": "KC", "displayName": "Kansas City Chiefs", "logos": [{"href": "https://a.espncdn.com/i/teamlogos/nfl/500/kc.png"}]}},
				{"team": {"id": "33", "abbreviation": "BAL", "displayName": "Baltimore Ravens", "logos": []}}
			]
		}]
	}]
}`

func newTestESPNService(handler http.HandlerFunc) (*ESPNService, *httptest.Server) {
	server := httptest.NewServer(handler)
	svc := NewESPNService()
	svc.client = server.Client()
	svc.scoreboardURL = server.URL + "/scoreboard"
	svc.teamsURL = server.URL + "/teams"
	return svc, server
}

func TestGetWeekScoreboard(t *testing.T) {
	svc, server := newTestESPNService(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("seasontype"))
		assert.Equal(t, "1", r.URL.Query().Get("week"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleScoreboard))
	})
	defer server.Close()

	matches, err := svc.GetWeekScoreboard(context.Background(), 2025, 1)
	require.NoError(t, err)
	// Preseason event (season type 1) is dropped
	require.Len(t, matches, 2)

	final := matches[0]
	assert.Equal(t, 401671789, final.ID)
	assert.Equal(t, 1, final.Week)
	assert.Equal(t, 12, final.HomeTeamID)
	assert.Equal(t, 33, final.AwayTeamID)
	assert.True(t, final.Completed)
	assert.Equal(t, 27, final.HomeScore)
	assert.Equal(t, 20, final.AwayScore)
	assert.Equal(t, 12, final.WinnerTeamID)
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), final.StartTime)

	scheduled := matches[1]
	assert.False(t, scheduled.Completed)
	assert.Equal(t, 0, scheduled.HomeScore)
	assert.Equal(t, 0, scheduled.WinnerTeamID)
}

func TestGetWeekScoreboardServerError(t *testing.T) {
	svc, server := newTestESPNService(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := svc.GetWeekScoreboard(context.Background(), 2025, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestGetTeams(t *testing.T) {
	svc, server := newTestESPNService(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleTeams))
	})
	defer server.Close()

	teams, err := svc.GetTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, 12, teams[0].ID)
	assert.Equal(t, "Kansas City Chiefs", teams[0].Name)
	assert.Equal(t, "KC", teams[0].Abbreviation)
	assert.Equal(t, "https://a.espncdn.com/i/teamlogos/nfl/500/kc.png", teams[0].LogoURL)
	assert.Equal(t, "", teams[1].LogoURL)
}

func TestNormalizeESPNDate(t *testing.T) {
	assert.Equal(t, "2025-09-07T17:00:00Z", normalizeESPNDate("2025-09-07T17:00Z"))
	assert.Equal(t, "2025-09-07T17:00:00Z", normalizeESPNDate("2025-09-07T17:00:00Z"))
}
