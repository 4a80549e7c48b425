package models

import (
	"time"
)

// Match represents one NFL game in one week. Rows are produced and refreshed
// by the ESPN feed; the survivor engine only reads week, teams, scores and
// the completion flag.
type Match struct {
	ID           int       `json:"id" bson:"_id"`
	Week         int       `json:"week" bson:"week"`
	HomeTeamID   int       `json:"home_team_id" bson:"home_team_id"`
	AwayTeamID   int       `json:"away_team_id" bson:"away_team_id"`
	StartTime    time.Time `json:"start_time" bson:"start_time"`
	Completed    bool      `json:"is_completed" bson:"is_completed"`
	HomeScore    int       `json:"home_score" bson:"home_score"`
	AwayScore    int       `json:"away_score" bson:"away_score"`
	WinnerTeamID int       `json:"winner_team_id" bson:"winner_team_id"`
	LastSync     time.Time `json:"last_sync" bson:"last_sync"`
}

// IsCompleted returns true if the game has gone final
func (m *Match) IsCompleted() bool {
	return m.Completed
}

// HasTeam returns true if the given team is one of the two sides of this match
func (m *Match) HasTeam(teamID int) bool {
	return teamID == m.HomeTeamID || teamID == m.AwayTeamID
}

// Winner returns the winning team ID, or 0 if the game is not completed
// or ended in a tie.
func (m *Match) Winner() int {
	if !m.Completed {
		return 0
	}
	if m.HomeScore > m.AwayScore {
		return m.HomeTeamID
	}
	if m.AwayScore > m.HomeScore {
		return m.AwayTeamID
	}
	return 0 // tie
}

// IsTie returns true if the game is completed with equal final scores
func (m *Match) IsTie() bool {
	return m.Completed && m.HomeScore == m.AwayScore
}

// ViennaTime returns the kickoff time converted to Vienna local time.
// The whole pool lives in Vienna, so schedule display uses that zone.
func (m *Match) ViennaTime() time.Time {
	loc, err := time.LoadLocation("Europe/Vienna")
	if err != nil {
		// CET fallback if tzdata is unavailable
		return m.StartTime.Add(1 * time.Hour)
	}
	return m.StartTime.In(loc)
}

// FormatStartTime returns the kickoff formatted for Vienna display
func (m *Match) FormatStartTime() string {
	return m.ViennaTime().Format("Mon, 02.01., 15:04")
}
