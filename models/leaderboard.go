package models

// LeaderboardEntry is one row of the pool standings
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	Points       int    `json:"points"`
	CorrectPicks int    `json:"correct_picks"`
	TotalPicks   int    `json:"total_picks"`
}

// Dashboard bundles a single user's pool overview
type Dashboard struct {
	Username     string               `json:"username"`
	CurrentWeek  int                  `json:"current_week"`
	Points       int                  `json:"points"`
	TotalPicks   int                  `json:"total_picks"`
	CorrectPicks int                  `json:"correct_picks"`
	RecentPicks  []HistoricalPick     `json:"recent_picks"`
	TeamUsage    map[int]UsageSummary `json:"team_usage"`
	OpenPick     *Pick                `json:"open_pick,omitempty"`
}
