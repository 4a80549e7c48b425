package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PickOutcome is the resolved result of a pick
type PickOutcome string

const (
	PickOutcomeWon  PickOutcome = "won"
	PickOutcomeLost PickOutcome = "lost"
	// PickOutcomePush covers a tied final score: the pick counts neither as
	// a win nor a loss and records no team usage.
	PickOutcomePush PickOutcome = "push"
)

// HistoricalPick is the immutable record of a past week's resolved outcome.
// Exactly one exists per (user, week) once that week resolves; it is never
// updated afterwards.
type HistoricalPick struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     int                `bson:"user_id" json:"user_id"`
	Week       int                `bson:"week" json:"week"`
	MatchID    int                `bson:"match_id" json:"match_id"`
	TeamID     int                `bson:"team_id" json:"team_id"`
	Result     PickOutcome        `bson:"result" json:"result"`
	Points     int                `bson:"points" json:"points"`
	ResolvedAt time.Time          `bson:"resolved_at" json:"resolved_at"`
}

// IsWin returns true if the pick was correct
func (h *HistoricalPick) IsWin() bool {
	return h.Result == PickOutcomeWon
}

// ResolvePick converts an open pick into its historical record given the
// completed match. Correct picks earn one point, everything else zero.
func ResolvePick(pick *Pick, match *Match) *HistoricalPick {
	hp := &HistoricalPick{
		UserID:     pick.UserID,
		Week:       pick.Week,
		MatchID:    pick.MatchID,
		TeamID:     pick.TeamID,
		ResolvedAt: time.Now().UTC(),
	}

	switch {
	case match.IsTie():
		hp.Result = PickOutcomePush
	case match.Winner() == pick.TeamID:
		hp.Result = PickOutcomeWon
		hp.Points = 1
	default:
		hp.Result = PickOutcomeLost
	}
	return hp
}
