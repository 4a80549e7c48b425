package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pick is a user's still-open selection for the current week: one team to
// survive. There is at most one Pick per (user, week); submitting again for
// the same week replaces the previous selection in place. Picks are mutable
// until the week closes, at which point week resolution converts them into
// HistoricalPick + TeamUsage records and removes them.
type Pick struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    int                `bson:"user_id" json:"user_id"`
	MatchID   int                `bson:"match_id" json:"match_id"`
	TeamID    int                `bson:"team_id" json:"team_id"`
	Week      int                `bson:"week" json:"week"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewPick creates an open pick for the given selection
func NewPick(userID, week, matchID, teamID int) *Pick {
	now := time.Now().UTC()
	return &Pick{
		UserID:    userID,
		MatchID:   matchID,
		TeamID:    teamID,
		Week:      week,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
