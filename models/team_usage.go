package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UsageType classifies a team usage ledger entry
type UsageType string

const (
	UsageWinner UsageType = "winner"
	UsageLoser  UsageType = "loser"
)

// TeamUsage is one append-only ledger entry recording that a user's pick of
// a team resolved as a win or a loss in some week. Aggregated per
// (user, team), the ledger is the sole input to the eligibility rule:
// one loser entry eliminates the team permanently, two winner entries
// exhaust its lifetime cap.
type TeamUsage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    int                `bson:"user_id" json:"user_id"`
	TeamID    int                `bson:"team_id" json:"team_id"`
	UsageType UsageType          `bson:"usage_type" json:"usage_type"`
	Week      int                `bson:"week" json:"week"`
	MatchID   int                `bson:"match_id" json:"match_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// MaxWinsPerTeam is the lifetime cap on winner usages per (user, team)
const MaxWinsPerTeam = 2

// UsageSummary aggregates a user's ledger entries for a single team
type UsageSummary struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Eligible reports whether a team with this usage may still be picked
func (s UsageSummary) Eligible() bool {
	return s.Losses == 0 && s.Wins < MaxWinsPerTeam
}

// SummarizeUsage folds ledger entries into per-team win/loss counts
func SummarizeUsage(entries []*TeamUsage) map[int]UsageSummary {
	summary := make(map[int]UsageSummary, len(entries))
	for _, entry := range entries {
		s := summary[entry.TeamID]
		switch entry.UsageType {
		case UsageWinner:
			s.Wins++
		case UsageLoser:
			s.Losses++
		}
		summary[entry.TeamID] = s
	}
	return summary
}

// UsageFromOutcome maps a resolved pick outcome to its ledger entry type.
// Pushes record no usage; ok is false in that case.
func UsageFromOutcome(outcome PickOutcome) (UsageType, bool) {
	switch outcome {
	case PickOutcomeWon:
		return UsageWinner, true
	case PickOutcomeLost:
		return UsageLoser, true
	default:
		return "", false
	}
}
