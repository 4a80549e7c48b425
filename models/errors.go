package models

import (
	"errors"
	"fmt"
)

// Rejection taxonomy for pick submission and week resolution. All of these
// are synchronous, non-retryable outcomes of a single validation pass;
// storage failures are wrapped with %w and surfaced as-is.
var (
	// ErrWeekClosed rejects picks against a week whose games are all final
	ErrWeekClosed = errors.New("week is closed for picking")
	// ErrWeekOpen rejects resolution of a week that still has open games
	ErrWeekOpen = errors.New("week still has unfinished games")
	// ErrMatchNotFound rejects picks against an unknown or wrong-week match
	ErrMatchNotFound = errors.New("match not found in week")
	// ErrInvalidTeamForMatch rejects a team that is not one of the match's two sides
	ErrInvalidTeamForMatch = errors.New("team is not playing in this match")
	// ErrTeamIneligible rejects a team ruled out by the usage ledger
	ErrTeamIneligible = errors.New("team is not eligible")
	// ErrAlreadyResolved reports an idempotent no-op re-resolution
	ErrAlreadyResolved = errors.New("week already resolved for user")
	// ErrUserNotFound reports an unknown user ID
	ErrUserNotFound = errors.New("user not found")
)

// IneligibilityReason distinguishes why a team is out of the eligible set.
// Both reasons surface as ErrTeamIneligible; the detail is preserved for
// user-facing messaging.
type IneligibilityReason string

const (
	// AlreadyEliminated means the team has a loser ledger entry
	AlreadyEliminated IneligibilityReason = "already_eliminated"
	// UsageCapReached means the team has two winner ledger entries
	UsageCapReached IneligibilityReason = "usage_cap_reached"
)

// IneligibleError carries the ineligibility detail for a rejected team.
// It unwraps to ErrTeamIneligible so callers can match the outer kind
// with errors.Is.
type IneligibleError struct {
	TeamID int
	Reason IneligibilityReason
}

func (e *IneligibleError) Error() string {
	switch e.Reason {
	case AlreadyEliminated:
		return fmt.Sprintf("team %d is permanently eliminated after a loss", e.TeamID)
	case UsageCapReached:
		return fmt.Sprintf("team %d has reached the two-win usage cap", e.TeamID)
	}
	return fmt.Sprintf("team %d is not eligible", e.TeamID)
}

func (e *IneligibleError) Unwrap() error {
	return ErrTeamIneligible
}
