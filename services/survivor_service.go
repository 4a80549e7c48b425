package services

import (
	"context"
	"fmt"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/models"
)

// MatchRepository provides read access to the week schedule
type MatchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	GetByWeek(ctx context.Context, week int) ([]*models.Match, error)
	GetIncompleteWeeks(ctx context.Context) ([]int, error)
}

// PickRepository stores the open (current-week) picks
type PickRepository interface {
	GetByUserAndWeek(ctx context.Context, userID, week int) (*models.Pick, error)
	GetByWeek(ctx context.Context, week int) ([]*models.Pick, error)
	Upsert(ctx context.Context, pick *models.Pick) error
	DeleteByUserAndWeek(ctx context.Context, userID, week int) error
}

// TeamUsageRepository stores the append-only win/loss ledger
type TeamUsageRepository interface {
	Create(ctx context.Context, usage *models.TeamUsage) error
	GetByUser(ctx context.Context, userID int) ([]*models.TeamUsage, error)
	GetByUserAndTeam(ctx context.Context, userID, teamID int) ([]*models.TeamUsage, error)
}

// HistoricalPickRepository stores resolved past-week outcomes
type HistoricalPickRepository interface {
	Create(ctx context.Context, pick *models.HistoricalPick) error
	GetByUserAndWeek(ctx context.Context, userID, week int) (*models.HistoricalPick, error)
	GetByUser(ctx context.Context, userID int) ([]*models.HistoricalPick, error)
	GetAll(ctx context.Context) ([]*models.HistoricalPick, error)
}

// TransactionRunner executes a function inside one storage transaction
type TransactionRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SurvivorService is the eligibility and pick-validation engine. Given a
// user's accumulated team-usage ledger it computes which teams the user may
// still pick in a week, and gates pick submission against that set.
type SurvivorService struct {
	matchRepo MatchRepository
	pickRepo  PickRepository
	usageRepo TeamUsageRepository
	tx        TransactionRunner
	logger    *logging.Logger
}

// NewSurvivorService creates the survivor engine
func NewSurvivorService(matchRepo MatchRepository, pickRepo PickRepository, usageRepo TeamUsageRepository, tx TransactionRunner) *SurvivorService {
	return &SurvivorService{
		matchRepo: matchRepo,
		pickRepo:  pickRepo,
		usageRepo: usageRepo,
		tx:        tx,
		logger:    logging.WithPrefix("SurvivorService"),
	}
}

// weekMatches loads the week's schedule and reports whether the week is
// still open for picking. A week with no matches, or with every match
// completed, is closed.
func (s *SurvivorService) weekMatches(ctx context.Context, week int) ([]*models.Match, bool, error) {
	matches, err := s.matchRepo.GetByWeek(ctx, week)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load week %d: %w", week, err)
	}

	open := false
	for _, match := range matches {
		if !match.IsCompleted() {
			open = true
			break
		}
	}
	return matches, open, nil
}

// EligibleTeams returns the set of teams the user may still pick in the
// given open week: every team playing that week, minus teams with a loser
// ledger entry (permanently eliminated) or two winner entries (usage cap).
// Pure read; the returned slice carries no ordering guarantee.
func (s *SurvivorService) EligibleTeams(ctx context.Context, userID, week int) ([]int, error) {
	matches, open, err := s.weekMatches(ctx, week)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, models.ErrWeekClosed
	}

	entries, err := s.usageRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage ledger for user %d: %w", userID, err)
	}
	summary := models.SummarizeUsage(entries)

	seen := make(map[int]bool)
	var eligible []int
	for _, match := range matches {
		for _, teamID := range []int{match.HomeTeamID, match.AwayTeamID} {
			if seen[teamID] {
				continue
			}
			seen[teamID] = true
			if summary[teamID].Eligible() {
				eligible = append(eligible, teamID)
			}
		}
	}
	return eligible, nil
}

// checkTeamEligible validates one team against the user's ledger and
// returns an IneligibleError carrying the distinguishing detail.
func (s *SurvivorService) checkTeamEligible(ctx context.Context, userID, teamID int) error {
	entries, err := s.usageRepo.GetByUserAndTeam(ctx, userID, teamID)
	if err != nil {
		return fmt.Errorf("failed to load usage for user %d team %d: %w", userID, teamID, err)
	}

	summary := models.SummarizeUsage(entries)[teamID]
	if summary.Losses >= 1 {
		return &models.IneligibleError{TeamID: teamID, Reason: models.AlreadyEliminated}
	}
	if summary.Wins >= models.MaxWinsPerTeam {
		return &models.IneligibleError{TeamID: teamID, Reason: models.UsageCapReached}
	}
	return nil
}

// SubmitPick validates and records a pick. Preconditions are checked in a
// fixed order so the first failing check determines the rejection:
// week open, match exists in week, team plays in match, team eligible.
// On success the (user, week) pick is created or replaced in place; no
// usage ledger entry is written until the week resolves.
func (s *SurvivorService) SubmitPick(ctx context.Context, userID, week, matchID, teamID int) (*models.Pick, error) {
	_, open, err := s.weekMatches(ctx, week)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, models.ErrWeekClosed
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if match == nil || match.Week != week {
		return nil, models.ErrMatchNotFound
	}

	if !match.HasTeam(teamID) {
		return nil, models.ErrInvalidTeamForMatch
	}

	if err := s.checkTeamEligible(ctx, userID, teamID); err != nil {
		return nil, err
	}

	pick := models.NewPick(userID, week, matchID, teamID)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.pickRepo.Upsert(ctx, pick)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}

	s.logger.Infof("User %d picked team %d in match %d (week %d)", userID, teamID, matchID, week)
	return pick, nil
}

// OpenPick returns the user's current pick for a week, or nil
func (s *SurvivorService) OpenPick(ctx context.Context, userID, week int) (*models.Pick, error) {
	return s.pickRepo.GetByUserAndWeek(ctx, userID, week)
}

// CurrentWeek returns the lowest week that still has unfinished games, or
// 0 when the whole schedule has gone final.
func (s *SurvivorService) CurrentWeek(ctx context.Context) (int, error) {
	weeks, err := s.matchRepo.GetIncompleteWeeks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to determine current week: %w", err)
	}

	current := 0
	for _, week := range weeks {
		if current == 0 || week < current {
			current = week
		}
	}
	return current, nil
}
