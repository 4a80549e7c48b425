package services

import (
	"context"
	"fmt"
	"sync"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/models"
)

// UserResolutionError records one user's failure during a resolution pass.
// A single user failing must not block the rest of the week.
type UserResolutionError struct {
	UserID int    `json:"user_id"`
	Error  string `json:"error"`
}

// WeekResolution summarizes one resolution pass over a week
type WeekResolution struct {
	Week     int                   `json:"week"`
	Resolved int                   `json:"resolved"`
	Skipped  int                   `json:"skipped"`
	Failures []UserResolutionError `json:"failures,omitempty"`
}

// WeekResolver converts open picks of a fully-completed week into
// historical picks plus team-usage ledger entries. Resolution is the only
// writer of HistoricalPick and TeamUsage records.
type WeekResolver struct {
	matchRepo      MatchRepository
	pickRepo       PickRepository
	historicalRepo HistoricalPickRepository
	usageRepo      TeamUsageRepository
	tx             TransactionRunner
	logger         *logging.Logger

	// serializes resolution passes within this process
	mu sync.Mutex
}

// NewWeekResolver creates a week resolver
func NewWeekResolver(matchRepo MatchRepository, pickRepo PickRepository, historicalRepo HistoricalPickRepository, usageRepo TeamUsageRepository, tx TransactionRunner) *WeekResolver {
	return &WeekResolver{
		matchRepo:      matchRepo,
		pickRepo:       pickRepo,
		historicalRepo: historicalRepo,
		usageRepo:      usageRepo,
		tx:             tx,
		logger:         logging.WithPrefix("WeekResolver"),
	}
}

// ResolveWeek resolves every user's open pick for a completed week. For
// each open pick it writes one HistoricalPick, appends at most one
// TeamUsage entry (none on a push) and removes the open pick, all inside a
// single transaction per user. Users whose outcome is already recorded are
// skipped, which makes re-running a pass a no-op. Per-user failures are
// collected into the returned summary instead of aborting the batch.
func (r *WeekResolver) ResolveWeek(ctx context.Context, week int) (*WeekResolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches, err := r.matchRepo.GetByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load week %d: %w", week, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("week %d has no matches: %w", week, models.ErrMatchNotFound)
	}

	matchesByID := make(map[int]*models.Match, len(matches))
	for _, match := range matches {
		if !match.IsCompleted() {
			return nil, models.ErrWeekOpen
		}
		matchesByID[match.ID] = match
	}

	picks, err := r.pickRepo.GetByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load open picks for week %d: %w", week, err)
	}

	result := &WeekResolution{Week: week}
	for _, pick := range picks {
		if err := r.resolveUserPick(ctx, pick, matchesByID); err != nil {
			if err == models.ErrAlreadyResolved {
				result.Skipped++
				continue
			}
			r.logger.Errorf("Week %d: failed to resolve user %d: %v", week, pick.UserID, err)
			result.Failures = append(result.Failures, UserResolutionError{
				UserID: pick.UserID,
				Error:  err.Error(),
			})
			continue
		}
		result.Resolved++
	}

	r.logger.Infof("Week %d resolution: %d resolved, %d skipped, %d failed",
		week, result.Resolved, result.Skipped, len(result.Failures))
	return result, nil
}

// resolveUserPick resolves a single user's open pick atomically
func (r *WeekResolver) resolveUserPick(ctx context.Context, pick *models.Pick, matchesByID map[int]*models.Match) error {
	existing, err := r.historicalRepo.GetByUserAndWeek(ctx, pick.UserID, pick.Week)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.ErrAlreadyResolved
	}

	match, ok := matchesByID[pick.MatchID]
	if !ok {
		return fmt.Errorf("pick references match %d outside week %d: %w",
			pick.MatchID, pick.Week, models.ErrMatchNotFound)
	}

	historical := models.ResolvePick(pick, match)

	return r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := r.historicalRepo.Create(ctx, historical); err != nil {
			return err
		}

		if usageType, ok := models.UsageFromOutcome(historical.Result); ok {
			usage := &models.TeamUsage{
				UserID:    pick.UserID,
				TeamID:    pick.TeamID,
				UsageType: usageType,
				Week:      pick.Week,
				MatchID:   pick.MatchID,
			}
			if err := r.usageRepo.Create(ctx, usage); err != nil {
				return err
			}
		}

		return r.pickRepo.DeleteByUserAndWeek(ctx, pick.UserID, pick.Week)
	})
}

// ResolveCompletedWeeks resolves every week that has gone fully final but
// still carries open picks. The background updater calls this after each
// feed sync; operators can also trigger it directly.
func (r *WeekResolver) ResolveCompletedWeeks(ctx context.Context, weeks []int) []*WeekResolution {
	var results []*WeekResolution
	for _, week := range weeks {
		result, err := r.ResolveWeek(ctx, week)
		if err != nil {
			if err == models.ErrWeekOpen {
				continue
			}
			r.logger.Errorf("Failed to resolve week %d: %v", week, err)
			continue
		}
		results = append(results, result)
	}
	return results
}
