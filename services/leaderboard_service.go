package services

import (
	"context"
	"fmt"
	"sort"

	"nfl-survivor-go/models"
)

// LeaderboardService builds the pool standings and per-user dashboards from
// the resolved pick history.
type LeaderboardService struct {
	userRepo       UserRepository
	historicalRepo HistoricalPickRepository
	usageRepo      TeamUsageRepository
	survivor       *SurvivorService
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(userRepo UserRepository, historicalRepo HistoricalPickRepository, usageRepo TeamUsageRepository, survivor *SurvivorService) *LeaderboardService {
	return &LeaderboardService{
		userRepo:       userRepo,
		historicalRepo: historicalRepo,
		usageRepo:      usageRepo,
		survivor:       survivor,
	}
}

// GetLeaderboard returns all users ranked by points, one point per correct
// pick. Ties share adjacent ranks in username order.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		history, err := s.historicalRepo.GetByUser(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load history for user %d: %w", user.ID, err)
		}

		entry := models.LeaderboardEntry{
			UserID:      user.ID,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			TotalPicks:  len(history),
		}
		for _, pick := range history {
			entry.Points += pick.Points
			if pick.IsWin() {
				entry.CorrectPicks++
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Username < entries[j].Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// GetDashboard assembles one user's pool overview
func (s *LeaderboardService) GetDashboard(ctx context.Context, user *models.User) (*models.Dashboard, error) {
	history, err := s.historicalRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	usage, err := s.usageRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	currentWeek, err := s.survivor.CurrentWeek(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		Username:    user.Username,
		CurrentWeek: currentWeek,
		TotalPicks:  len(history),
		TeamUsage:   models.SummarizeUsage(usage),
	}
	for _, pick := range history {
		dashboard.Points += pick.Points
		if pick.IsWin() {
			dashboard.CorrectPicks++
		}
	}

	// last three resolved picks, most recent week first
	recent := make([]models.HistoricalPick, 0, 3)
	for i := len(history) - 1; i >= 0 && len(recent) < 3; i-- {
		recent = append(recent, *history[i])
	}
	dashboard.RecentPicks = recent

	if currentWeek > 0 {
		openPick, err := s.survivor.OpenPick(ctx, user.ID, currentWeek)
		if err != nil {
			return nil, err
		}
		dashboard.OpenPick = openPick
	}
	return dashboard, nil
}

// GetAllResolvedPicks returns everyone's resolved picks, newest week first
func (s *LeaderboardService) GetAllResolvedPicks(ctx context.Context) ([]*models.HistoricalPick, error) {
	return s.historicalRepo.GetAll(ctx)
}
