package services

import (
	"context"
	"fmt"

	"nfl-survivor-go/database"
	"nfl-survivor-go/logging"
)

// SyncService copies the ESPN feed into local storage: franchises once at
// startup, the season schedule on demand, and results for weeks that still
// have unfinished games on every background tick.
type SyncService struct {
	espn      *ESPNService
	teamRepo  *database.MongoTeamRepository
	matchRepo *database.MongoMatchRepository
	season    int
	logger    *logging.Logger
}

// NewSyncService creates a feed sync service for the given season
func NewSyncService(espn *ESPNService, teamRepo *database.MongoTeamRepository, matchRepo *database.MongoMatchRepository, season int) *SyncService {
	return &SyncService{
		espn:      espn,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		season:    season,
		logger:    logging.WithPrefix("SyncService"),
	}
}

// SyncTeams refreshes the franchise table from the feed
func (s *SyncService) SyncTeams(ctx context.Context) error {
	teams, err := s.espn.GetTeams(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch teams: %w", err)
	}
	if err := s.teamRepo.UpsertMany(ctx, teams); err != nil {
		return err
	}
	s.logger.Infof("Synced %d teams", len(teams))
	return nil
}

// SyncSchedule loads the full season schedule from the feed
func (s *SyncService) SyncSchedule(ctx context.Context) error {
	matches, err := s.espn.GetSeasonSchedule(ctx, s.season)
	if err != nil {
		return fmt.Errorf("failed to fetch season schedule: %w", err)
	}
	if err := s.matchRepo.UpsertMany(ctx, matches); err != nil {
		return err
	}
	s.logger.Infof("Synced %d matches for season %d", len(matches), s.season)
	return nil
}

// RefreshResults re-fetches every week that still has unfinished games and
// returns the weeks that went fully final during this pass. Those weeks
// are ready for resolution.
func (s *SyncService) RefreshResults(ctx context.Context) ([]int, error) {
	weeks, err := s.matchRepo.GetIncompleteWeeks(ctx)
	if err != nil {
		return nil, err
	}

	var completed []int
	for _, week := range weeks {
		matches, err := s.espn.GetWeekScoreboard(ctx, s.season, week)
		if err != nil {
			s.logger.Errorf("Failed to refresh week %d: %v", week, err)
			continue
		}
		if len(matches) == 0 {
			continue
		}
		if err := s.matchRepo.UpsertMany(ctx, matches); err != nil {
			s.logger.Errorf("Failed to store week %d: %v", week, err)
			continue
		}

		allFinal := true
		for _, match := range matches {
			if !match.IsCompleted() {
				allFinal = false
				break
			}
		}
		if allFinal {
			s.logger.Infof("Week %d went final", week)
			completed = append(completed, week)
		}
	}
	return completed, nil
}
