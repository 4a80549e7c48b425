package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"nfl-survivor-go/models"
)

// memStore is an in-memory stand-in for the Mongo repositories. It
// implements MatchRepository, PickRepository, TeamUsageRepository,
// HistoricalPickRepository and TransactionRunner.
type memStore struct {
	mu          sync.Mutex
	matches     map[int]*models.Match
	picks       map[string]*models.Pick
	usages      []*models.TeamUsage
	historicals []*models.HistoricalPick
}

func newMemStore() *memStore {
	return &memStore{
		matches: make(map[int]*models.Match),
		picks:   make(map[string]*models.Pick),
	}
}

func pickKey(userID, week int) string {
	return fmt.Sprintf("%d/%d", userID, week)
}

func (s *memStore) addMatch(id, week, homeTeam, awayTeam int) *models.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	match := &models.Match{
		ID:         id,
		Week:       week,
		HomeTeamID: homeTeam,
		AwayTeamID: awayTeam,
		StartTime:  time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC),
	}
	s.matches[id] = match
	return match
}

func (s *memStore) finishMatch(id, homeScore, awayScore int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match := s.matches[id]
	match.Completed = true
	match.HomeScore = homeScore
	match.AwayScore = awayScore
	match.WinnerTeamID = match.Winner()
}

func (s *memStore) addUsage(userID, teamID int, usageType models.UsageType, week int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usages = append(s.usages, &models.TeamUsage{
		UserID:    userID,
		TeamID:    teamID,
		UsageType: usageType,
		Week:      week,
	})
}

// MatchRepository

func (s *memStore) GetByID(_ context.Context, id int) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches[id], nil
}

func (s *memStore) GetByWeek(_ context.Context, week int) ([]*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []*models.Match
	for _, match := range s.matches {
		if match.Week == week {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (s *memStore) GetIncompleteWeeks(_ context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]bool)
	var weeks []int
	for _, match := range s.matches {
		if !match.Completed && !seen[match.Week] {
			seen[match.Week] = true
			weeks = append(weeks, match.Week)
		}
	}
	sort.Ints(weeks)
	return weeks, nil
}

// PickRepository

func (s *memStore) GetByUserAndWeek(_ context.Context, userID, week int) (*models.Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.picks[pickKey(userID, week)], nil
}

func (s *memStore) PicksByWeek(_ context.Context, week int) ([]*models.Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var picks []*models.Pick
	for _, pick := range s.picks {
		if pick.Week == week {
			picks = append(picks, pick)
		}
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].UserID < picks[j].UserID })
	return picks, nil
}

func (s *memStore) Upsert(_ context.Context, pick *models.Pick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pickKey(pick.UserID, pick.Week)
	if existing, ok := s.picks[key]; ok {
		existing.MatchID = pick.MatchID
		existing.TeamID = pick.TeamID
		existing.UpdatedAt = pick.UpdatedAt
		return nil
	}
	s.picks[key] = pick
	return nil
}

func (s *memStore) DeleteByUserAndWeek(_ context.Context, userID, week int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.picks, pickKey(userID, week))
	return nil
}

// TeamUsageRepository

func (s *memStore) Create(_ context.Context, usage *models.TeamUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usages = append(s.usages, usage)
	return nil
}

func (s *memStore) GetByUser(_ context.Context, userID int) ([]*models.TeamUsage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []*models.TeamUsage
	for _, usage := range s.usages {
		if usage.UserID == userID {
			entries = append(entries, usage)
		}
	}
	return entries, nil
}

func (s *memStore) GetByUserAndTeam(_ context.Context, userID, teamID int) ([]*models.TeamUsage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []*models.TeamUsage
	for _, usage := range s.usages {
		if usage.UserID == userID && usage.TeamID == teamID {
			entries = append(entries, usage)
		}
	}
	return entries, nil
}

// TransactionRunner

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memPickRepo exposes the store's pick methods under the PickRepository
// method set. The week lookup needs its own name on memStore because the
// match repository already claims GetByWeek there.
type memPickRepo struct {
	*memStore
}

func (r memPickRepo) GetByWeek(ctx context.Context, week int) ([]*models.Pick, error) {
	return r.PicksByWeek(ctx, week)
}

// memHistoricalStore keeps HistoricalPickRepository separate so the shared
// Create method name does not collide with the usage ledger's.
type memHistoricalStore struct {
	mu    sync.Mutex
	picks []*models.HistoricalPick
}

func (s *memHistoricalStore) Create(_ context.Context, pick *models.HistoricalPick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picks = append(s.picks, pick)
	return nil
}

func (s *memHistoricalStore) GetByUserAndWeek(_ context.Context, userID, week int) (*models.HistoricalPick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pick := range s.picks {
		if pick.UserID == userID && pick.Week == week {
			return pick, nil
		}
	}
	return nil, nil
}

func (s *memHistoricalStore) GetByUser(_ context.Context, userID int) ([]*models.HistoricalPick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var picks []*models.HistoricalPick
	for _, pick := range s.picks {
		if pick.UserID == userID {
			picks = append(picks, pick)
		}
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].Week < picks[j].Week })
	return picks, nil
}

func (s *memHistoricalStore) GetAll(_ context.Context) ([]*models.HistoricalPick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.HistoricalPick(nil), s.picks...), nil
}
