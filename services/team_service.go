package services

import (
	"context"

	"nfl-survivor-go/models"
)

// TeamRepository provides read access to the franchise table
type TeamRepository interface {
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetAll(ctx context.Context) ([]*models.Team, error)
}

// TeamService exposes franchise lookups for display. Teams are read-only
// outside the feed sync.
type TeamService struct {
	teamRepo TeamRepository
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo TeamRepository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

// GetTeam returns one franchise, or nil if unknown
func (s *TeamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	return s.teamRepo.GetByID(ctx, id)
}

// TeamsByID returns the full franchise table keyed by team ID
func (s *TeamService) TeamsByID(ctx context.Context) (map[int]*models.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*models.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}
	return byID, nil
}
