package services

import (
	"context"
	"time"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/models"
)

// UserSeeder creates the fixed pool roster at startup. The pool is a
// private group of four; there is no self-registration.
type UserSeeder struct {
	userRepo UserRepository
	logger   *logging.Logger
}

// NewUserSeeder creates a new user seeder
func NewUserSeeder(userRepo UserRepository) *UserSeeder {
	return &UserSeeder{
		userRepo: userRepo,
		logger:   logging.WithPrefix("UserSeeder"),
	}
}

// SeedUsers creates the initial users if they do not exist yet
func (s *UserSeeder) SeedUsers(ctx context.Context) error {
	users := []struct {
		ID          int
		Username    string
		DisplayName string
		Password    string
	}{
		{1, "Manuel", "Manuel", "Manuel1"},
		{2, "Daniel", "Daniel", "Daniel1"},
		{3, "Raff", "Raff", "Raff1"},
		{4, "Haunschi", "Haunschi", "Haunschi1"},
	}

	var existingCount, createdCount int
	for _, userData := range users {
		existing, err := s.userRepo.GetByUsername(ctx, userData.Username)
		if err == nil && existing != nil {
			existingCount++
			continue
		}

		user := &models.User{
			ID:          userData.ID,
			Username:    userData.Username,
			DisplayName: userData.DisplayName,
			CreatedAt:   time.Now().UTC(),
		}
		if err := user.HashPassword(userData.Password); err != nil {
			s.logger.Errorf("Failed to hash password for %s: %v", userData.Username, err)
			continue
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			s.logger.Errorf("Failed to create user %s: %v", userData.Username, err)
			continue
		}

		s.logger.Infof("Created user %s with ID %d", userData.Username, userData.ID)
		createdCount++
	}

	if existingCount > 0 || createdCount > 0 {
		s.logger.Infof("Completed seeding users - %d existing, %d created", existingCount, createdCount)
	}
	return nil
}
