package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/models"
)

// MongoTeamUsageRepository implements the append-only usage ledger for
// MongoDB. Entries are only ever inserted by week resolution.
type MongoTeamUsageRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoTeamUsageRepository creates a new MongoDB team usage repository
func NewMongoTeamUsageRepository(db *MongoDB) *MongoTeamUsageRepository {
	collection := db.GetCollection("team_usage")
	logger := logging.WithPrefix("mongo_usage_repo")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "team_id", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Errorf("Failed to create index on team_usage collection: %v", err)
	}

	return &MongoTeamUsageRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create appends one ledger entry
func (r *MongoTeamUsageRepository) Create(ctx context.Context, usage *models.TeamUsage) error {
	usage.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, usage); err != nil {
		return fmt.Errorf("failed to create usage entry for user %d team %d: %w",
			usage.UserID, usage.TeamID, err)
	}
	return nil
}

// GetByUser retrieves every ledger entry for a user across all weeks
func (r *MongoTeamUsageRepository) GetByUser(ctx context.Context, userID int) ([]*models.TeamUsage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "week", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find usage for user %d: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var entries []*models.TeamUsage
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode usage entries: %w", err)
	}
	return entries, nil
}

// GetByUserAndTeam retrieves a user's ledger entries for one team
func (r *MongoTeamUsageRepository) GetByUserAndTeam(ctx context.Context, userID, teamID int) ([]*models.TeamUsage, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "team_id": teamID})
	if err != nil {
		return nil, fmt.Errorf("failed to find usage for user %d team %d: %w", userID, teamID, err)
	}
	defer cursor.Close(ctx)

	var entries []*models.TeamUsage
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode usage entries: %w", err)
	}
	return entries, nil
}
