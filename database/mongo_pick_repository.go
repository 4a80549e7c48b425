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

// MongoPickRepository implements open-pick storage for MongoDB. The unique
// (user_id, week) index enforces the one-open-pick-per-week invariant at
// the storage layer.
type MongoPickRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoPickRepository creates a new MongoDB pick repository
func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	collection := db.GetCollection("picks")
	logger := logging.WithPrefix("mongo_pick_repo")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "week", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Errorf("Failed to create index on picks collection: %v", err)
	}

	return &MongoPickRepository{
		collection: collection,
		logger:     logger,
	}
}

// GetByUserAndWeek retrieves the user's open pick for a week, or nil
func (r *MongoPickRepository) GetByUserAndWeek(ctx context.Context, userID, week int) (*models.Pick, error) {
	var pick models.Pick
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "week": week}).Decode(&pick)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pick for user %d week %d: %w", userID, week, err)
	}
	return &pick, nil
}

// GetByWeek retrieves all open picks for a week
func (r *MongoPickRepository) GetByWeek(ctx context.Context, week int) ([]*models.Pick, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"week": week})
	if err != nil {
		return nil, fmt.Errorf("failed to find picks for week %d: %w", week, err)
	}
	defer cursor.Close(ctx)

	var picks []*models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}
	return picks, nil
}

// Upsert writes the user's pick for the week, replacing a previous
// selection in place. Replaced picks leave no audit trail.
func (r *MongoPickRepository) Upsert(ctx context.Context, pick *models.Pick) error {
	filter := bson.M{"user_id": pick.UserID, "week": pick.Week}
	update := bson.M{
		"$set": bson.M{
			"match_id":   pick.MatchID,
			"team_id":    pick.TeamID,
			"updated_at": pick.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"user_id":    pick.UserID,
			"week":       pick.Week,
			"created_at": pick.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert pick for user %d week %d: %w", pick.UserID, pick.Week, err)
	}
	return nil
}

// DeleteByUserAndWeek removes the user's open pick once the week resolves
func (r *MongoPickRepository) DeleteByUserAndWeek(ctx context.Context, userID, week int) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "week": week}); err != nil {
		return fmt.Errorf("failed to delete pick for user %d week %d: %w", userID, week, err)
	}
	return nil
}
