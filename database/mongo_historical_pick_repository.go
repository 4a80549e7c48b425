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

// MongoHistoricalPickRepository implements resolved-pick storage for
// MongoDB. Documents are write-once; the unique (user_id, week) index makes
// duplicate resolution fail at the storage layer too.
type MongoHistoricalPickRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoHistoricalPickRepository creates a new MongoDB historical pick repository
func NewMongoHistoricalPickRepository(db *MongoDB) *MongoHistoricalPickRepository {
	collection := db.GetCollection("historical_picks")
	logger := logging.WithPrefix("mongo_historical_repo")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "week", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Errorf("Failed to create index on historical_picks collection: %v", err)
	}

	return &MongoHistoricalPickRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create appends one resolved pick
func (r *MongoHistoricalPickRepository) Create(ctx context.Context, pick *models.HistoricalPick) error {
	if _, err := r.collection.InsertOne(ctx, pick); err != nil {
		return fmt.Errorf("failed to create historical pick for user %d week %d: %w",
			pick.UserID, pick.Week, err)
	}
	return nil
}

// GetByUserAndWeek retrieves the user's resolved pick for a week, or nil
func (r *MongoHistoricalPickRepository) GetByUserAndWeek(ctx context.Context, userID, week int) (*models.HistoricalPick, error) {
	var pick models.HistoricalPick
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "week": week}).Decode(&pick)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find historical pick for user %d week %d: %w", userID, week, err)
	}
	return &pick, nil
}

// GetByUser retrieves a user's full resolved history ordered by week
func (r *MongoHistoricalPickRepository) GetByUser(ctx context.Context, userID int) ([]*models.HistoricalPick, error) {
	opts := options.Find().SetSort(bson.D{{Key: "week", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find historical picks for user %d: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var picks []*models.HistoricalPick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode historical picks: %w", err)
	}
	return picks, nil
}

// GetAll retrieves every resolved pick, newest week first
func (r *MongoHistoricalPickRepository) GetAll(ctx context.Context) ([]*models.HistoricalPick, error) {
	opts := options.Find().SetSort(bson.D{{Key: "week", Value: -1}, {Key: "user_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list historical picks: %w", err)
	}
	defer cursor.Close(ctx)

	var picks []*models.HistoricalPick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode historical picks: %w", err)
	}
	return picks, nil
}
