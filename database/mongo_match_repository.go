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

// MongoMatchRepository implements match storage for MongoDB
type MongoMatchRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

// NewMongoMatchRepository creates a new MongoDB match repository
func NewMongoMatchRepository(db *MongoDB) *MongoMatchRepository {
	collection := db.GetCollection("matches")
	logger := logging.WithPrefix("mongo_match_repo")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "week", Value: 1}, {Key: "start_time", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Errorf("Failed to create index on matches collection: %v", err)
	}

	return &MongoMatchRepository{
		collection: collection,
		logger:     logger,
	}
}

// GetByID retrieves a match by its ESPN event ID
func (r *MongoMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	var match models.Match
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&match)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find match %d: %w", id, err)
	}
	return &match, nil
}

// GetByWeek retrieves all matches scheduled in a week, ordered by kickoff
func (r *MongoMatchRepository) GetByWeek(ctx context.Context, week int) ([]*models.Match, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"week": week}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find matches for week %d: %w", week, err)
	}
	defer cursor.Close(ctx)

	var matches []*models.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}
	return matches, nil
}

// GetIncompleteWeeks returns the distinct week numbers that still have at
// least one unfinished game. The background updater re-syncs only these.
func (r *MongoMatchRepository) GetIncompleteWeeks(ctx context.Context) ([]int, error) {
	raw, err := r.collection.Distinct(ctx, "week", bson.M{"is_completed": false})
	if err != nil {
		return nil, fmt.Errorf("failed to list incomplete weeks: %w", err)
	}

	var weeks []int
	for _, value := range raw {
		switch v := value.(type) {
		case int32:
			weeks = append(weeks, int(v))
		case int64:
			weeks = append(weeks, int(v))
		case int:
			weeks = append(weeks, v)
		}
	}
	return weeks, nil
}

// UpsertMany writes feed rows, replacing any existing match documents
func (r *MongoMatchRepository) UpsertMany(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	var operations []mongo.WriteModel
	for _, match := range matches {
		operations = append(operations, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": match.ID}).
			SetReplacement(match).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	result, err := r.collection.BulkWrite(ctx, operations, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert matches: %w", err)
	}

	r.logger.Debugf("Upserted %d matches: %d inserted, %d modified",
		len(matches), result.UpsertedCount, result.ModifiedCount)
	return nil
}
