package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nfl-survivor-go/models"
)

// MongoTeamRepository implements franchise storage for MongoDB. Teams are
// written by the feed sync and read-only everywhere else.
type MongoTeamRepository struct {
	collection *mongo.Collection
}

// NewMongoTeamRepository creates a new MongoDB team repository
func NewMongoTeamRepository(db *MongoDB) *MongoTeamRepository {
	return &MongoTeamRepository{
		collection: db.GetCollection("teams"),
	}
}

// GetByID retrieves a team by its ESPN franchise ID
func (r *MongoTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	var team models.Team
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find team %d: %w", id, err)
	}
	return &team, nil
}

// GetAll retrieves every franchise
func (r *MongoTeamRepository) GetAll(ctx context.Context) ([]*models.Team, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer cursor.Close(ctx)

	var teams []*models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

// UpsertMany replaces franchise rows from a feed sync
func (r *MongoTeamRepository) UpsertMany(ctx context.Context, teams []*models.Team) error {
	if len(teams) == 0 {
		return nil
	}

	var operations []mongo.WriteModel
	for _, team := range teams {
		operations = append(operations, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": team.ID}).
			SetReplacement(team).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.collection.BulkWrite(ctx, operations, opts); err != nil {
		return fmt.Errorf("failed to upsert teams: %w", err)
	}
	return nil
}
