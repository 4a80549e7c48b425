package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"nfl-survivor-go/models"
)

// MongoUserRepository implements user storage for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *MongoDB) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.GetCollection("users"),
	}
}

// GetByUsername retrieves a user by username (case-insensitive)
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	filter := bson.M{"username": bson.M{"$regex": "^" + strings.ToLower(username) + "$", "$options": "i"}}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %q: %w", username, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID
func (r *MongoUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}
	return &user, nil
}

// Create inserts a new user
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}
	return nil
}

// UpdateLastLogin stamps the user's last successful login. Users are
// otherwise immutable after seeding.
func (r *MongoUserRepository) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	update := bson.M{"$set": bson.M{"last_login": at}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to update last login for user %d: %w", id, err)
	}
	return nil
}

// GetAll retrieves the full pool roster
func (r *MongoUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
