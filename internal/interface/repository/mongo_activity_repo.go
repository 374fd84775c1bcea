package repository

import (
	"context"

	"manajet-service/internal/domain/entity"
	"manajet-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActivityRepository implements ActivityRepository
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new activity log repository
func NewMongoActivityRepository(db *mongo.Database) repository.ActivityRepository {
	collection := db.Collection("activity_log")

	// Index on timestamp for recent-first queries
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.M{"timestamp": -1},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	entityIndex := mongo.IndexModel{
		Keys: bson.M{"entityId": 1},
	}
	collection.Indexes().CreateOne(ctx, entityIndex)

	return &MongoActivityRepository{
		collection: collection,
	}
}

// Record inserts a new activity entry
func (r *MongoActivityRepository) Record(ctx context.Context, activity *entity.Activity) error {
	if activity.ID == "" {
		activity.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, activity)
	return err
}

// Recent returns the most recent activity entries, newest first
func (r *MongoActivityRepository) Recent(ctx context.Context, limit int64) ([]*entity.Activity, error) {
	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []*entity.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}
