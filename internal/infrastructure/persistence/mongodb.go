package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// connectTimeout bounds the initial dial and ping. The activity log is
// the only Mongo consumer, so an unreachable audit store fails startup
// fast instead of hanging the service.
const connectTimeout = 10 * time.Second

// NewMongoClient dials the MongoDB instance backing the activity log and
// verifies the connection with a ping. Credentials are optional; local
// deployments run without auth.
func NewMongoClient(ctx context.Context, uri, username, password string) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if username != "" && password != "" {
		opts.SetAuth(options.Credential{Username: username, Password: password})
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// GetDatabase returns a handle on the named database.
func GetDatabase(client *mongo.Client, name string) *mongo.Database {
	return client.Database(name)
}
