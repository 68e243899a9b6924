// internal/infrastructure/database/mongo/connection.go
package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NhatHuyDevk4/SDN302-FALL25/internal/config"
)

// Collection names used across the application.
const (
	CollectionUsers      = "users"
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionCarts      = "carts"
)

// Database wraps the MongoDB client with an explicit lifecycle. The handle is
// injected into every store component instead of living in package-global
// state, so tests and shutdown hooks control it directly.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection establishes the MongoDB connection and verifies it with a ping
func NewConnection(cfg *config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	log.Println("✅ MongoDB connection established successfully")

	return &Database{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
	}, nil
}

// Close disconnects from MongoDB
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Health checks the MongoDB connection health
func (d *Database) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return d.client.Ping(ctx, nil)
}

// Collection returns a handle to the named collection
func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// EnsureIndexes creates the unique indexes the data model relies on. Product
// stock is deliberately not unique: two products may hold the same count.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionCategories: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionProducts: {
			{
				Keys: bson.D{{Key: "name", Value: 1}},
			},
			{
				Keys: bson.D{{Key: "category", Value: 1}},
			},
		},
		CollectionCarts: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := d.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}

	return nil
}
