package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-otp-signup/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names per role.
const (
	CollectionUsers       = "users"
	CollectionShopkeepers = "shopkeepers"
)

// NewClient connects to MongoDB and returns the configured database.
func NewClient(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	return client, client.Database(cfg.MongoDatabase), nil
}
