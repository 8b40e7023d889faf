package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appName     = "storefront-console"
	dialTimeout = 10 * time.Second
)

// Config holds the connection settings of the client storage database.
type Config struct {
	URI      string
	Database string
	Prefix   string
	Timeout  time.Duration
}

// Open connects to MongoDB and returns a Storage once the primary answers a ping.
func Open(ctx context.Context, cfg Config) (*Storage, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetMaxPoolSize(10))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return NewStorage(client.Database(cfg.Database), cfg.Prefix), nil
}

// Close disconnects the client the storage was opened with.
func (s *Storage) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}
