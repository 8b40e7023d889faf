package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/storefront-console/internal/core/ports"
)

const storageCollection = "client_storage"

// entry is the stored document: {_id: <prefix><key>, value: <string>}.
type entry struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// Storage implements ports.ClientStorage on a MongoDB collection.
type Storage struct {
	db     *mongo.Database
	prefix string
}

var _ ports.ClientStorage = (*Storage)(nil)

// NewStorage stores entries in the client_storage collection of db.
func NewStorage(db *mongo.Database, prefix string) *Storage {
	return &Storage{db: db, prefix: prefix}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := s.coll().FindOne(ctx, bson.M{"_id": s.prefix + key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return e.Value, true, nil
}

// SetMany upserts every entry in a single unordered bulk write.
func (s *Storage) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(entries))
	for k, v := range entries {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": s.prefix + k}).
			SetReplacement(entry{Key: s.prefix + k, Value: v}).
			SetUpsert(true))
	}
	if _, err := s.coll().BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = s.prefix + k
	}
	if _, err := s.coll().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *Storage) coll() *mongo.Collection {
	return s.db.Collection(storageCollection)
}
