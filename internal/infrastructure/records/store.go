// Package records is a thin document-store facade over MongoDB. It exposes
// the narrow surface the rest of the subsystem needs from its table
// service: point lookups by primary key, full-collection filtered scans,
// and partial-field updates.
package records

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by Get when no document matches the key.
var ErrNotFound = errors.New("record not found")

// Store wraps a MongoDB database handle with table-style helpers.
type Store struct {
	db *mongo.Database
}

// New creates a record store over an open database handle.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Get performs a point lookup and decodes the document into out.
func (s *Store) Get(ctx context.Context, collection string, key bson.M, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, key).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("record get failed: %w", err)
	}
	return nil
}

// Put inserts or fully replaces the document identified by key.
func (s *Store) Put(ctx context.Context, collection string, key bson.M, doc any) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, key, doc, opts)
	if err != nil {
		return fmt.Errorf("record put failed: %w", err)
	}
	return nil
}

// Update applies a partial-field update to the document identified by key.
func (s *Store) Update(ctx context.Context, collection string, key bson.M, fields bson.M) error {
	_, err := s.db.Collection(collection).UpdateOne(ctx, key, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("record update failed: %w", err)
	}
	return nil
}

// Scan runs a filtered scan over the collection and decodes every match
// into out, which must be a pointer to a slice. The driver cursor pages
// until exhausted, so results are never truncated at a batch boundary.
func (s *Store) Scan(ctx context.Context, collection string, filter bson.M, out any) error {
	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("record scan failed: %w", err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("record scan decode failed: %w", err)
	}
	return nil
}

// Count returns the number of documents matching filter.
func (s *Store) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("record count failed: %w", err)
	}
	return n, nil
}
