// Package store persists collections, their records, and the per-record
// activity log.
package store

import (
	"context"

	collection "commune/internal/collection/models"
	dErrors "commune/pkg/domain-errors"
)

// ErrNotFound is returned when a collection or record does not exist.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "not found")

// Store is the persistence contract of the collection vertical.
type Store interface {
	SaveCollection(ctx context.Context, col *collection.Collection) error
	GetCollection(ctx context.Context, id string) (*collection.Collection, error)
	ListCollections(ctx context.Context, circleID string) ([]*collection.Collection, error)

	SaveRecord(ctx context.Context, collectionID string, record collection.DataRecord) error
	GetRecord(ctx context.Context, collectionID, slug string) (collection.DataRecord, error)
	ListRecords(ctx context.Context, collectionID string) ([]collection.DataRecord, error)
	DeleteRecord(ctx context.Context, collectionID, slug string) error

	AppendActivities(ctx context.Context, collectionID, slug string, activities []collection.Activity) error
	ListActivities(ctx context.Context, collectionID, slug string) ([]collection.Activity, error)
}
