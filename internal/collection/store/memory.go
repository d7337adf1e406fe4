package store

import (
	"context"
	"encoding/json"
	"sync"

	collection "commune/internal/collection/models"
	dErrors "commune/pkg/domain-errors"
)

// InMemoryStore keeps collections and records in process memory. It favors
// clarity over performance and backs tests and single-instance runs.
type InMemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*collection.Collection
	records     map[string]map[string]collection.DataRecord // collection id -> slug -> record
	activities  map[string][]collection.Activity            // collection id + "/" + slug
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		collections: map[string]*collection.Collection{},
		records:     map[string]map[string]collection.DataRecord{},
		activities:  map[string][]collection.Activity{},
	}
}

// deep-copies via JSON so callers never alias stored state.
func cloneCollection(col *collection.Collection) (*collection.Collection, error) {
	raw, err := json.Marshal(col)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clone collection")
	}
	var out collection.Collection
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clone collection")
	}
	return &out, nil
}

func cloneRecord(rec collection.DataRecord) (collection.DataRecord, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return collection.DataRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clone record")
	}
	var out collection.DataRecord
	if err := json.Unmarshal(raw, &out); err != nil {
		return collection.DataRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clone record")
	}
	return out, nil
}

func (s *InMemoryStore) SaveCollection(_ context.Context, col *collection.Collection) error {
	copied, err := cloneCollection(col)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[col.ID] = copied
	return nil
}

func (s *InMemoryStore) GetCollection(_ context.Context, id string) (*collection.Collection, error) {
	s.mu.RLock()
	col, ok := s.collections[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCollection(col)
}

func (s *InMemoryStore) ListCollections(_ context.Context, circleID string) ([]*collection.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*collection.Collection
	for _, col := range s.collections {
		if col.CircleID != circleID {
			continue
		}
		copied, err := cloneCollection(col)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

func (s *InMemoryStore) SaveRecord(_ context.Context, collectionID string, record collection.DataRecord) error {
	copied, err := cloneRecord(record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[collectionID]; !ok {
		s.records[collectionID] = map[string]collection.DataRecord{}
	}
	s.records[collectionID][record.Slug] = copied
	return nil
}

func (s *InMemoryStore) GetRecord(_ context.Context, collectionID, slug string) (collection.DataRecord, error) {
	s.mu.RLock()
	rec, ok := s.records[collectionID][slug]
	s.mu.RUnlock()
	if !ok {
		return collection.DataRecord{}, ErrNotFound
	}
	return cloneRecord(rec)
}

func (s *InMemoryStore) ListRecords(_ context.Context, collectionID string) ([]collection.DataRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []collection.DataRecord
	for _, rec := range s.records[collectionID] {
		copied, err := cloneRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}
	return out, nil
}

func (s *InMemoryStore) DeleteRecord(_ context.Context, collectionID, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[collectionID][slug]; !ok {
		return ErrNotFound
	}
	delete(s.records[collectionID], slug)
	delete(s.activities, activityKey(collectionID, slug))
	return nil
}

func activityKey(collectionID, slug string) string {
	return collectionID + "/" + slug
}

func (s *InMemoryStore) AppendActivities(_ context.Context, collectionID, slug string, activities []collection.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := activityKey(collectionID, slug)
	s.activities[key] = append(s.activities[key], activities...)
	return nil
}

func (s *InMemoryStore) ListActivities(_ context.Context, collectionID, slug string) ([]collection.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.activities[activityKey(collectionID, slug)]
	out := make([]collection.Activity, len(stored))
	copy(out, stored)
	return out, nil
}
