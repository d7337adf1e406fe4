// Package store provides draft persistence. The in-memory implementation
// backs tests and single-node deployments; the Redis implementation is the
// production one, since drafts are session-shaped and shared across
// instances.
package store

import (
	"context"
	"sync"

	"commune/internal/draft/models"
	dErrors "commune/pkg/domain-errors"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "draft not found")

// InMemoryStore favors clarity over performance.
type InMemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]models.Draft
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{drafts: make(map[string]models.Draft)}
}

func key(collectionID, responderID string) string {
	return collectionID + "/" + responderID
}

func (s *InMemoryStore) Get(_ context.Context, collectionID, responderID string) (models.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.drafts[key(collectionID, responderID)]; ok {
		return d.Clone(), nil
	}
	return models.Draft{}, ErrNotFound
}

func (s *InMemoryStore) Put(_ context.Context, draft models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key(draft.CollectionID, draft.ResponderID)] = draft.Clone()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, collectionID, responderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key(collectionID, responderID))
	return nil
}
