// Package store persists circles.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"commune/internal/circle/models"
	dErrors "commune/pkg/domain-errors"
)

// ErrNotFound is returned when no circle matches.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "circle not found")

// Store is the persistence contract of the circle vertical.
type Store interface {
	Save(ctx context.Context, circle *models.Circle) error
	GetByID(ctx context.Context, id string) (*models.Circle, error)
	GetBySlug(ctx context.Context, slug string) (*models.Circle, error)
}

// InMemoryStore keeps circles in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	circles map[string]*models.Circle
	slugs   map[string]string // slug -> id
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		circles: map[string]*models.Circle{},
		slugs:   map[string]string{},
	}
}

func clone(c *models.Circle) (*models.Circle, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clone circle")
	}
	var out models.Circle
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clone circle")
	}
	return &out, nil
}

func (s *InMemoryStore) Save(_ context.Context, circle *models.Circle) error {
	copied, err := clone(circle)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.circles[circle.ID] = copied
	s.slugs[circle.Slug] = circle.ID
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (*models.Circle, error) {
	s.mu.RLock()
	c, ok := s.circles[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return clone(c)
}

func (s *InMemoryStore) GetBySlug(_ context.Context, slug string) (*models.Circle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.slugs[slug]
	if !ok {
		return nil, ErrNotFound
	}
	c, ok := s.circles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(c)
}
