package lookup

import (
	"context"
	"sync"

	dErrors "commune/pkg/domain-errors"
)

// ErrNotFound is returned when a short id has no registration in a scope.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "short id not found")

type scopeTable struct {
	forward map[string]string // value -> short id
	reverse map[string]string // short id -> value
	next    uint64
}

// InMemoryRegistry is a process-local registry for single-instance
// deployments and tests.
type InMemoryRegistry struct {
	mu     sync.Mutex
	scopes map[string]*scopeTable
}

func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{scopes: map[string]*scopeTable{}}
}

func (r *InMemoryRegistry) Register(_ context.Context, scope, value string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.scopes[scope]
	if !ok {
		t = &scopeTable{forward: map[string]string{}, reverse: map[string]string{}}
		r.scopes[scope] = t
	}
	if id, ok := t.forward[value]; ok {
		return id, nil
	}
	t.next++
	id := encodeShortID(t.next)
	t.forward[value] = id
	t.reverse[id] = value
	return id, nil
}

func (r *InMemoryRegistry) Resolve(_ context.Context, scope, shortID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.scopes[scope]
	if !ok {
		return "", ErrNotFound
	}
	value, ok := t.reverse[shortID]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}
