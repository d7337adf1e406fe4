// Package activity turns a record mutation into human-readable audit-log
// entries. Content uses placeholder tokens ({{actor}}, {{user0}}, ...)
// resolved through the Ref map, so consumers can rehydrate display names
// without this package ever touching identity data.
package activity

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/google/uuid"

	"commune/internal/collection/models"
)

// transition classifies one key's change.
type transition int

const (
	transitionNone transition = iota
	transitionAdded
	transitionCleared
	transitionChanged
)

// Build diffs newValues against the previous record, restricted to keys
// present in newValues, and produces one activity per changed field plus
// the explicit per-record order of their ids. Given the same inputs
// (including now) the content and ref output is identical across calls.
func Build(newValues map[string]any, col *models.Collection, previous map[string]any, actorID string, now time.Time) ([]models.Activity, []string) {
	var activities []models.Activity
	var order []string

	for _, id := range col.PropertyOrder {
		newValue, present := newValues[id]
		if !present {
			continue
		}
		p := col.Properties[id]
		oldValue := previous[id]

		tr := classify(oldValue, newValue)
		if tr == transitionNone {
			continue
		}

		content, refs := phrase(p, tr, oldValue, newValue)
		if content == "" {
			continue
		}
		if refs == nil {
			refs = map[string]models.ActorRef{}
		}
		refs["actor"] = models.ActorRef{ID: actorID, RefType: models.RefTypeUser}

		a := models.Activity{
			ID:        uuid.New().String(),
			Content:   content,
			Ref:       refs,
			Timestamp: now,
		}
		activities = append(activities, a)
		order = append(order, a.ID)
	}
	return activities, order
}

func classify(oldValue, newValue any) transition {
	oldEmpty := models.IsEmptyValue(oldValue)
	newEmpty := models.IsEmptyValue(newValue)
	switch {
	case oldEmpty && newEmpty:
		return transitionNone
	case oldEmpty:
		return transitionAdded
	case newEmpty:
		return transitionCleared
	case equalValues(oldValue, newValue):
		return transitionNone
	}
	return transitionChanged
}

// equalValues compares after a JSON round-trip so typed structs and their
// decoded map forms compare as the same value.
func equalValues(a, b any) bool {
	return reflect.DeepEqual(normalize(a), normalize(b))
}

func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
