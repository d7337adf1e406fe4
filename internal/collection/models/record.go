package models

import "time"

// Control keys that may appear in a value payload without a matching
// property. They bypass type validation entirely.
const (
	ControlKeyPayment    = "__payment__"
	ControlKeyCardStatus = "__cardStatus__"
	ControlKeyCardOrder  = "__cardOrder__"
)

// IsControlKey reports whether key is a non-schema control key.
func IsControlKey(key string) bool {
	switch key {
	case ControlKeyPayment, ControlKeyCardStatus, ControlKeyCardOrder:
		return true
	}
	return false
}

// DataRecord is one committed row of a collection: a slug plus values keyed
// by property id. Value shapes follow the property type, see values.go.
type DataRecord struct {
	Slug   string         `json:"slug"`
	Values map[string]any `json:"values"`
}

// RefType tags what an ActorRef points at.
type RefType string

const (
	RefTypeUser       RefType = "user"
	RefTypeCircle     RefType = "circle"
	RefTypeCollection RefType = "collection"
)

// ActorRef resolves a placeholder token inside activity content.
type ActorRef struct {
	ID      string  `json:"id"`
	RefType RefType `json:"refType"`
}

// Activity is one audit-log entry describing a single field change.
// Immutable once created; per-record ordering is kept in an explicit order
// list so it survives clock skew.
type Activity struct {
	ID        string              `json:"id"`
	Content   string              `json:"content"`
	Ref       map[string]ActorRef `json:"ref,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
	Comment   bool                `json:"comment"`
	ImageRef  string              `json:"imageRef,omitempty"`
}
