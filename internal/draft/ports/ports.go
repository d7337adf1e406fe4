// Package ports declares the collaborator interfaces the draft traversal
// engine consumes. They are defined on the consumer side so the engine can
// be unit tested with mocks and wired to in-process adapters, without a
// bus in between.
package ports

import (
	"context"

	collection "commune/internal/collection/models"
	"commune/internal/draft/models"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports_mocks.go -package=mocks

// CollectionSource loads collection schemas.
type CollectionSource interface {
	GetByID(ctx context.Context, id string) (*collection.Collection, error)
}

// DraftStore persists responder drafts, keyed by (collection, responder).
// Get returns a not-found coded error when no draft exists. Put is
// last-writer-wins; there is no transactional guarantee.
type DraftStore interface {
	Get(ctx context.Context, collectionID, responderID string) (models.Draft, error)
	Put(ctx context.Context, draft models.Draft) error
	Delete(ctx context.Context, collectionID, responderID string) error
}

// WalletService resolves a responder's linked wallet identity.
type WalletService interface {
	HasLinkedWallet(ctx context.Context, responderID string) (bool, error)
	Address(ctx context.Context, responderID string) (string, error)
}

// SybilService scores an address against a sybil-resistance config.
type SybilService interface {
	PassesSybilCheck(ctx context.Context, address string, cfg collection.SybilConfig) (bool, error)
}

// RoleGateService checks circle role membership.
type RoleGateService interface {
	HasGatingRole(ctx context.Context, responderID, circleID string, roles []string) (bool, error)
}

// CaptchaVerifier verifies a captcha solution token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// ClaimKind names a claimable completion credential.
type ClaimKind string

const (
	ClaimPoap  ClaimKind = "poap"
	ClaimKudos ClaimKind = "kudos"
	ClaimErc20 ClaimKind = "erc20"
)

// ClaimStatus is the external claim state for one credential kind.
type ClaimStatus struct {
	CanClaim   bool `json:"canClaim"`
	HasClaimed bool `json:"hasClaimed"`
}

// ClaimService reports credential claim status per kind. Claim execution
// and settlement live entirely behind the provider.
type ClaimService interface {
	Status(ctx context.Context, kind ClaimKind, collectionID, responderID string) (ClaimStatus, error)
}

// LookupRegistry maps full identifiers to ephemeral short ids, scoped per
// collection. The channel addresses fields and options by these ids.
type LookupRegistry interface {
	Register(ctx context.Context, scope, value string) (string, error)
	Resolve(ctx context.Context, scope, shortID string) (string, error)
}

// RecordSink commits a finished draft's values as a record. Implemented by
// the collection service.
type RecordSink interface {
	AddRecord(ctx context.Context, collectionID, actorID string, values map[string]any) (collection.DataRecord, error)
}
