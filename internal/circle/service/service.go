// Package service implements circle use cases: creation, membership, and
// role assignment.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"commune/internal/circle/models"
	"commune/internal/circle/store"
	dErrors "commune/pkg/domain-errors"
	"commune/pkg/eth"
)

// Service owns circle state. It also backs the draft engine's role and
// wallet gates through the adapters package.
type Service struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a circle; the creator becomes its first steward.
func (s *Service) Create(ctx context.Context, name, description, creatorID string) (*models.Circle, error) {
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "circle name is required")
	}
	if creatorID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "creator id is required")
	}
	now := s.now()
	circle := &models.Circle{
		ID:          uuid.New().String(),
		Slug:        uuid.New().String(),
		Name:        name,
		Description: description,
		Members: map[string]models.Member{
			creatorID: {UserID: creatorID, Roles: []models.Role{models.RoleSteward}, JoinedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, circle); err != nil {
		return nil, err
	}
	return circle, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Circle, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Circle, error) {
	return s.store.GetBySlug(ctx, slug)
}

// Join adds a user as an ordinary member. Joining twice is a conflict.
func (s *Service) Join(ctx context.Context, circleID, userID string) (*models.Circle, error) {
	circle, err := s.store.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if _, ok := circle.Membership(userID); ok {
		return nil, dErrors.New(dErrors.CodeConflict, "user is already a member")
	}
	circle.Members[userID] = models.Member{
		UserID:   userID,
		Roles:    []models.Role{models.RoleMember},
		JoinedAt: s.now(),
	}
	circle.UpdatedAt = s.now()
	if err := s.store.Save(ctx, circle); err != nil {
		return nil, err
	}
	return circle, nil
}

// AssignRole grants a role to an existing member.
func (s *Service) AssignRole(ctx context.Context, circleID, userID string, role models.Role) (*models.Circle, error) {
	if !models.KnownRole(role) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown role: "+string(role))
	}
	circle, err := s.store.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	member, ok := circle.Membership(userID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "user is not a member")
	}
	if member.HasRole(string(role)) {
		return circle, nil
	}
	member.Roles = append(member.Roles, role)
	circle.Members[userID] = member
	circle.UpdatedAt = s.now()
	if err := s.store.Save(ctx, circle); err != nil {
		return nil, err
	}
	return circle, nil
}

// LinkWallet records a member's ethereum address after checksum
// validation.
func (s *Service) LinkWallet(ctx context.Context, circleID, userID, address string) (*models.Circle, error) {
	if !eth.IsValidAddress(address) {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid ethereum address: "+address)
	}
	circle, err := s.store.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	member, ok := circle.Membership(userID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "user is not a member")
	}
	member.EthAddress = address
	circle.Members[userID] = member
	circle.UpdatedAt = s.now()
	if err := s.store.Save(ctx, circle); err != nil {
		return nil, err
	}
	return circle, nil
}
