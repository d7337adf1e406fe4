package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"commune/internal/circle/models"
	"commune/internal/circle/store"
	dErrors "commune/pkg/domain-errors"
)

type CircleServiceSuite struct {
	suite.Suite

	svc *Service
	ctx context.Context
}

func TestCircleServiceSuite(t *testing.T) {
	suite.Run(t, new(CircleServiceSuite))
}

func (s *CircleServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.svc = New(store.NewInMemoryStore(),
		WithClock(func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }))
}

func (s *CircleServiceSuite) TestCreate() {
	circle, err := s.svc.Create(s.ctx, "Builders", "a builder collective", "user-1")
	s.Require().NoError(err)
	s.NotEmpty(circle.ID)

	member, ok := circle.Membership("user-1")
	s.Require().True(ok)
	s.True(member.HasRole(string(models.RoleSteward)))

	s.Run("rejects a blank name", func() {
		_, err := s.svc.Create(s.ctx, "  ", "", "user-1")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *CircleServiceSuite) TestJoin() {
	circle, err := s.svc.Create(s.ctx, "Builders", "", "user-1")
	s.Require().NoError(err)

	joined, err := s.svc.Join(s.ctx, circle.ID, "user-2")
	s.Require().NoError(err)
	member, ok := joined.Membership("user-2")
	s.Require().True(ok)
	s.True(member.HasRole(string(models.RoleMember)))

	s.Run("joining twice conflicts", func() {
		_, err := s.svc.Join(s.ctx, circle.ID, "user-2")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown circle is not found", func() {
		_, err := s.svc.Join(s.ctx, "ghost", "user-3")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CircleServiceSuite) TestAssignRole() {
	circle, err := s.svc.Create(s.ctx, "Builders", "", "user-1")
	s.Require().NoError(err)
	_, err = s.svc.Join(s.ctx, circle.ID, "user-2")
	s.Require().NoError(err)

	updated, err := s.svc.AssignRole(s.ctx, circle.ID, "user-2", models.RoleContributor)
	s.Require().NoError(err)
	member, _ := updated.Membership("user-2")
	s.True(member.HasRole(string(models.RoleContributor)))

	s.Run("assigning again is idempotent", func() {
		again, err := s.svc.AssignRole(s.ctx, circle.ID, "user-2", models.RoleContributor)
		s.Require().NoError(err)
		m, _ := again.Membership("user-2")
		s.Len(m.Roles, 2)
	})

	s.Run("rejects an unknown role", func() {
		_, err := s.svc.AssignRole(s.ctx, circle.ID, "user-2", "emperor")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("rejects a non-member", func() {
		_, err := s.svc.AssignRole(s.ctx, circle.ID, "user-9", models.RoleMember)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CircleServiceSuite) TestLinkWallet() {
	circle, err := s.svc.Create(s.ctx, "Builders", "", "user-1")
	s.Require().NoError(err)

	updated, err := s.svc.LinkWallet(s.ctx, circle.ID, "user-1",
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	s.Require().NoError(err)
	member, _ := updated.Membership("user-1")
	s.Equal("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", member.EthAddress)

	s.Run("rejects a bad checksum", func() {
		_, err := s.svc.LinkWallet(s.ctx, circle.ID, "user-1",
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("accepts an ens name", func() {
		updated, err := s.svc.LinkWallet(s.ctx, circle.ID, "user-1", "vitalik.eth")
		s.Require().NoError(err)
		m, _ := updated.Membership("user-1")
		s.Equal("vitalik.eth", m.EthAddress)
	})
}
