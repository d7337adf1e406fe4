package adapters

import (
	"context"

	circleservice "commune/internal/circle/service"
	"commune/internal/draft/ports"
	dErrors "commune/pkg/domain-errors"
)

// CircleRoleGate answers role gates from circle membership.
type CircleRoleGate struct {
	circles *circleservice.Service
}

var _ ports.RoleGateService = (*CircleRoleGate)(nil)

func NewCircleRoleGate(circles *circleservice.Service) *CircleRoleGate {
	return &CircleRoleGate{circles: circles}
}

func (g *CircleRoleGate) HasGatingRole(ctx context.Context, responderID, circleID string, roles []string) (bool, error) {
	circle, err := g.circles.Get(ctx, circleID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	member, ok := circle.Membership(responderID)
	if !ok {
		return false, nil
	}
	return member.HasRole(roles...), nil
}
