// Package models defines circles, the organizational unit that owns
// collections and member roles.
package models

import "time"

// Role names a member's standing within a circle. Role gates on forms
// reference these values.
type Role string

const (
	RoleSteward     Role = "steward"
	RoleContributor Role = "contributor"
	RoleMember      Role = "member"
)

// KnownRole reports whether r is one of the defined roles.
func KnownRole(r Role) bool {
	switch r {
	case RoleSteward, RoleContributor, RoleMember:
		return true
	}
	return false
}

// Member is one user's membership in a circle.
type Member struct {
	UserID     string    `json:"userId"`
	Roles      []Role    `json:"roles"`
	EthAddress string    `json:"ethAddress,omitempty"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// HasRole reports whether the member holds any of the wanted roles.
func (m Member) HasRole(wanted ...string) bool {
	for _, w := range wanted {
		for _, r := range m.Roles {
			if string(r) == w {
				return true
			}
		}
	}
	return false
}

// Circle is an organization: a named member set that owns collections.
type Circle struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Members     map[string]Member `json:"members"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Membership returns the membership entry for a user, if any.
func (c *Circle) Membership(userID string) (Member, bool) {
	m, ok := c.Members[userID]
	return m, ok
}
