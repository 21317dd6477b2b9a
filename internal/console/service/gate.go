package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

// Actor is the authenticated caller of a service method. The zero value is
// anonymous.
type Actor struct {
	UserID string
}

func (a Actor) Anonymous() bool { return a.UserID == "" }

type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

type MemberLookup interface {
	GetTeamMember(ctx context.Context, orgID, userID string) (domain.TeamMember, error)
}

// Gate answers capability questions. Services call it first, before any
// read that depends on the answer or any write.
//
// Never call the gate from inside WithTx: it reads through the root store.
type Gate struct {
	Users   UserLookup
	Members MemberLookup
}

func NewGate(s store.Store) *Gate {
	return &Gate{Users: s.Users(), Members: s.TeamMembers()}
}

// IsAdmin reports whether actor is a platform admin.
func (g *Gate) IsAdmin(ctx context.Context, actor Actor) (bool, error) {
	if actor.Anonymous() {
		return false, ErrUnauthenticated
	}
	u, err := g.Users.GetUserByID(ctx, actor.UserID)
	if errors.Is(err, store.ErrNotFound) {
		// The token outlived its user.
		return false, ErrUnauthenticated
	}
	if err != nil {
		return false, internalError(err)
	}
	return u.Role == domain.UserRolePlatformAdmin, nil
}

// HasOrgCapability reports whether actor holds at least required in orgID
// through an ACTIVE membership. Platform admins get no organization rights
// without a membership of their own.
func (g *Gate) HasOrgCapability(ctx context.Context, actor Actor, orgID string, required domain.MemberRole) (bool, error) {
	if _, err := g.IsAdmin(ctx, actor); err != nil {
		return false, err
	}

	m, err := g.Members.GetTeamMember(ctx, orgID, actor.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, internalError(err)
	}
	return m.Status == domain.MemberActive && m.Role.Satisfies(required), nil
}

func (g *Gate) RequireAdmin(ctx context.Context, actor Actor) error {
	ok, err := g.IsAdmin(ctx, actor)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (g *Gate) RequireOrgRole(ctx context.Context, actor Actor, orgID string, required domain.MemberRole) error {
	ok, err := g.HasOrgCapability(ctx, actor, orgID, required)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// RequireUser only checks that actor is a known user.
func (g *Gate) RequireUser(ctx context.Context, actor Actor) error {
	_, err := g.IsAdmin(ctx, actor)
	return err
}
