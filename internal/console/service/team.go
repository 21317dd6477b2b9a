package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"
	"go.opentelemetry.io/otel/attribute"
)

// TeamService covers organization-scoped reads and membership removal.
type TeamService struct {
	Store store.Store
	Gate  *Gate
	Clock Clock
}

func (s *TeamService) ListMembers(ctx context.Context, actor Actor, orgID string) ([]domain.MemberView, error) {
	if err := s.Gate.RequireOrgRole(ctx, actor, orgID, domain.MemberUser); err != nil {
		return nil, err
	}
	members, err := s.Store.TeamMembers().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, mapStoreErr(err, nil)
	}
	return members, nil
}

// RemoveMember deletes userID's membership in orgID. The actor needs ADMIN;
// owners and the actor themselves cannot be removed this way.
func (s *TeamService) RemoveMember(ctx context.Context, actor Actor, orgID, userID string) (err error) {
	ctx, span := tracex.Start(ctx, "TeamService.RemoveMember",
		attribute.String("organization.id", orgID),
		attribute.String("member.user_id", userID),
	)
	defer func() { tracex.End(span, err) }()

	if err := s.Gate.RequireOrgRole(ctx, actor, orgID, domain.MemberAdmin); err != nil {
		return err
	}
	if userID == actor.UserID {
		return ErrCannotRemoveSelf
	}

	m, err := s.Store.TeamMembers().GetTeamMember(ctx, orgID, userID)
	if err != nil {
		return notFoundOr(err, ErrMemberNotFound)
	}
	if m.Role == domain.MemberOwner {
		return ErrCannotRemoveOwner
	}

	// Membership and primary affiliation change together
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.TeamMembers().DeleteTeamMember(ctx, orgID, userID); err != nil {
			return notFoundOr(err, ErrMemberNotFound)
		}
		return repointAffiliation(ctx, tx, userID, orgID, s.Clock.now())
	})
	if err != nil {
		return mapStoreErr(err, nil)
	}

	slogx.FromContext(ctx).Info("member removed",
		slog.String("organization_id", orgID),
		slog.String("user_id", userID),
	)
	return nil
}

// Subscription returns the organization's billing record.
func (s *TeamService) Subscription(ctx context.Context, actor Actor, orgID string) (domain.Subscription, error) {
	if err := s.Gate.RequireOrgRole(ctx, actor, orgID, domain.MemberUser); err != nil {
		return domain.Subscription{}, err
	}
	sub, err := s.Store.Subscriptions().GetByOrganization(ctx, orgID)
	if err != nil {
		return domain.Subscription{}, notFoundOr(err, ErrSubscriptionNotFound)
	}
	return sub, nil
}

// repointAffiliation moves a user whose primary organization was removedOrg
// to their oldest remaining membership, or clears it when none is left.
func repointAffiliation(ctx context.Context, tx store.Tx, userID, removedOrg string, now time.Time) error {
	u, err := tx.Users().GetUserByID(ctx, userID)
	if err != nil {
		return mapStoreErr(err, nil)
	}
	if u.OrganizationID == nil || *u.OrganizationID != removedOrg {
		return nil
	}

	remaining, err := tx.TeamMembers().ListByUser(ctx, userID)
	if err != nil {
		return mapStoreErr(err, nil)
	}
	var next *string
	if len(remaining) > 0 {
		next = &remaining[0].OrganizationID
	}
	if err := tx.Users().SetOrganization(ctx, userID, next, now); err != nil {
		return mapStoreErr(err, nil)
	}
	return nil
}
