package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/notify"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/idx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultInvitationTokenTTLHours = 7 * 24
	DefaultMaxMemberships          = 2
)

type InvitationService struct {
	Store    store.Store
	Gate     *Gate
	Notifier notify.Notifier
	Hasher   cryptox.PasswordHasher
	Links    Links
	Clock    Clock

	TokenTTLHours  int // zero means 168
	MaxMemberships int // zero means 2
}

type CreateInvitationRequest struct {
	Email string
	Role  domain.MemberRole
}

// CreatedInvitation carries the accept link. It is returned once, at creation.
type CreatedInvitation struct {
	Invitation domain.Invitation
	AcceptURL  string
}

type InvitationDetails struct {
	Invitation   domain.Invitation // Status is the effective status
	Organization domain.Organization
	UserExists   bool
}

type AcceptInvitationRequest struct {
	Name     *string
	Password *string
}

type AcceptResult struct {
	User         domain.User
	Organization domain.Organization
	Membership   domain.TeamMember
	UserCreated  bool
}

// Create invites email into orgID with role. The actor needs ADMIN.
func (s *InvitationService) Create(ctx context.Context, actor Actor, orgID string, req CreateInvitationRequest) (created CreatedInvitation, err error) {
	ctx, span := tracex.Start(ctx, "InvitationService.Create", attribute.String("organization.id", orgID))
	defer func() { tracex.End(span, err) }()
	l := slogx.FromContext(ctx)

	if err := s.Gate.RequireOrgRole(ctx, actor, orgID, domain.MemberAdmin); err != nil {
		return CreatedInvitation{}, err
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return CreatedInvitation{}, err
	}
	if !req.Role.Invitable() {
		return CreatedInvitation{}, validationError("role must be one of ADMIN, USER")
	}

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, orgID)
	if err != nil {
		return CreatedInvitation{}, notFoundOr(err, ErrOrganizationNotFound)
	}
	inviter, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if err != nil {
		return CreatedInvitation{}, mapStoreErr(err, nil)
	}

	// Reject existing members
	if u, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		_, err := s.Store.TeamMembers().GetTeamMember(ctx, orgID, u.ID)
		if err == nil {
			return CreatedInvitation{}, ErrAlreadyMember
		}
		if !errors.Is(err, store.ErrNotFound) {
			return CreatedInvitation{}, internalError(err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return CreatedInvitation{}, internalError(err)
	}

	// Reject a live pending invitation; a stale one is expired on the way
	now := s.Clock.now()
	pending, err := s.Store.Invitations().FindPending(ctx, orgID, email)
	switch {
	case err == nil && !pending.IsStale(now):
		return CreatedInvitation{}, ErrPendingInvitation
	case err == nil:
		if err := s.MaterializeExpiry(ctx, pending); err != nil {
			return CreatedInvitation{}, err
		}
	case !errors.Is(err, store.ErrNotFound):
		return CreatedInvitation{}, internalError(err)
	}

	raw, hash, err := issueToken()
	if err != nil {
		return CreatedInvitation{}, internalError(err)
	}

	inv := domain.Invitation{
		ID:             idx.NewAt(now).String(),
		TokenHash:      hash,
		Email:          email,
		Role:           req.Role,
		OrganizationID: orgID,
		InvitedByID:    inviter.ID,
		Status:         domain.InvitationPending,
		ExpiresAt:      cryptox.ExpiryFrom(now, s.ttlHours()),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		return CreatedInvitation{}, mapStoreErr(err, nil)
	}

	url := s.Links.Invitation(raw)
	l.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("organization_id", orgID),
		slog.String("role", string(inv.Role)),
	)

	if s.Notifier != nil {
		err := s.Notifier.SendInvitationEmail(ctx, notify.InvitationEmail{
			To:               email,
			OrganizationName: org.Name,
			InviterName:      inviter.Name,
			Role:             string(inv.Role),
			AcceptURL:        url,
			ExpiresAt:        inv.ExpiresAt,
		})
		if err != nil {
			l.Error("failed to send invitation email", slog.String("invitation_id", inv.ID), slog.Any("error", err))
		}
	}

	return CreatedInvitation{Invitation: inv, AcceptURL: url}, nil
}

// List returns the organization's invitations with effective statuses.
func (s *InvitationService) List(ctx context.Context, actor Actor, orgID string) ([]domain.Invitation, error) {
	if err := s.Gate.RequireOrgRole(ctx, actor, orgID, domain.MemberUser); err != nil {
		return nil, err
	}
	invs, err := s.Store.Invitations().ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, mapStoreErr(err, nil)
	}
	now := s.Clock.now()
	for i := range invs {
		invs[i].Status = invs[i].EffectiveStatus(now)
	}
	return invs, nil
}

// Cancel withdraws a PENDING invitation. The actor needs ADMIN.
func (s *InvitationService) Cancel(ctx context.Context, actor Actor, orgID, id string) (err error) {
	ctx, span := tracex.Start(ctx, "InvitationService.Cancel", attribute.String("invitation.id", id))
	defer func() { tracex.End(span, err) }()

	if err := s.Gate.RequireOrgRole(ctx, actor, orgID, domain.MemberAdmin); err != nil {
		return err
	}

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrInvitationNotFound)
	}
	if inv.OrganizationID != orgID {
		return ErrInvitationNotFound
	}

	now := s.Clock.now()
	if inv.IsStale(now) {
		if err := s.MaterializeExpiry(ctx, inv); err != nil {
			return err
		}
		return ErrInvitationNotPending
	}
	if err := s.Store.Invitations().Cancel(ctx, id, now); err != nil {
		return mapStoreErr(err, ErrInvitationNotPending)
	}

	slogx.FromContext(ctx).Info("invitation cancelled", slog.String("invitation_id", id))
	return nil
}

// Get resolves an invitation link for display. An observed stale PENDING
// is persisted as EXPIRED.
func (s *InvitationService) Get(ctx context.Context, token string) (details InvitationDetails, err error) {
	ctx, span := tracex.Start(ctx, "InvitationService.Get")
	defer func() { tracex.End(span, err) }()

	hash, err := fingerprintOf(token)
	if err != nil {
		return InvitationDetails{}, err
	}
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, hash)
	if err != nil {
		return InvitationDetails{}, notFoundOr(err, ErrInvalidInvitationLink)
	}

	now := s.Clock.now()
	if inv.IsStale(now) {
		if err := s.MaterializeExpiry(ctx, inv); err != nil {
			return InvitationDetails{}, err
		}
	}
	inv.Status = inv.EffectiveStatus(now)

	org, err := s.Store.Organizations().GetOrganizationByID(ctx, inv.OrganizationID)
	if err != nil {
		return InvitationDetails{}, notFoundOr(err, ErrOrganizationNotFound)
	}

	_, err = s.Store.Users().GetUserByEmail(ctx, inv.Email)
	switch {
	case err == nil:
		details.UserExists = true
	case !errors.Is(err, store.ErrNotFound):
		return InvitationDetails{}, internalError(err)
	}

	details.Invitation = inv
	details.Organization = org
	return details, nil
}

// MaterializeExpiry persists EXPIRED for a PENDING invitation. Idempotent.
func (s *InvitationService) MaterializeExpiry(ctx context.Context, inv domain.Invitation) error {
	changed, err := s.Store.Invitations().MarkExpired(ctx, inv.ID, s.Clock.now())
	if err != nil {
		return internalError(err)
	}
	if changed {
		slogx.FromContext(ctx).Info("invitation expired", slog.String("invitation_id", inv.ID))
	}
	return nil
}

// checkInvitation performs the token preconditions of Accept against r.
func checkInvitation(ctx context.Context, r store.Store, hash string, now time.Time) (domain.Invitation, error) {
	inv, err := r.Invitations().GetInvitationByTokenHash(ctx, hash)
	if err != nil {
		return domain.Invitation{}, notFoundOr(err, ErrInvalidInvitationLink)
	}
	if inv.Status != domain.InvitationPending {
		return domain.Invitation{}, ErrInvitationNotPending
	}
	if inv.EffectiveStatus(now) == domain.InvitationExpired {
		return inv, ErrInvitationExpired
	}
	return inv, nil
}

// Accept consumes an invitation token, creating the user if the invited
// email has no account yet, and adds the membership. User, membership and the
// invitation update commit together.
func (s *InvitationService) Accept(ctx context.Context, token string, req AcceptInvitationRequest) (res AcceptResult, err error) {
	ctx, span := tracex.Start(ctx, "InvitationService.Accept")
	defer func() { tracex.End(span, err) }()
	l := slogx.FromContext(ctx)

	hash, err := fingerprintOf(token)
	if err != nil {
		return AcceptResult{}, err
	}
	now := s.Clock.now()

	// 1. Token preconditions, expiring the invitation if we observe it stale
	inv, err := checkInvitation(ctx, s.Store, hash, now)
	if err != nil {
		if errors.Is(err, ErrInvitationExpired) {
			if mErr := s.MaterializeExpiry(ctx, inv); mErr != nil {
				return AcceptResult{}, mErr
			}
		}
		return AcceptResult{}, err
	}
	span.SetAttributes(attribute.String("invitation.id", inv.ID))

	// 2. For a new account, validate and hash outside the transaction
	var newUser *domain.User
	_, err = s.Store.Users().GetUserByEmail(ctx, inv.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		u, err := s.prepareUser(req, inv, now)
		if err != nil {
			return AcceptResult{}, err
		}
		newUser = &u
	case err != nil:
		return AcceptResult{}, internalError(err)
	}

	// 3. Re-check and write atomically
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := checkInvitation(ctx, tx, hash, now)
		if err != nil {
			return err
		}

		user, err := tx.Users().GetUserByEmail(ctx, inv.Email)
		switch {
		case err == nil:
			// Reused unchanged; name and password are ignored
		case errors.Is(err, store.ErrNotFound) && newUser != nil:
			user = *newUser
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return mapStoreErr(err, ErrInvitationConflict)
			}
			res.UserCreated = true
		case errors.Is(err, store.ErrNotFound):
			// The account seen earlier is gone; start over.
			return ErrInvitationConflict
		default:
			return internalError(err)
		}

		_, err = tx.TeamMembers().GetTeamMember(ctx, inv.OrganizationID, user.ID)
		switch {
		case err == nil:
			return ErrAlreadyMember
		case !errors.Is(err, store.ErrNotFound):
			return internalError(err)
		}

		count, err := tx.TeamMembers().CountByUser(ctx, user.ID)
		if err != nil {
			return internalError(err)
		}
		if count >= s.maxMemberships() {
			return ErrMembershipLimit
		}

		res.Membership = domain.TeamMember{
			ID:             idx.NewAt(now).String(),
			UserID:         user.ID,
			OrganizationID: inv.OrganizationID,
			Role:           inv.Role,
			Status:         domain.MemberActive,
			JoinedAt:       now,
		}
		if err := tx.TeamMembers().CreateTeamMember(ctx, res.Membership); err != nil {
			return mapStoreErr(err, ErrAlreadyMember)
		}

		if err := tx.Invitations().MarkAccepted(ctx, inv.ID, user.ID, now); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrInvitationNotPending
			}
			return mapStoreErr(err, ErrInvitationConflict)
		}

		org, err := tx.Organizations().GetOrganizationByID(ctx, inv.OrganizationID)
		if err != nil {
			return notFoundOr(err, ErrOrganizationNotFound)
		}

		res.User = user
		res.Organization = org
		return nil
	})
	if err != nil {
		err = mapStoreErr(err, ErrInvitationConflict)
		if errors.Is(err, ErrInvitationExpired) {
			_ = s.MaterializeExpiry(ctx, inv)
		}
		if KindOf(err) == KindInternal {
			l.Error("invitation transaction failed", slog.Any("error", err))
		}
		return AcceptResult{}, err
	}

	l.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", res.User.ID),
		slog.Bool("user_created", res.UserCreated),
	)
	return res, nil
}

func (s *InvitationService) prepareUser(req AcceptInvitationRequest, inv domain.Invitation, now time.Time) (domain.User, error) {
	if req.Name == nil || req.Password == nil {
		return domain.User{}, validationError("name and password are required to create an account")
	}
	name, err := requireName("name", *req.Name, 1)
	if err != nil {
		return domain.User{}, err
	}
	if err := checkPassword(*req.Password); err != nil {
		return domain.User{}, err
	}
	passwordHash, err := s.Hasher.Hash(*req.Password)
	if err != nil {
		return domain.User{}, internalError(err)
	}

	orgID := inv.OrganizationID
	return domain.User{
		ID:             idx.NewAt(now).String(),
		Email:          inv.Email,
		Name:           name,
		PasswordHash:   &passwordHash,
		Role:           domain.UserRoleUser,
		OrganizationID: &orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (s *InvitationService) ttlHours() int {
	if s.TokenTTLHours <= 0 {
		return DefaultInvitationTokenTTLHours
	}
	return s.TokenTTLHours
}

func (s *InvitationService) maxMemberships() int {
	if s.MaxMemberships <= 0 {
		return DefaultMaxMemberships
	}
	return s.MaxMemberships
}
