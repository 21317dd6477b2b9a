package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/idx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"
	"go.opentelemetry.io/otel/attribute"
)

const trialPeriod = 14 * 24 * time.Hour

// OnboardingService turns an approved waitlist entry into an organization
// with its owner.
type OnboardingService struct {
	Store  store.Store
	Hasher cryptox.PasswordHasher
	Clock  Clock
}

type CompleteOnboardingRequest struct {
	Token            string
	OrganizationName string
	Password         string
}

type OnboardingResult struct {
	User         domain.User
	Organization domain.Organization
	Membership   domain.TeamMember
	Subscription domain.Subscription
}

// Verify checks that token is usable for onboarding, without changing anything.
func (s *OnboardingService) Verify(ctx context.Context, token string) (entry domain.WaitlistEntry, err error) {
	ctx, span := tracex.Start(ctx, "OnboardingService.Verify")
	defer func() { tracex.End(span, err) }()

	hash, err := fingerprintOf(token)
	if err != nil {
		return domain.WaitlistEntry{}, err
	}
	return checkOnboardingEntry(ctx, s.Store, hash, s.Clock.now())
}

// checkOnboardingEntry performs every precondition of onboarding against r,
// which is the root store or a transaction.
func checkOnboardingEntry(ctx context.Context, r store.Store, hash string, now time.Time) (domain.WaitlistEntry, error) {
	// 1. The token must exist
	entry, err := r.Waitlist().GetEntryByTokenHash(ctx, hash)
	if err != nil {
		return domain.WaitlistEntry{}, notFoundOr(err, ErrInvalidOnboardingLink)
	}

	// 2. and not be expired
	if entry.TokenExpiresAt == nil || !now.Before(*entry.TokenExpiresAt) {
		return domain.WaitlistEntry{}, ErrOnboardingExpired
	}

	// 3. and belong to an approved entry
	if entry.Status != domain.WaitlistApproved {
		return domain.WaitlistEntry{}, ErrNotApproved
	}

	// 4. and no account may exist for the email yet
	_, err = r.Users().GetUserByEmail(ctx, entry.Email)
	switch {
	case err == nil:
		return domain.WaitlistEntry{}, ErrAccountExists
	case !errors.Is(err, store.ErrNotFound):
		return domain.WaitlistEntry{}, internalError(err)
	}

	return entry, nil
}

// Complete consumes an onboarding token. Organization, subscription, owner
// and membership are created and the token cleared in one transaction; any
// failure leaves the token usable.
func (s *OnboardingService) Complete(ctx context.Context, req CompleteOnboardingRequest) (res OnboardingResult, err error) {
	ctx, span := tracex.Start(ctx, "OnboardingService.Complete")
	defer func() { tracex.End(span, err) }()
	l := slogx.FromContext(ctx)

	// 1. The token decides first: unknown or expired wins over bad input
	hash, err := fingerprintOf(req.Token)
	if err != nil {
		return OnboardingResult{}, err
	}
	now := s.Clock.now()
	if _, err := checkOnboardingEntry(ctx, s.Store, hash, now); err != nil {
		return OnboardingResult{}, err
	}

	// 2. Validate input before paying for the password hash
	orgName, err := requireName("organizationName", req.OrganizationName, minOrgNameLength)
	if err != nil {
		return OnboardingResult{}, err
	}
	if err := checkPassword(req.Password); err != nil {
		return OnboardingResult{}, err
	}

	passwordHash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return OnboardingResult{}, internalError(err)
	}

	// 3. Re-check and write everything atomically
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		entry, err := checkOnboardingEntry(ctx, tx, hash, now)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.String("waitlist.entry_id", entry.ID))

		res.Organization = domain.Organization{
			ID:        idx.NewAt(now).String(),
			Name:      orgName,
			Slug:      OrganizationSlug(orgName, now),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Organizations().CreateOrganization(ctx, res.Organization); err != nil {
			return mapStoreErr(err, ErrOnboardingConflict)
		}

		trialEnds := now.Add(trialPeriod)
		res.Subscription = domain.Subscription{
			ID:             idx.NewAt(now).String(),
			OrganizationID: res.Organization.ID,
			Plan:           domain.PlanTrial,
			Status:         domain.SubscriptionTrialing,
			TrialEndsAt:    &trialEnds,
			CreatedAt:      now,
		}
		if err := tx.Subscriptions().CreateSubscription(ctx, res.Subscription); err != nil {
			return mapStoreErr(err, ErrOnboardingConflict)
		}

		orgID := res.Organization.ID
		res.User = domain.User{
			ID:             idx.NewAt(now).String(),
			Email:          entry.Email,
			Name:           entry.Name,
			PasswordHash:   &passwordHash,
			Role:           domain.UserRoleOwner,
			OrganizationID: &orgID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Users().CreateUser(ctx, res.User); err != nil {
			return mapStoreErr(err, ErrAccountExists)
		}

		res.Membership = domain.TeamMember{
			ID:             idx.NewAt(now).String(),
			UserID:         res.User.ID,
			OrganizationID: orgID,
			Role:           domain.MemberOwner,
			Status:         domain.MemberActive,
			JoinedAt:       now,
		}
		if err := tx.TeamMembers().CreateTeamMember(ctx, res.Membership); err != nil {
			return mapStoreErr(err, ErrOnboardingConflict)
		}

		// Zero rows here means another request consumed the token first.
		if err := tx.Waitlist().ClearToken(ctx, entry.ID, hash, now); err != nil {
			return mapStoreErr(err, ErrOnboardingConflict)
		}
		return nil
	})
	if err != nil {
		err = mapStoreErr(err, ErrOnboardingConflict)
		if KindOf(err) == KindInternal {
			l.Error("onboarding transaction failed", slog.Any("error", err))
		}
		return OnboardingResult{}, err
	}

	l.Info("onboarding completed",
		slog.String("organization_id", res.Organization.ID),
		slog.String("user_id", res.User.ID),
	)
	return res, nil
}
