package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/stretchr/testify/require"
)

func TestWaitlistJoin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry, err := env.Waitlist.Join(ctx, service.JoinWaitlistRequest{
		Email:   "  A@X.com ",
		Name:    " A ",
		Company: ptr("  "),
	})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", entry.Email)
	require.Equal(t, "A", entry.Name)
	require.Nil(t, entry.Company)
	require.Equal(t, domain.WaitlistPending, entry.Status)
	require.Nil(t, entry.OnboardingTokenHash)
}

func TestWaitlistJoinValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  service.JoinWaitlistRequest
	}{
		{"missing email", service.JoinWaitlistRequest{Name: "A"}},
		{"malformed email", service.JoinWaitlistRequest{Email: "not-an-email", Name: "A"}},
		{"display name form", service.JoinWaitlistRequest{Email: "A <a@x.com>", Name: "A"}},
		{"blank name", service.JoinWaitlistRequest{Email: "a@x.com", Name: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Waitlist.Join(context.Background(), tt.req)
			requireKind(t, err, service.KindValidation)
		})
	}
}

func TestWaitlistJoinDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Waitlist.Join(ctx, service.JoinWaitlistRequest{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	_, err = env.Waitlist.Join(ctx, service.JoinWaitlistRequest{Email: "A@x.com", Name: "Again"})
	require.ErrorIs(t, err, service.ErrWaitlistDuplicate)
	requireKind(t, err, service.KindConflict)
}

func TestWaitlistSetStatusRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry, err := env.Waitlist.Join(ctx, service.JoinWaitlistRequest{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	_, err = env.Waitlist.SetStatus(ctx, service.Actor{}, entry.ID, domain.WaitlistApproved)
	require.ErrorIs(t, err, service.ErrUnauthenticated)

	user := env.createUser(t, "u@x.com", domain.UserRoleUser)
	_, err = env.Waitlist.SetStatus(ctx, service.Actor{UserID: user.ID}, entry.ID, domain.WaitlistApproved)
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = env.Waitlist.List(ctx, service.Actor{UserID: user.ID}, nil)
	require.ErrorIs(t, err, service.ErrForbidden)

	require.Empty(t, env.Notifier.approvals)
}

func TestWaitlistSetStatusValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry, err := env.Waitlist.Join(ctx, service.JoinWaitlistRequest{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	_, err = env.Waitlist.SetStatus(ctx, env.Admin, entry.ID, domain.WaitlistStatus("approved"))
	requireKind(t, err, service.KindValidation)

	_, err = env.Waitlist.SetStatus(ctx, env.Admin, "01J00000000000000000000000", domain.WaitlistApproved)
	require.ErrorIs(t, err, service.ErrWaitlistNotFound)
}

func TestWaitlistApprovalIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry, err := env.Waitlist.Join(ctx, service.JoinWaitlistRequest{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	first, err := env.Waitlist.SetStatus(ctx, env.Admin, entry.ID, domain.WaitlistApproved)
	require.NoError(t, err)
	require.NotEmpty(t, first.OnboardingURL)
	require.Equal(t, domain.WaitlistApproved, first.Entry.Status)
	require.NotNil(t, first.Entry.OnboardingTokenHash)
	require.True(t, env.Clock.Now().Add(24*time.Hour).Equal(*first.Entry.TokenExpiresAt))

	second, err := env.Waitlist.SetStatus(ctx, env.Admin, entry.ID, domain.WaitlistApproved)
	require.NoError(t, err)
	require.Empty(t, second.OnboardingURL)
	require.Equal(t, *first.Entry.OnboardingTokenHash, *second.Entry.OnboardingTokenHash)

	// One token, one email
	require.Len(t, env.Notifier.approvals, 1)
	require.Equal(t, "a@x.com", env.Notifier.approvals[0].To)
	require.Equal(t, first.OnboardingURL, env.Notifier.approvals[0].OnboardingURL)

	// The first token still works
	_, err = env.Onboarding.Verify(ctx, onboardingToken(t, first.OnboardingURL))
	require.NoError(t, err)
}

func TestWaitlistRejectKeepsTokenButBlocksOnboarding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entry, token := env.approve(t, "a@x.com", "A")

	change, err := env.Waitlist.SetStatus(ctx, env.Admin, entry.ID, domain.WaitlistRejected)
	require.NoError(t, err)
	require.Equal(t, domain.WaitlistRejected, change.Entry.Status)
	require.NotNil(t, change.Entry.OnboardingTokenHash)

	_, err = env.Onboarding.Verify(ctx, token)
	require.ErrorIs(t, err, service.ErrNotApproved)
	requireKind(t, err, service.KindState)

	// Re-approving issues a fresh token and retires the old one
	again, err := env.Waitlist.SetStatus(ctx, env.Admin, entry.ID, domain.WaitlistApproved)
	require.NoError(t, err)
	require.NotEmpty(t, again.OnboardingURL)
	require.Len(t, env.Notifier.approvals, 2)

	_, err = env.Onboarding.Verify(ctx, token)
	require.ErrorIs(t, err, service.ErrInvalidOnboardingLink)

	_, err = env.Onboarding.Verify(ctx, onboardingToken(t, again.OnboardingURL))
	require.NoError(t, err)
}

func TestWaitlistNotificationFailureKeepsApproval(t *testing.T) {
	env := newTestEnv(t)
	env.Notifier.fail = true
	ctx := context.Background()

	entry, err := env.Waitlist.Join(ctx, service.JoinWaitlistRequest{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	change, err := env.Waitlist.SetStatus(ctx, env.Admin, entry.ID, domain.WaitlistApproved)
	require.NoError(t, err)
	require.NotEmpty(t, change.OnboardingURL, "operator fallback link must still be returned")

	got, err := env.Waitlist.Get(ctx, env.Admin, entry.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WaitlistApproved, got.Status)
}

func TestWaitlistList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.approve(t, "a@x.com", "A")
	_, err := env.Waitlist.Join(ctx, service.JoinWaitlistRequest{Email: "b@x.com", Name: "B"})
	require.NoError(t, err)

	all, err := env.Waitlist.List(ctx, env.Admin, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	pending := domain.WaitlistPending
	only, err := env.Waitlist.List(ctx, env.Admin, &pending)
	require.NoError(t, err)
	require.Len(t, only, 1)
	require.Equal(t, "b@x.com", only[0].Email)

	bogus := domain.WaitlistStatus("maybe")
	_, err = env.Waitlist.List(ctx, env.Admin, &bogus)
	requireKind(t, err, service.KindValidation)
}
