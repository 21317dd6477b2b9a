package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestInvitationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, owner := env.onboard(t, "owner@x.com", "Acme")
	created, token := env.invite(t, owner, org.Organization.ID, " B@X.com ", domain.MemberUser)

	require.Equal(t, "b@x.com", created.Invitation.Email)
	require.Equal(t, domain.InvitationPending, created.Invitation.Status)
	require.Equal(t, testBaseURL+"/invitations/"+token, created.AcceptURL)
	require.True(t, env.Clock.Now().Add(7*24*time.Hour).Equal(created.Invitation.ExpiresAt))

	require.Len(t, env.Notifier.invitations, 1)
	email := env.Notifier.invitations[0]
	require.Equal(t, "b@x.com", email.To)
	require.Equal(t, "Acme", email.OrganizationName)
	require.Equal(t, "Owner Acme", email.InviterName)
	require.Equal(t, created.AcceptURL, email.AcceptURL)

	details, err := env.Invitations.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, details.Invitation.Status)
	require.False(t, details.UserExists)
	require.Equal(t, "Acme", details.Organization.Name)

	res, err := env.Invitations.Accept(ctx, token, service.AcceptInvitationRequest{
		Name:     ptr("B"),
		Password: ptr(testPassword),
	})
	require.NoError(t, err)
	require.True(t, res.UserCreated)
	require.Equal(t, "b@x.com", res.User.Email)
	require.Equal(t, "B", res.User.Name)
	require.Equal(t, domain.UserRoleUser, res.User.Role)
	require.Equal(t, domain.MemberUser, res.Membership.Role)
	require.Equal(t, org.Organization.ID, res.Organization.ID)

	stored, err := env.Store.Invitations().GetInvitationByID(ctx, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedAt)
	require.True(t, env.Clock.Now().Equal(*stored.AcceptedAt))
	require.Equal(t, res.User.ID, *stored.InvitedUserID)

	user, err := env.Store.Users().GetUserByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	require.NoError(t, cryptox.VerifyPassword(testPassword, *user.PasswordHash))
}

func TestInvitationTokenIsSingleUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, owner := env.onboard(t, "owner@x.com", "Acme")
	_, token := env.invite(t, owner, org.Organization.ID, "b@x.com", domain.MemberUser)

	req := service.AcceptInvitationRequest{Name: ptr("B"), Password: ptr(testPassword)}
	_, err := env.Invitations.Accept(ctx, token, req)
	require.NoError(t, err)

	_, err = env.Invitations.Accept(ctx, token, req)
	require.ErrorIs(t, err, service.ErrInvitationNotPending)
	requireKind(t, err, service.KindState)

	details, err := env.Invitations.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, details.Invitation.Status)
	require.True(t, details.UserExists)
}

func TestInvitationExistingUserIsReused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	acme, acmeOwner := env.onboard(t, "owner@acme.com", "Acme")
	// The invitee already owns another organization
	initech, invitee := env.onboard(t, "bob@initech.com", "Initech")

	_, token := env.invite(t, acmeOwner, acme.Organization.ID, "bob@initech.com", domain.MemberAdmin)

	details, err := env.Invitations.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, details.UserExists)

	// Name and password are ignored for an existing account
	res, err := env.Invitations.Accept(ctx, token, service.AcceptInvitationRequest{
		Name:     ptr("Someone Else"),
		Password: ptr("another-password"),
	})
	require.NoError(t, err)
	require.False(t, res.UserCreated)
	require.Equal(t, invitee.UserID, res.User.ID)
	require.Equal(t, initech.User.Name, res.User.Name)
	require.Equal(t, domain.MemberAdmin, res.Membership.Role)

	user, err := env.Store.Users().GetUserByID(ctx, invitee.UserID)
	require.NoError(t, err)
	require.NoError(t, cryptox.VerifyPassword(testPassword, *user.PasswordHash))

	count, err := env.Store.TeamMembers().CountByUser(ctx, invitee.UserID)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestInvitationNewAccountNeedsNameAndPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, owner := env.onboard(t, "owner@x.com", "Acme")
	_, token := env.invite(t, owner, org.Organization.ID, "b@x.com", domain.MemberUser)

	tests := []struct {
		name string
		req  service.AcceptInvitationRequest
	}{
		{"missing both", service.AcceptInvitationRequest{}},
		{"missing password", service.AcceptInvitationRequest{Name: ptr("B")}},
		{"blank name", service.AcceptInvitationRequest{Name: ptr("  "), Password: ptr(testPassword)}},
		{"short password", service.AcceptInvitationRequest{Name: ptr("B"), Password: ptr("short")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Invitations.Accept(ctx, token, tt.req)
			requireKind(t, err, service.KindValidation)
		})
	}

	details, err := env.Invitations.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, details.Invitation.Status)
}

func TestInvitationExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, owner := env.onboard(t, "owner@x.com", "Acme")
	created, token := env.invite(t, owner, org.Organization.ID, "b@x.com", domain.MemberUser)

	env.Clock.Advance(7*24*time.Hour + time.Second)

	// Listing shows the effective status without writing
	list, err := env.Invitations.List(ctx, owner, org.Organization.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.InvitationExpired, list[0].Status)

	stored, err := env.Store.Invitations().GetInvitationByID(ctx, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, stored.Status)

	_, err = env.Invitations.Accept(ctx, token, service.AcceptInvitationRequest{Name: ptr("B"), Password: ptr(testPassword)})
	require.ErrorIs(t, err, service.ErrInvitationExpired)
	requireKind(t, err, service.KindExpired)

	// Accept persisted the expiry
	stored, err = env.Store.Invitations().GetInvitationByID(ctx, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationExpired, stored.Status)

	// and a later attempt sees a non-pending invitation
	_, err = env.Invitations.Accept(ctx, token, service.AcceptInvitationRequest{Name: ptr("B"), Password: ptr(testPassword)})
	requireKind(t, err, service.KindState)

	// A fresh invitation for the same email is allowed again
	_, err = env.Invitations.Create(ctx, owner, org.Organization.ID, service.CreateInvitationRequest{Email: "b@x.com", Role: domain.MemberUser})
	require.NoError(t, err)
}

func TestInvitationGetMaterializesExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, owner := env.onboard(t, "owner@x.com", "Acme")
	created, token := env.invite(t, owner, org.Organization.ID, "b@x.com", domain.MemberUser)

	env.Clock.Advance(8 * 24 * time.Hour)

	details, err := env.Invitations.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationExpired, details.Invitation.Status)

	stored, err := env.Store.Invitations().GetInvitationByID(ctx, created.Invitation.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationExpired, stored.Status)
}

func TestInvitationMembershipLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := service.AcceptInvitationRequest{Name: ptr("B"), Password: ptr(testPassword)}
	for i, name := range []string{"Acme", "Initech", "Umbrella"} {
		org, owner := env.onboard(t, "owner@"+name+".com", name)
		_, token := env.invite(t, owner, org.Organization.ID, "b@x.com", domain.MemberUser)

		_, err := env.Invitations.Accept(ctx, token, req)
		if i < service.DefaultMaxMemberships {
			require.NoError(t, err)
			continue
		}
		require.ErrorIs(t, err, service.ErrMembershipLimit)

		// The invitation stays pending
		details, err := env.Invitations.Get(ctx, token)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationPending, details.Invitation.Status)
	}
}

func TestInvitationCreateRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, owner := env.onboard(t, "owner@x.com", "Acme")
	orgID := org.Organization.ID

	t.Run("existing member", func(t *testing.T) {
		_, err := env.Invitations.Create(ctx, owner, orgID, service.CreateInvitationRequest{Email: "owner@x.com", Role: domain.MemberUser})
		require.ErrorIs(t, err, service.ErrAlreadyMember)
	})

	t.Run("duplicate pending", func(t *testing.T) {
		env.invite(t, owner, orgID, "dup@x.com", domain.MemberUser)
		_, err := env.Invitations.Create(ctx, owner, orgID, service.CreateInvitationRequest{Email: "dup@x.com", Role: domain.MemberAdmin})
		require.ErrorIs(t, err, service.ErrPendingInvitation)
		requireKind(t, err, service.KindConflict)
	})

	t.Run("owner role", func(t *testing.T) {
		_, err := env.Invitations.Create(ctx, owner, orgID, service.CreateInvitationRequest{Email: "c@x.com", Role: domain.MemberOwner})
		requireKind(t, err, service.KindValidation)
	})

	t.Run("bad email", func(t *testing.T) {
		_, err := env.Invitations.Create(ctx, owner, orgID, service.CreateInvitationRequest{Email: "nope", Role: domain.MemberUser})
		requireKind(t, err, service.KindValidation)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := env.Invitations.Create(ctx, service.Actor{}, orgID, service.CreateInvitationRequest{Email: "c@x.com", Role: domain.MemberUser})
		requireKind(t, err, service.KindUnauthenticated)
	})

	t.Run("plain member", func(t *testing.T) {
		_, token := env.invite(t, owner, orgID, "member@x.com", domain.MemberUser)
		res, err := env.Invitations.Accept(ctx, token, service.AcceptInvitationRequest{Name: ptr("M"), Password: ptr(testPassword)})
		require.NoError(t, err)

		member := service.Actor{UserID: res.User.ID}
		_, err = env.Invitations.Create(ctx, member, orgID, service.CreateInvitationRequest{Email: "c@x.com", Role: domain.MemberUser})
		require.ErrorIs(t, err, service.ErrForbidden)

		// Members can still read invitations
		_, err = env.Invitations.List(ctx, member, orgID)
		require.NoError(t, err)
	})

	t.Run("outsider", func(t *testing.T) {
		_, other := env.onboard(t, "other@y.com", "Other")
		_, err := env.Invitations.Create(ctx, other, orgID, service.CreateInvitationRequest{Email: "c@x.com", Role: domain.MemberUser})
		require.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("platform admin", func(t *testing.T) {
		_, err := env.Invitations.Create(ctx, env.Admin, orgID, service.CreateInvitationRequest{Email: "byadmin@x.com", Role: domain.MemberAdmin})
		require.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestInvitationCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, owner := env.onboard(t, "owner@x.com", "Acme")
	created, token := env.invite(t, owner, org.Organization.ID, "b@x.com", domain.MemberUser)

	other, otherOwner := env.onboard(t, "owner@y.com", "Other")
	err := env.Invitations.Cancel(ctx, otherOwner, other.Organization.ID, created.Invitation.ID)
	require.ErrorIs(t, err, service.ErrInvitationNotFound)

	require.NoError(t, env.Invitations.Cancel(ctx, owner, org.Organization.ID, created.Invitation.ID))

	err = env.Invitations.Cancel(ctx, owner, org.Organization.ID, created.Invitation.ID)
	require.ErrorIs(t, err, service.ErrInvitationNotPending)

	_, err = env.Invitations.Accept(ctx, token, service.AcceptInvitationRequest{Name: ptr("B"), Password: ptr(testPassword)})
	require.ErrorIs(t, err, service.ErrInvitationNotPending)

	details, err := env.Invitations.Get(ctx, token)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationCancelled, details.Invitation.Status)
}

func TestInvitationUnknownToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Invitations.Get(ctx, "deadbeef")
	require.ErrorIs(t, err, service.ErrInvalidInvitationLink)

	_, err = env.Invitations.Accept(ctx, "", service.AcceptInvitationRequest{})
	require.ErrorIs(t, err, service.ErrTokenRequired)
}

func TestInvitationNotificationFailureStillCreates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org, owner := env.onboard(t, "owner@x.com", "Acme")
	env.Notifier.fail = true

	created, err := env.Invitations.Create(ctx, owner, org.Organization.ID, service.CreateInvitationRequest{Email: "b@x.com", Role: domain.MemberUser})
	require.NoError(t, err)
	require.NotEmpty(t, created.AcceptURL)

	_, err = env.Store.Invitations().GetInvitationByID(ctx, created.Invitation.ID)
	require.NoError(t, err)
}
