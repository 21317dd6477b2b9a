// Package storetest is a behavioural suite run against every store driver.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Opener returns a freshly migrated, empty store.
type Opener func(t *testing.T) store.Store

// Run executes the suite. Each subtest gets its own store.
func Run(t *testing.T, open Opener) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"WaitlistDuplicateEmail", testWaitlistDuplicateEmail},
		{"WaitlistApproveOnce", testWaitlistApproveOnce},
		{"WaitlistClearTokenConditional", testWaitlistClearTokenConditional},
		{"WaitlistListFilter", testWaitlistListFilter},
		{"InvitationTransitions", testInvitationTransitions},
		{"InvitationExpireStale", testInvitationExpireStale},
		{"TeamMembersUniquePair", testTeamMembersUniquePair},
		{"UsersMFA", testUsersMFA},
		{"UsersSetOrganization", testUsersSetOrganization},
		{"CatalogSearch", testCatalogSearch},
		{"BackupCodesSingleUse", testBackupCodesSingleUse},
		{"MFASessions", testMFASessions},
		{"WithTxRollback", testWithTxRollback},
		{"NestedTx", testNestedTx},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func seedOrg(t *testing.T, s store.Store, slug string) domain.Organization {
	t.Helper()
	o := domain.Organization{ID: idx.New().String(), Name: slug, Slug: slug, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, s.Organizations().CreateOrganization(context.Background(), o))
	return o
}

func seedUser(t *testing.T, s store.Store, email string, orgID *string) domain.User {
	t.Helper()
	u := domain.User{
		ID:             idx.New().String(),
		Email:          email,
		Name:           email,
		PasswordHash:   ptr("hash"),
		Role:           domain.UserRoleUser,
		OrganizationID: orgID,
		CreatedAt:      base,
		UpdatedAt:      base,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedEntry(t *testing.T, s store.Store, email string) domain.WaitlistEntry {
	t.Helper()
	e := domain.WaitlistEntry{
		ID:        idx.New().String(),
		Email:     email,
		Name:      "A",
		Company:   ptr("Acme"),
		Status:    domain.WaitlistPending,
		CreatedAt: base,
		UpdatedAt: base,
	}
	require.NoError(t, s.Waitlist().CreateEntry(context.Background(), e))
	return e
}

func testWaitlistDuplicateEmail(t *testing.T, s store.Store) {
	ctx := context.Background()
	e := seedEntry(t, s, "a@x.com")

	dup := e
	dup.ID = idx.New().String()
	err := s.Waitlist().CreateEntry(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Waitlist().GetEntryByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, "Acme", *got.Company)
	require.Nil(t, got.OnboardingTokenHash)
	require.True(t, got.CreatedAt.Equal(base))

	_, err = s.Waitlist().GetEntryByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testWaitlistApproveOnce(t *testing.T, s store.Store) {
	ctx := context.Background()
	e := seedEntry(t, s, "a@x.com")
	expires := base.Add(24 * time.Hour)

	ok, err := s.Waitlist().Approve(ctx, e.ID, "fp-1", expires, base)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Waitlist().Approve(ctx, e.ID, "fp-2", expires, base)
	require.NoError(t, err)
	require.False(t, ok, "second approval must not replace the token")

	got, err := s.Waitlist().GetEntryByTokenHash(ctx, "fp-1")
	require.NoError(t, err)
	require.Equal(t, domain.WaitlistApproved, got.Status)
	require.True(t, got.TokenExpiresAt.Equal(expires))

	_, err = s.Waitlist().GetEntryByTokenHash(ctx, "fp-2")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Status-only updates keep token columns
	require.NoError(t, s.Waitlist().UpdateStatus(ctx, e.ID, domain.WaitlistRejected, base))
	got, err = s.Waitlist().GetEntryByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WaitlistRejected, got.Status)
	require.Equal(t, "fp-1", *got.OnboardingTokenHash)

	require.ErrorIs(t, s.Waitlist().UpdateStatus(ctx, idx.New().String(), domain.WaitlistRejected, base), store.ErrNotFound)
}

func testWaitlistClearTokenConditional(t *testing.T, s store.Store) {
	ctx := context.Background()
	e := seedEntry(t, s, "a@x.com")
	_, err := s.Waitlist().Approve(ctx, e.ID, "fp-1", base.Add(time.Hour), base)
	require.NoError(t, err)

	require.ErrorIs(t, s.Waitlist().ClearToken(ctx, e.ID, "other", base), store.ErrConflict)
	require.NoError(t, s.Waitlist().ClearToken(ctx, e.ID, "fp-1", base))
	require.ErrorIs(t, s.Waitlist().ClearToken(ctx, e.ID, "fp-1", base), store.ErrConflict)

	got, err := s.Waitlist().GetEntryByID(ctx, e.ID)
	require.NoError(t, err)
	require.Nil(t, got.OnboardingTokenHash)
	require.Nil(t, got.TokenExpiresAt)
	require.Equal(t, domain.WaitlistApproved, got.Status)
}

func testWaitlistListFilter(t *testing.T, s store.Store) {
	ctx := context.Background()
	a := seedEntry(t, s, "a@x.com")
	seedEntry(t, s, "b@x.com")
	require.NoError(t, s.Waitlist().UpdateStatus(ctx, a.ID, domain.WaitlistRejected, base))

	all, err := s.Waitlist().ListEntries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	rejected := domain.WaitlistRejected
	only, err := s.Waitlist().ListEntries(ctx, &rejected)
	require.NoError(t, err)
	require.Len(t, only, 1)
	require.Equal(t, a.ID, only[0].ID)
}

func seedInvitation(t *testing.T, s store.Store, org domain.Organization, inviter domain.User, email, hash string, expires time.Time) domain.Invitation {
	t.Helper()
	inv := domain.Invitation{
		ID:             idx.New().String(),
		TokenHash:      hash,
		Email:          email,
		Role:           domain.MemberUser,
		OrganizationID: org.ID,
		InvitedByID:    inviter.ID,
		Status:         domain.InvitationPending,
		ExpiresAt:      expires,
		CreatedAt:      base,
		UpdatedAt:      base,
	}
	require.NoError(t, s.Invitations().CreateInvitation(context.Background(), inv))
	return inv
}

func testInvitationTransitions(t *testing.T, s store.Store) {
	ctx := context.Background()
	org := seedOrg(t, s, "acme")
	owner := seedUser(t, s, "o@x.com", &org.ID)
	invitee := seedUser(t, s, "b@x.com", nil)

	inv := seedInvitation(t, s, org, owner, "b@x.com", "fp-inv", base.Add(time.Hour))

	dup := inv
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Invitations().CreateInvitation(ctx, dup), store.ErrAlreadyExists)

	pending, err := s.Invitations().FindPending(ctx, org.ID, "b@x.com")
	require.NoError(t, err)
	require.Equal(t, inv.ID, pending.ID)

	require.NoError(t, s.Invitations().MarkAccepted(ctx, inv.ID, invitee.ID, base.Add(time.Minute)))
	require.ErrorIs(t, s.Invitations().MarkAccepted(ctx, inv.ID, invitee.ID, base), store.ErrConflict)
	require.ErrorIs(t, s.Invitations().Cancel(ctx, inv.ID, base), store.ErrConflict)

	changed, err := s.Invitations().MarkExpired(ctx, inv.ID, base)
	require.NoError(t, err)
	require.False(t, changed)

	got, err := s.Invitations().GetInvitationByTokenHash(ctx, "fp-inv")
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)
	require.Equal(t, invitee.ID, *got.InvitedUserID)

	_, err = s.Invitations().FindPending(ctx, org.ID, "b@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.Invitations().ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func testInvitationExpireStale(t *testing.T, s store.Store) {
	ctx := context.Background()
	org := seedOrg(t, s, "acme")
	owner := seedUser(t, s, "o@x.com", &org.ID)

	stale := seedInvitation(t, s, org, owner, "a@x.com", "fp-a", base.Add(-time.Second))
	live := seedInvitation(t, s, org, owner, "b@x.com", "fp-b", base.Add(time.Hour))
	cancelled := seedInvitation(t, s, org, owner, "c@x.com", "fp-c", base.Add(-time.Hour))
	require.NoError(t, s.Invitations().Cancel(ctx, cancelled.ID, base))

	n, err := s.Invitations().ExpireStale(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = s.Invitations().ExpireStale(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	for id, want := range map[string]domain.InvitationStatus{
		stale.ID:     domain.InvitationExpired,
		live.ID:      domain.InvitationPending,
		cancelled.ID: domain.InvitationCancelled,
	} {
		got, err := s.Invitations().GetInvitationByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, want, got.Status)
	}
}

func testTeamMembersUniquePair(t *testing.T, s store.Store) {
	ctx := context.Background()
	org := seedOrg(t, s, "acme")
	other := seedOrg(t, s, "globex")
	u := seedUser(t, s, "a@x.com", &org.ID)

	m := domain.TeamMember{
		ID: idx.New().String(), UserID: u.ID, OrganizationID: org.ID,
		Role: domain.MemberOwner, Status: domain.MemberActive, JoinedAt: base,
	}
	require.NoError(t, s.TeamMembers().CreateTeamMember(ctx, m))

	m.ID = idx.New().String()
	require.ErrorIs(t, s.TeamMembers().CreateTeamMember(ctx, m), store.ErrAlreadyExists)

	m.ID = idx.New().String()
	m.OrganizationID = other.ID
	m.Role = domain.MemberUser
	require.NoError(t, s.TeamMembers().CreateTeamMember(ctx, m))

	n, err := s.TeamMembers().CountByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	members, err := s.TeamMembers().ListByOrganization(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "a@x.com", members[0].Email)
	require.Equal(t, domain.MemberOwner, members[0].Role)

	memberships, err := s.TeamMembers().ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, memberships, 2)

	got, err := s.TeamMembers().GetTeamMember(ctx, other.ID, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MemberUser, got.Role)

	require.NoError(t, s.TeamMembers().DeleteTeamMember(ctx, other.ID, u.ID))
	require.ErrorIs(t, s.TeamMembers().DeleteTeamMember(ctx, other.ID, u.ID), store.ErrNotFound)
	_, err = s.TeamMembers().GetTeamMember(ctx, other.ID, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testUsersMFA(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "a@x.com", nil)

	dup := u
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	// Enabling without a secret matches nothing
	require.ErrorIs(t, s.Users().EnableMFA(ctx, u.ID, base), store.ErrNotFound)

	require.NoError(t, s.Users().UpdateMFASecret(ctx, u.ID, "SECRET", base))
	require.NoError(t, s.Users().EnableMFA(ctx, u.ID, base))

	got, err := s.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, got.MFAEnabled())
	require.Equal(t, "SECRET", *got.MFASecret)

	require.NoError(t, s.Users().DisableMFA(ctx, u.ID, base))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.MFAEnabled())
	require.Nil(t, got.MFASecret)

	n, err := s.Users().CountByRole(ctx, domain.UserRolePlatformAdmin)
	require.NoError(t, err)
	require.Zero(t, n)
}

func testUsersSetOrganization(t *testing.T, s store.Store) {
	ctx := context.Background()
	org := seedOrg(t, s, "acme")
	u := seedUser(t, s, "a@x.com", nil)

	require.NoError(t, s.Users().SetOrganization(ctx, u.ID, &org.ID, base))
	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, org.ID, *got.OrganizationID)

	require.NoError(t, s.Users().SetOrganization(ctx, u.ID, nil, base))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.OrganizationID)

	require.ErrorIs(t, s.Users().SetOrganization(ctx, idx.New().String(), nil, base), store.ErrNotFound)
}

func testCatalogSearch(t *testing.T, s store.Store) {
	ctx := context.Background()
	names := []string{"Adobe 2013", "LinkedIn 2012", "Canva 2019", "100%_Legit"}
	ids := make([]string, 0, len(names))
	for i, name := range names {
		e := domain.LeakedDatabase{
			ID:          idx.NewAt(base.Add(time.Duration(i) * time.Second)).String(),
			Name:        name,
			Slug:        name,
			RecordCount: int64(1000 * (i + 1)),
			DataClasses: []string{"email", "password_hash"},
			Description: "Breach of " + name,
			CreatedAt:   base,
		}
		require.NoError(t, s.Catalog().CreateEntry(ctx, e))
		ids = append(ids, e.ID)
	}

	page, err := s.Catalog().Search(ctx, domain.CatalogQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, ids[0], page[0].ID)
	require.Equal(t, []string{"email", "password_hash"}, page[0].DataClasses)

	next, err := s.Catalog().Search(ctx, domain.CatalogQuery{Limit: 2, After: page[1].ID})
	require.NoError(t, err)
	require.Len(t, next, 2)
	require.Equal(t, ids[2], next[0].ID)

	hits, err := s.Catalog().Search(ctx, domain.CatalogQuery{Text: "LINKED", Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "LinkedIn 2012", hits[0].Name)

	// LIKE wildcards in the query are literal
	hits, err = s.Catalog().Search(ctx, domain.CatalogQuery{Text: "%_", Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "100%_Legit", hits[0].Name)

	_, err = s.Catalog().GetEntryByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testBackupCodesSingleUse(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "a@x.com", nil)

	require.NoError(t, s.BackupCodes().CreateBackupCode(ctx, u.ID, "c1"))
	require.NoError(t, s.BackupCodes().CreateBackupCode(ctx, u.ID, "c2"))

	ok, err := s.BackupCodes().ConsumeBackupCode(ctx, u.ID, "c1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.BackupCodes().ConsumeBackupCode(ctx, u.ID, "c1")
	require.NoError(t, err)
	require.False(t, ok)

	n, err := s.BackupCodes().CountUserBackupCodes(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, s.BackupCodes().DeleteAllBackupCodes(ctx, u.ID))
	n, err = s.BackupCodes().CountUserBackupCodes(ctx, u.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func testMFASessions(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "a@x.com", nil)

	live := domain.MFASession{ID: idx.New().String(), UserID: u.ID, CreatedAt: base, ExpiresAt: base.Add(5 * time.Minute)}
	dead := domain.MFASession{ID: idx.New().String(), UserID: u.ID, CreatedAt: base, ExpiresAt: base.Add(-time.Minute)}
	require.NoError(t, s.MFASessions().CreateMFASession(ctx, live))
	require.NoError(t, s.MFASessions().CreateMFASession(ctx, dead))

	got, err := s.MFASessions().IncrementMFASessionAttempts(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Attempts)

	_, err = s.MFASessions().IncrementMFASessionAttempts(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.MFASessions().DeleteExpiredMFASessions(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.MFASessions().GetMFASession(ctx, dead.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.MFASessions().DeleteMFASession(ctx, live.ID))
	require.ErrorIs(t, s.MFASessions().DeleteMFASession(ctx, live.ID), store.ErrNotFound)
}

func testWithTxRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		o := domain.Organization{ID: idx.New().String(), Name: "Acme", Slug: "acme", CreatedAt: base, UpdatedAt: base}
		if err := tx.Organizations().CreateOrganization(ctx, o); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Organizations().GetOrganizationBySlug(ctx, "acme")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		o := domain.Organization{ID: idx.New().String(), Name: "Acme", Slug: "acme", CreatedAt: base, UpdatedAt: base}
		return tx.Organizations().CreateOrganization(ctx, o)
	})
	require.NoError(t, err)

	got, err := s.Organizations().GetOrganizationBySlug(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Name)
}

func testNestedTx(t *testing.T, s store.Store) {
	ctx := context.Background()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.Error(t, err)
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.Error(t, err)
}
