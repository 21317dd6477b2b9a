package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	consolehttp "github.com/aussiebroadwan/breachwatch/internal/console/http"
	"github.com/aussiebroadwan/breachwatch/internal/console/notify"
	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/internal/console/store/drivers/sqlite"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/jwtx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
)

const (
	bootstrapToken = "bootstrap-secret"
	password       = "longenough1"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "breachwatch-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testServer struct {
	URL    string
	Client *consolesdk.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	keys, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "breachwatch-test"})
	require.NoError(t, err)

	gate := service.NewGate(st)
	hasher := cryptox.BcryptHasher{Cost: cryptox.MinBcryptCost}
	notifier := notify.LogNotifier{}
	links := service.Links{BaseURL: "https://console.breachwatch.test"}

	router := consolehttp.NewRouter(keys, "test", st, slogx.Discard())
	router.WaitlistService = &service.WaitlistService{Store: st, Gate: gate, Notifier: notifier, Links: links}
	router.OnboardingService = &service.OnboardingService{Store: st, Hasher: hasher}
	router.InvitationService = &service.InvitationService{Store: st, Gate: gate, Notifier: notifier, Hasher: hasher, Links: links}
	router.TeamService = &service.TeamService{Store: st, Gate: gate}
	router.SessionService = &service.SessionService{Store: st, Keys: keys}
	router.MFAService = &service.MFAService{Store: st, Issuer: "BreachWatch"}
	router.CatalogService = &service.CatalogService{Store: st, Gate: gate}
	router.BootstrapService = &service.BootstrapService{Store: st, Hasher: hasher, Token: bootstrapToken}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: consolesdk.NewClient(srv.URL)}
}

// admin bootstraps the platform admin and logs in as them.
func (s *testServer) admin(t *testing.T) *consolesdk.Session {
	t.Helper()
	ctx := context.Background()

	_, err := s.Client.Bootstrap(ctx, bootstrapToken, consolesdk.BootstrapRequest{
		Email:    "admin@breachwatch.test",
		Name:     "Admin",
		Password: password,
	})
	require.NoError(t, err)

	sess, err := s.Client.Login(ctx, "admin@breachwatch.test", password)
	require.NoError(t, err)
	return sess
}

// onboard takes email from the waitlist to an organization owner session.
func (s *testServer) onboard(t *testing.T, admin *consolesdk.Session, email, orgName string) (*consolesdk.OnboardingResponse, *consolesdk.Session) {
	t.Helper()
	ctx := context.Background()

	entry, err := s.Client.JoinWaitlist(ctx, consolesdk.JoinWaitlistRequest{Email: email, Name: "Owner"})
	require.NoError(t, err)

	approved, err := admin.SetWaitlistStatus(ctx, entry.ID, "APPROVED")
	require.NoError(t, err)
	require.NotEmpty(t, approved.OnboardingURL)

	link, err := url.Parse(approved.OnboardingURL)
	require.NoError(t, err)

	res, err := s.Client.CompleteOnboarding(ctx, consolesdk.CompleteOnboardingRequest{
		Token:            link.Query().Get("token"),
		OrganizationName: orgName,
		Password:         password,
	})
	require.NoError(t, err)

	sess, err := s.Client.Login(ctx, email, password)
	require.NoError(t, err)
	return res, sess
}

func acceptToken(t *testing.T, acceptURL string) string {
	t.Helper()
	u, err := url.Parse(acceptURL)
	require.NoError(t, err)
	return path.Base(u.Path)
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, status, consolesdk.StatusCode(err), "error: %v", err)
}

func TestWaitlistToOnboarding(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	admin := s.admin(t)

	company := "Acme Pty Ltd"
	entry, err := s.Client.JoinWaitlist(ctx, consolesdk.JoinWaitlistRequest{
		Email:   "Owner@Acme.com",
		Name:    "Olive Owner",
		Company: &company,
	})
	require.NoError(t, err)
	require.Equal(t, "owner@acme.com", entry.Email)
	require.Equal(t, "PENDING", entry.Status)

	_, err = s.Client.JoinWaitlist(ctx, consolesdk.JoinWaitlistRequest{Email: "owner@acme.com", Name: "Again"})
	requireStatus(t, err, http.StatusConflict)

	pending, err := admin.ListWaitlist(ctx, "PENDING")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := admin.SetWaitlistStatus(ctx, entry.ID, "APPROVED")
	require.NoError(t, err)
	require.Equal(t, "APPROVED", approved.Status)
	require.NotNil(t, approved.TokenExpiresAt)

	link, err := url.Parse(approved.OnboardingURL)
	require.NoError(t, err)
	token := link.Query().Get("token")

	verified, err := s.Client.VerifyOnboarding(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "owner@acme.com", verified.Email)
	require.Equal(t, &company, verified.Company)

	res, err := s.Client.CompleteOnboarding(ctx, consolesdk.CompleteOnboardingRequest{
		Token:            token,
		OrganizationName: "Acme",
		Password:         password,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.Organization.Slug, "acme-"))
	require.Equal(t, "TRIAL", res.Subscription.Plan)
	require.Equal(t, "OWNER", res.User.Role)

	_, err = s.Client.VerifyOnboarding(ctx, token)
	requireStatus(t, err, http.StatusNotFound)

	owner, err := s.Client.Login(ctx, "owner@acme.com", password)
	require.NoError(t, err)

	me, err := owner.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, me.User.ID)
	require.Len(t, me.Memberships, 1)
	require.Equal(t, "OWNER", me.Memberships[0].Role)
	require.Equal(t, res.Organization.Slug, me.Memberships[0].OrganizationSlug)

	sub, err := owner.GetSubscription(ctx, res.Organization.ID)
	require.NoError(t, err)
	require.Equal(t, "TRIALING", sub.Status)
}

func TestInvitationFlow(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	admin := s.admin(t)

	org, owner := s.onboard(t, admin, "owner@acme.com", "Acme")
	orgID := org.Organization.ID

	created, err := owner.CreateInvitation(ctx, orgID, consolesdk.CreateInvitationRequest{Email: "bob@acme.com", Role: "USER"})
	require.NoError(t, err)
	require.Equal(t, "PENDING", created.Invitation.Status)
	token := acceptToken(t, created.AcceptURL)

	_, err = owner.CreateInvitation(ctx, orgID, consolesdk.CreateInvitationRequest{Email: "bob@acme.com", Role: "USER"})
	requireStatus(t, err, http.StatusConflict)

	details, err := s.Client.GetInvitation(ctx, token)
	require.NoError(t, err)
	require.False(t, details.UserExists)
	require.Equal(t, orgID, details.Organization.ID)

	_, err = s.Client.AcceptInvitation(ctx, token, consolesdk.AcceptInvitationRequest{})
	requireStatus(t, err, http.StatusBadRequest)

	name, pw := "Bob", password
	accepted, err := s.Client.AcceptInvitation(ctx, token, consolesdk.AcceptInvitationRequest{Name: &name, Password: &pw})
	require.NoError(t, err)
	require.True(t, accepted.UserCreated)
	require.Equal(t, "bob@acme.com", accepted.User.Email)

	_, err = s.Client.AcceptInvitation(ctx, token, consolesdk.AcceptInvitationRequest{Name: &name, Password: &pw})
	requireStatus(t, err, http.StatusBadRequest)

	members, err := owner.ListMembers(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	invs, err := owner.ListInvitations(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, invs, 1)
	require.Equal(t, "ACCEPTED", invs[0].Status)

	bob, err := s.Client.Login(ctx, "bob@acme.com", password)
	require.NoError(t, err)

	// Plain members cannot invite or remove
	_, err = bob.CreateInvitation(ctx, orgID, consolesdk.CreateInvitationRequest{Email: "carol@acme.com", Role: "USER"})
	requireStatus(t, err, http.StatusForbidden)
	requireStatus(t, bob.RemoveMember(ctx, orgID, org.User.ID), http.StatusForbidden)

	// Owner removes bob; owner cannot remove themselves
	requireStatus(t, owner.RemoveMember(ctx, orgID, org.User.ID), http.StatusBadRequest)
	require.NoError(t, owner.RemoveMember(ctx, orgID, accepted.User.ID))

	_, err = admin.Me(ctx)
	require.NoError(t, err)
}

func TestInvitationCancel(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	admin := s.admin(t)

	org, owner := s.onboard(t, admin, "owner@acme.com", "Acme")
	created, err := owner.CreateInvitation(ctx, org.Organization.ID, consolesdk.CreateInvitationRequest{Email: "bob@acme.com", Role: "ADMIN"})
	require.NoError(t, err)

	require.NoError(t, owner.CancelInvitation(ctx, org.Organization.ID, created.Invitation.ID))
	requireStatus(t, owner.CancelInvitation(ctx, org.Organization.ID, created.Invitation.ID), http.StatusBadRequest)

	details, err := s.Client.GetInvitation(ctx, acceptToken(t, created.AcceptURL))
	require.NoError(t, err)
	require.Equal(t, "CANCELLED", details.Invitation.Status)

	// Platform admins are not members of the organization
	requireStatus(t, admin.CancelInvitation(ctx, org.Organization.ID, created.Invitation.ID), http.StatusForbidden)
}

func TestErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	admin := s.admin(t)
	_, owner := s.onboard(t, admin, "owner@acme.com", "Acme")

	t.Run("missing bearer token", func(t *testing.T) {
		resp, err := http.Get(s.URL + "/v1/me")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		resp, err := http.Post(s.URL+"/v1/waitlist", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("admin route as customer", func(t *testing.T) {
		_, err := owner.ListWaitlist(ctx, "")
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("unknown waitlist status", func(t *testing.T) {
		_, err := owner.ListWaitlist(ctx, "MAYBE")
		require.Error(t, err)
	})

	t.Run("unknown invitation", func(t *testing.T) {
		_, err := s.Client.GetInvitation(ctx, strings.Repeat("ab", 32))
		requireStatus(t, err, http.StatusNotFound)
		require.True(t, consolesdk.IsNotFound(err))
	})

	t.Run("missing onboarding token", func(t *testing.T) {
		_, err := s.Client.VerifyOnboarding(ctx, "")
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Client.Login(ctx, "owner@acme.com", "wrong-password")
		requireStatus(t, err, http.StatusUnauthorized)
		require.True(t, consolesdk.IsUnauthorized(err))
	})

	t.Run("bootstrap twice", func(t *testing.T) {
		_, err := s.Client.Bootstrap(ctx, bootstrapToken, consolesdk.BootstrapRequest{
			Email: "second@breachwatch.test", Name: "Second", Password: password,
		})
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("bootstrap wrong token", func(t *testing.T) {
		_, err := s.Client.Bootstrap(ctx, "nope", consolesdk.BootstrapRequest{
			Email: "second@breachwatch.test", Name: "Second", Password: password,
		})
		requireStatus(t, err, http.StatusForbidden)
	})
}

func TestMFALogin(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	admin := s.admin(t)
	_, owner := s.onboard(t, admin, "owner@acme.com", "Acme")

	enrollment, err := owner.EnrollTOTP(ctx)
	require.NoError(t, err)
	require.Equal(t, "BreachWatch", enrollment.Issuer)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	backupCodes, err := owner.VerifyTOTP(ctx, code)
	require.NoError(t, err)
	require.NotEmpty(t, backupCodes)

	_, err = owner.EnrollTOTP(ctx)
	requireStatus(t, err, http.StatusConflict)

	_, err = s.Client.Login(ctx, "owner@acme.com", password)
	var challenge *consolesdk.MFARequiredError
	require.True(t, errors.As(err, &challenge), "expected MFA challenge, got %v", err)
	require.Contains(t, challenge.Challenge.Methods, "totp")

	_, err = s.Client.CompleteMFA(ctx, challenge.Challenge.MFAToken, "not-a-code")
	requireStatus(t, err, http.StatusUnauthorized)

	sess, err := s.Client.CompleteMFA(ctx, challenge.Challenge.MFAToken, backupCodes[0])
	require.NoError(t, err)

	me, err := sess.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.User.MFAEnabled)

	// The challenge is spent
	_, err = s.Client.CompleteMFA(ctx, challenge.Challenge.MFAToken, backupCodes[1])
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = admin.Me(ctx)
	require.NoError(t, err)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	admin := s.admin(t)
	_, owner := s.onboard(t, admin, "owner@acme.com", "Acme")

	for _, name := range []string{"Alpha Forum", "Beta Shop", "Gamma Social"} {
		_, err := admin.CreateCatalogEntry(ctx, consolesdk.CreateCatalogEntryRequest{
			Name:        name,
			RecordCount: 1000,
			DataClasses: []string{"Email addresses", "Passwords"},
		})
		require.NoError(t, err)
	}

	_, err := owner.CreateCatalogEntry(ctx, consolesdk.CreateCatalogEntryRequest{Name: "Delta", RecordCount: 1})
	requireStatus(t, err, http.StatusForbidden)

	_, err = admin.CreateCatalogEntry(ctx, consolesdk.CreateCatalogEntryRequest{Name: "Alpha Forum", RecordCount: 1})
	requireStatus(t, err, http.StatusConflict)

	first, err := owner.SearchCatalog(ctx, "", "", 2)
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := owner.SearchCatalog(ctx, "", first.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	require.Empty(t, second.NextCursor)

	hits, err := owner.SearchCatalog(ctx, "shop", "", 0)
	require.NoError(t, err)
	require.Len(t, hits.Items, 1)

	entry, err := owner.GetCatalogEntry(ctx, hits.Items[0].ID)
	require.NoError(t, err)
	require.Equal(t, "beta-shop", entry.Slug)

	_, err = owner.GetCatalogEntry(ctx, "missing")
	requireStatus(t, err, http.StatusNotFound)

	_, err = owner.SearchCatalog(ctx, "", "garbage", 0)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	live, err := s.Client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.Client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)

	jwks, err := s.Client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "EdDSA", jwks.Keys[0].Alg)

	resp, err := http.Get(s.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
