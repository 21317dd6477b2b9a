package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
	"github.com/aussiebroadwan/breachwatch/pkg/jwtx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"

	_ "github.com/aussiebroadwan/breachwatch/api/console" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	WaitlistService   *service.WaitlistService
	OnboardingService *service.OnboardingService
	InvitationService *service.InvitationService
	TeamService       *service.TeamService
	SessionService    *service.SessionService
	MFAService        *service.MFAService
	CatalogService    *service.CatalogService
	BootstrapService  *service.BootstrapService
}

func NewRouter(keys *jwtx.KeyManager, buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Request logger first so the tracing middleware can tag it
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		tracex.HTTPMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerWaitlist()
	r.registerOnboarding()
	r.registerInvitations()
	r.registerTeam()
	r.registerSessions()
	r.registerMFA()
	r.registerCatalog()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			BreachWatch Console API
//	@version		0.1.0
//	@description	Customer console for BreachWatch: waitlist, onboarding, organizations, team invitations, MFA and the leaked database catalog.
//	@description
//	@description				Access tokens are EdDSA-signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/breachwatch
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps h with bearer authentication and a per-user rate limit.
func (r *Router) authed(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.keys.Verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerWaitlist() {
	h := &WaitlistHandler{WaitlistService: r.WaitlistService}

	// POST /waitlist - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle("POST /v1/waitlist",
		httpx.Chain(http.HandlerFunc(h.HandleJoin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/admin/waitlist", r.authed(h.HandleList, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/admin/waitlist/{id}", r.authed(h.HandleGet, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/admin/waitlist/{id}", r.authed(h.HandleSetStatus, httpx.ModerateLimit))
}

func (r *Router) registerOnboarding() {
	h := &OnboardingHandler{OnboardingService: r.OnboardingService}

	r.Mux.Handle("GET /v1/onboarding/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/onboarding/complete",
		httpx.Chain(http.HandlerFunc(h.HandleComplete),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/organizations/{orgID}/invitations", r.authed(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/organizations/{orgID}/invitations", r.authed(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/organizations/{orgID}/invitations/{id}", r.authed(h.HandleCancel, httpx.ModerateLimit))

	// Token links are public; the token itself is the credential
	r.Mux.Handle("GET /v1/invitations/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/{token}/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTeam() {
	h := &TeamHandler{TeamService: r.TeamService}

	r.Mux.Handle("GET /v1/organizations/{orgID}/members", r.authed(h.HandleListMembers, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/organizations/{orgID}/members/{userID}", r.authed(h.HandleRemoveMember, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/organizations/{orgID}/subscription", r.authed(h.HandleSubscription, httpx.LenientLimit))
}

func (r *Router) registerSessions() {
	h := &SessionHandler{SessionService: r.SessionService}

	// POST /auth/login - rate limited by IP + email to slow credential stuffing
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/auth/mfa",
		httpx.Chain(http.HandlerFunc(h.HandleMFA),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/me", r.authed(h.HandleMe, httpx.LenientLimit))
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	// Code-checking endpoints get the strict limit to stop TOTP guessing
	r.Mux.Handle("POST /v1/mfa/totp/enroll", r.authed(h.HandleEnroll, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/mfa/totp/verify", r.authed(h.HandleVerify, httpx.StrictLimit))
	r.Mux.Handle("POST /v1/mfa/backup-codes", r.authed(h.HandleRegenerateBackupCodes, httpx.StrictLimit))
	r.Mux.Handle("DELETE /v1/mfa/totp", r.authed(h.HandleRemove, httpx.StrictLimit))
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{CatalogService: r.CatalogService}

	r.Mux.Handle("GET /v1/catalog", r.authed(h.HandleSearch, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/catalog/{id}", r.authed(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/admin/catalog", r.authed(h.HandleCreate, httpx.ModerateLimit))
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys.KeySet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
