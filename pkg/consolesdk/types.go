package consolesdk

import "time"

// ============================================================================
// Common
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid onboarding link"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ============================================================================
// Accounts and organizations
// ============================================================================

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           string     `json:"role" enums:"PLATFORM_ADMIN,OWNER,USER"`
	OrganizationID *string    `json:"organizationId,omitempty"`
	MFAEnabled     bool       `json:"mfaEnabled"`
	MFAEnabledAt   *time.Time `json:"mfaEnabledAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

type Subscription struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Plan           string     `json:"plan" enums:"TRIAL,TEAM,ENTERPRISE"`
	Status         string     `json:"status" enums:"TRIALING,ACTIVE,CANCELLED"`
	TrialEndsAt    *time.Time `json:"trialEndsAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Membership is one of the caller's own memberships.
type Membership struct {
	OrganizationID   string    `json:"organizationId"`
	OrganizationName string    `json:"organizationName"`
	OrganizationSlug string    `json:"organizationSlug"`
	Role             string    `json:"role" enums:"OWNER,ADMIN,USER"`
	Status           string    `json:"status" enums:"ACTIVE,SUSPENDED"`
	JoinedAt         time.Time `json:"joinedAt"`
}

// Member is a membership as seen from the organization.
type Member struct {
	UserID   string    `json:"userId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role" enums:"OWNER,ADMIN,USER"`
	Status   string    `json:"status" enums:"ACTIVE,SUSPENDED"`
	JoinedAt time.Time `json:"joinedAt"`
}

type MeResponse struct {
	User        User         `json:"user"`
	Memberships []Membership `json:"memberships"`
}

// ============================================================================
// Waitlist and onboarding
// ============================================================================

type JoinWaitlistRequest struct {
	Email   string  `json:"email" example:"a@x.com"`
	Name    string  `json:"name" example:"A"`
	Company *string `json:"company,omitempty"`
}

type WaitlistEntry struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Company        *string    `json:"company,omitempty"`
	Status         string     `json:"status" enums:"PENDING,APPROVED,REJECTED"`
	TokenExpiresAt *time.Time `json:"tokenExpiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type SetWaitlistStatusRequest struct {
	Status string `json:"status" enums:"PENDING,APPROVED,REJECTED"`
}

// SetWaitlistStatusResponse carries the onboarding URL only on the call that
// issued the token.
type SetWaitlistStatusResponse struct {
	WaitlistEntry
	OnboardingURL string `json:"onboardingUrl,omitempty"`
}

type OnboardingVerifyResponse struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Company *string `json:"company,omitempty"`
}

type CompleteOnboardingRequest struct {
	Token            string `json:"token"`
	OrganizationName string `json:"organizationName" example:"Acme"`
	Password         string `json:"password"`
}

type OnboardingResponse struct {
	User         User         `json:"user"`
	Organization Organization `json:"organization"`
	Subscription Subscription `json:"subscription"`
}

// ============================================================================
// Invitations
// ============================================================================

type Invitation struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role" enums:"ADMIN,USER"`
	OrganizationID string     `json:"organizationId"`
	InvitedByID    string     `json:"invitedById"`
	Status         string     `json:"status" enums:"PENDING,ACCEPTED,EXPIRED,CANCELLED"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	AcceptedAt     *time.Time `json:"acceptedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type CreateInvitationRequest struct {
	Email string `json:"email" example:"b@x.com"`
	Role  string `json:"role" enums:"ADMIN,USER"`
}

type CreateInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
	AcceptURL  string     `json:"acceptUrl"`
}

type InvitationDetailsResponse struct {
	Invitation   Invitation   `json:"invitation"`
	Organization Organization `json:"organization"`
	UserExists   bool         `json:"userExists"`
}

// AcceptInvitationRequest needs name and password only when the invited
// email has no account yet.
type AcceptInvitationRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

type AcceptInvitationResponse struct {
	User         User         `json:"user"`
	Organization Organization `json:"organization"`
	UserCreated  bool         `json:"userCreated"`
}

// ============================================================================
// Sessions and MFA
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is an issued access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType" example:"Bearer"`
	ExpiresIn   int       `json:"expiresIn" example:"3600"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// MFAChallenge is returned by login when a second factor is needed.
type MFAChallenge struct {
	MFARequired bool      `json:"mfaRequired"`
	MFAToken    string    `json:"mfaToken"`
	Methods     []string  `json:"methods" example:"totp,backup_code"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type MFALoginRequest struct {
	MFAToken string `json:"mfaToken"`
	Code     string `json:"code"`
}

type TOTPEnrollResponse struct {
	Secret  string `json:"secret"`
	URL     string `json:"url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

type TOTPCodeRequest struct {
	Code string `json:"code" example:"123456"`
}

type MFAStatusResponse struct {
	MFAEnabled bool `json:"mfaEnabled"`
}

// BackupCodesResponse lists freshly generated backup codes. They are shown once.
type BackupCodesResponse struct {
	BackupCodes []string `json:"backupCodes"`
}

// ============================================================================
// Catalog
// ============================================================================

type CatalogEntry struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	BreachDate  *time.Time `json:"breachDate,omitempty"`
	RecordCount int64      `json:"recordCount"`
	DataClasses []string   `json:"dataClasses"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type CatalogPage struct {
	Items      []CatalogEntry `json:"items"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

type CreateCatalogEntryRequest struct {
	Name        string     `json:"name" example:"Example Forum"`
	BreachDate  *time.Time `json:"breachDate,omitempty"`
	RecordCount int64      `json:"recordCount"`
	DataClasses []string   `json:"dataClasses,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ============================================================================
// Bootstrap
// ============================================================================

type BootstrapRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}
