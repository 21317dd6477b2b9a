package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports that a transaction lost a race (serialization
	// failure or an optimistic update matching zero rows) and was rolled back.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so that a Tx can hand out the same repositories bound to the
// transaction.
type Store interface {
	Waitlist() Waitlist
	Invitations() Invitations
	Organizations() Organizations
	Subscriptions() Subscriptions
	Users() Users
	TeamMembers() TeamMembers
	Catalog() Catalog
	BackupCodes() BackupCodes
	MFASessions() MFASessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// Only the repositories of the Tx passed to fn may be used inside fn.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Waitlist interface {
	// CreateEntry inserts a new entry; ErrAlreadyExists on duplicate email.
	CreateEntry(ctx context.Context, e domain.WaitlistEntry) error

	// GetEntryByID returns an entry by id.
	GetEntryByID(ctx context.Context, id string) (domain.WaitlistEntry, error)

	// GetEntryByTokenHash looks up the entry holding an onboarding token.
	GetEntryByTokenHash(ctx context.Context, tokenHash string) (domain.WaitlistEntry, error)

	// ListEntries returns entries oldest first, optionally filtered by status.
	ListEntries(ctx context.Context, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error)

	// UpdateStatus sets status only; token columns are left untouched.
	UpdateStatus(ctx context.Context, id string, status domain.WaitlistStatus, now time.Time) error

	// Approve moves a non-APPROVED entry to APPROVED with a fresh token.
	// Returns false (and changes nothing) if the entry was already APPROVED,
	// so racing approvals issue exactly one token.
	Approve(ctx context.Context, id, tokenHash string, expiresAt, now time.Time) (bool, error)

	// ClearToken clears the onboarding token, but only while the entry still
	// holds tokenHash. ErrConflict when it no longer does.
	ClearToken(ctx context.Context, id, tokenHash string, now time.Time) error
}

type Invitations interface {
	// CreateInvitation inserts a new invitation.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash looks up an invitation by its token fingerprint.
	GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error)

	// ListByOrganization returns an organization's invitations, newest first.
	ListByOrganization(ctx context.Context, orgID string) ([]domain.Invitation, error)

	// FindPending returns a stored-PENDING invitation for email in orgID.
	FindPending(ctx context.Context, orgID, email string) (domain.Invitation, error)

	// MarkExpired moves a PENDING invitation to EXPIRED. Returns false if it
	// was no longer PENDING.
	MarkExpired(ctx context.Context, id string, now time.Time) (bool, error)

	// MarkAccepted moves a PENDING invitation to ACCEPTED. ErrConflict if it
	// was no longer PENDING.
	MarkAccepted(ctx context.Context, id, userID string, at time.Time) error

	// Cancel moves a PENDING invitation to CANCELLED. ErrConflict if it was
	// no longer PENDING.
	Cancel(ctx context.Context, id string, now time.Time) error

	// ExpireStale moves every PENDING invitation past its expiry to EXPIRED
	// and returns how many changed.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type Organizations interface {
	// CreateOrganization inserts an organization; ErrAlreadyExists on slug clash.
	CreateOrganization(ctx context.Context, o domain.Organization) error

	// GetOrganizationByID returns an organization by id.
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// GetOrganizationBySlug returns an organization by slug.
	GetOrganizationBySlug(ctx context.Context, slug string) (domain.Organization, error)
}

type Subscriptions interface {
	// CreateSubscription inserts the single subscription of an organization.
	CreateSubscription(ctx context.Context, s domain.Subscription) error

	// GetByOrganization returns the organization's subscription.
	GetByOrganization(ctx context.Context, orgID string) (domain.Subscription, error)
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used by login and by both token flows.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user; ErrAlreadyExists on duplicate email.
	CreateUser(ctx context.Context, u domain.User) error

	// CountByRole counts users holding a platform role.
	CountByRole(ctx context.Context, role domain.UserRole) (int, error)

	// UpdateMFASecret stores a pending (not yet enabled) TOTP secret.
	UpdateMFASecret(ctx context.Context, userID, secret string, now time.Time) error

	// EnableMFA marks MFA enabled at the given instant.
	EnableMFA(ctx context.Context, userID string, at time.Time) error

	// DisableMFA clears the TOTP secret and enabled timestamp.
	DisableMFA(ctx context.Context, userID string, now time.Time) error

	// SetOrganization repoints the user's primary affiliation. Nil clears it.
	SetOrganization(ctx context.Context, userID string, orgID *string, now time.Time) error
}

type TeamMembers interface {
	// CreateTeamMember inserts a membership; ErrAlreadyExists if the user is
	// already a member of the organization.
	CreateTeamMember(ctx context.Context, m domain.TeamMember) error

	// GetTeamMember returns the membership of userID in orgID.
	GetTeamMember(ctx context.Context, orgID, userID string) (domain.TeamMember, error)

	// ListByOrganization returns members joined with user details.
	ListByOrganization(ctx context.Context, orgID string) ([]domain.MemberView, error)

	// ListByUser returns a user's memberships joined with organization details.
	ListByUser(ctx context.Context, userID string) ([]domain.MembershipView, error)

	// CountByUser counts a user's memberships.
	CountByUser(ctx context.Context, userID string) (int, error)

	// DeleteTeamMember removes a membership.
	DeleteTeamMember(ctx context.Context, orgID, userID string) error
}

type Catalog interface {
	// CreateEntry inserts a catalog entry; ErrAlreadyExists on slug clash.
	CreateEntry(ctx context.Context, db domain.LeakedDatabase) error

	// GetEntryByID returns a catalog entry by id.
	GetEntryByID(ctx context.Context, id string) (domain.LeakedDatabase, error)

	// Search returns up to q.Limit entries with id > q.After, ordered by id.
	Search(ctx context.Context, q domain.CatalogQuery) ([]domain.LeakedDatabase, error)
}

type BackupCodes interface {
	// CreateBackupCode stores a fingerprinted backup code.
	CreateBackupCode(ctx context.Context, userID, codeHash string) error

	// ConsumeBackupCode deletes a matching code and reports whether one existed.
	ConsumeBackupCode(ctx context.Context, userID, codeHash string) (bool, error)

	// DeleteAllBackupCodes removes every code of a user.
	DeleteAllBackupCodes(ctx context.Context, userID string) error

	// CountUserBackupCodes counts a user's remaining codes.
	CountUserBackupCodes(ctx context.Context, userID string) (int, error)
}

type MFASessions interface {
	// CreateMFASession inserts a pending challenge.
	CreateMFASession(ctx context.Context, s domain.MFASession) error

	// GetMFASession returns a challenge by id.
	GetMFASession(ctx context.Context, id string) (domain.MFASession, error)

	// IncrementMFASessionAttempts bumps attempts and returns the new row.
	IncrementMFASessionAttempts(ctx context.Context, id string) (domain.MFASession, error)

	// DeleteMFASession removes a challenge.
	DeleteMFASession(ctx context.Context, id string) error

	// DeleteExpiredMFASessions removes challenges expired at now.
	DeleteExpiredMFASessions(ctx context.Context, now time.Time) (int64, error)
}
