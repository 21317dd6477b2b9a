package domain

import "time"

// UserRole is the platform-level role of a user. Organization-level rights
// come from TeamMember.Role.
type UserRole string

const (
	UserRolePlatformAdmin UserRole = "PLATFORM_ADMIN"
	UserRoleOwner         UserRole = "OWNER"
	UserRoleUser          UserRole = "USER"
)

type User struct {
	ID             string
	Email          string
	Name           string
	PasswordHash   *string // nullable, argon2id or bcrypt encoded
	Role           UserRole
	OrganizationID *string    // primary affiliation (nullable)
	MFAEnabledAt   *time.Time // Timestamp when MFA was enabled (nullable)
	MFASecret      *string    // TOTP secret (nullable, base32 encoded)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u User) MFAEnabled() bool { return u.MFAEnabledAt != nil }
