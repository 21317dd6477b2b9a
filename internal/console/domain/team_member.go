package domain

import "time"

type MemberRole string

const (
	MemberOwner MemberRole = "OWNER"
	MemberAdmin MemberRole = "ADMIN"
	MemberUser  MemberRole = "USER"
)

// Rank orders member roles; higher outranks lower. Unknown roles rank 0.
func (r MemberRole) Rank() int {
	switch r {
	case MemberOwner:
		return 3
	case MemberAdmin:
		return 2
	case MemberUser:
		return 1
	}
	return 0
}

// Satisfies reports whether r carries at least the rights of required.
func (r MemberRole) Satisfies(required MemberRole) bool {
	return r.Rank() > 0 && r.Rank() >= required.Rank()
}

// Invitable reports whether an invitation may grant r. Ownership is only
// ever created by onboarding.
func (r MemberRole) Invitable() bool {
	return r == MemberAdmin || r == MemberUser
}

type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberSuspended MemberStatus = "SUSPENDED"
)

type TeamMember struct {
	ID             string
	UserID         string
	OrganizationID string
	Role           MemberRole
	Status         MemberStatus
	JoinedAt       time.Time
}

// MemberView is a membership joined with the user it belongs to.
type MemberView struct {
	TeamMember
	Email string
	Name  string
}

// MembershipView is a membership joined with its organization.
type MembershipView struct {
	TeamMember
	OrganizationName string
	OrganizationSlug string
}
