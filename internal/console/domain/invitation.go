package domain

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "PENDING"
	InvitationAccepted  InvitationStatus = "ACCEPTED"
	InvitationExpired   InvitationStatus = "EXPIRED"
	InvitationCancelled InvitationStatus = "CANCELLED"
)

type Invitation struct {
	ID             string
	TokenHash      string
	Email          string
	Role           MemberRole
	OrganizationID string
	InvitedByID    string
	Status         InvitationStatus
	ExpiresAt      time.Time
	AcceptedAt     *time.Time // nullable
	InvitedUserID  *string    // nullable, set on acceptance
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveStatus is the status a reader should see at now. A stored PENDING
// past its expiry reads as EXPIRED; nothing is written.
func (inv Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if inv.Status == InvitationPending && now.After(inv.ExpiresAt) {
		return InvitationExpired
	}
	return inv.Status
}

// IsStale reports whether the stored status lags the effective one, i.e. the
// row still says PENDING but the invitation has expired.
func (inv Invitation) IsStale(now time.Time) bool {
	return inv.EffectiveStatus(now) != inv.Status
}
