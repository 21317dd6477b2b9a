package domain

import "time"

type WaitlistStatus string

const (
	WaitlistPending  WaitlistStatus = "PENDING"
	WaitlistApproved WaitlistStatus = "APPROVED"
	WaitlistRejected WaitlistStatus = "REJECTED"
)

// Valid reports whether s is a known waitlist status.
func (s WaitlistStatus) Valid() bool {
	switch s {
	case WaitlistPending, WaitlistApproved, WaitlistRejected:
		return true
	}
	return false
}

type WaitlistEntry struct {
	ID                  string
	Email               string
	Name                string
	Company             *string
	Status              WaitlistStatus
	OnboardingTokenHash *string    // SHA-256 fingerprint, cleared once onboarding completes
	TokenExpiresAt      *time.Time // nullable
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasLiveToken reports whether the entry holds an onboarding token that has
// not yet expired at now.
func (e WaitlistEntry) HasLiveToken(now time.Time) bool {
	return e.OnboardingTokenHash != nil && e.TokenExpiresAt != nil && now.Before(*e.TokenExpiresAt)
}
