package domain

import "time"

// MFA methods offered at the second login step.
const (
	MFAMethodTOTP       = "totp"
	MFAMethodBackupCode = "backup_code"
)

// MFASession represents a pending MFA challenge between password login and
// the second factor.
type MFASession struct {
	ID        string // ULID (the mfa token)
	UserID    string
	Attempts  int // failed attempts so far, max 5
	CreatedAt time.Time
	ExpiresAt time.Time
}

type MFAEnrollment struct {
	Secret  string // Base32 encoded secret for TOTP
	URL     string // otpauth:// URL for QR code generation
	Issuer  string
	Account string // user email
}
