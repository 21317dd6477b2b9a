package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

// Kind classifies a service failure. The HTTP layer maps each kind onto one
// status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindExpired
	KindState
	KindConflict
	KindForbidden
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindExpired:
		return "expired"
	case KindState:
		return "state"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	}
	return "internal"
}

// Error is the only error type services return to callers. Message is safe
// to show to clients; Err, if set, is the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindInternal for anything that is not a
// *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of err.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Kind != KindInternal {
		return se.Message
	}
	return ErrInternal.Message
}

func newError(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: ErrInternal.Message, Err: err}
}

var (
	ErrInternal        = newError(KindInternal, "internal server error")
	ErrUnauthenticated = newError(KindUnauthenticated, "authentication required")
	ErrForbidden       = newError(KindForbidden, "insufficient permissions")

	// Waitlist
	ErrWaitlistDuplicate = newError(KindConflict, "this email is already on the waitlist")
	ErrWaitlistNotFound  = newError(KindNotFound, "waitlist entry not found")

	// Onboarding
	ErrTokenRequired         = newError(KindValidation, "token is required")
	ErrInvalidOnboardingLink = newError(KindNotFound, "invalid onboarding link")
	ErrOnboardingExpired     = newError(KindExpired, "onboarding link has expired")
	ErrNotApproved           = newError(KindState, "waitlist entry is not approved")
	ErrAccountExists         = newError(KindConflict, "an account with this email already exists")
	ErrOnboardingConflict    = newError(KindConflict, "onboarding link was already used")

	// Invitations
	ErrInvalidInvitationLink = newError(KindNotFound, "invalid invitation link")
	ErrInvitationNotFound    = newError(KindNotFound, "invitation not found")
	ErrInvitationNotPending  = newError(KindState, "invitation is no longer pending")
	ErrInvitationExpired     = newError(KindExpired, "invitation has expired")
	ErrPendingInvitation     = newError(KindConflict, "a pending invitation already exists for this email")
	ErrAlreadyMember         = newError(KindConflict, "user is already a member of this organization")
	ErrMembershipLimit       = newError(KindConflict, "user has reached the maximum number of organizations")
	ErrInvitationConflict    = newError(KindConflict, "invitation was accepted concurrently, please retry")

	// Organizations and members
	ErrOrganizationNotFound = newError(KindNotFound, "organization not found")
	ErrSubscriptionNotFound = newError(KindNotFound, "subscription not found")
	ErrMemberNotFound       = newError(KindNotFound, "member not found")
	ErrCannotRemoveOwner    = newError(KindState, "the organization owner cannot be removed")
	ErrCannotRemoveSelf     = newError(KindState, "you cannot remove yourself from an organization")

	// Sessions and MFA
	ErrInvalidCredentials  = newError(KindUnauthenticated, "invalid credentials")
	ErrInvalidMFAToken     = newError(KindUnauthenticated, "invalid mfa token")
	ErrMFASessionExpired   = newError(KindExpired, "mfa challenge has expired, please log in again")
	ErrMFAAttemptsExceeded = newError(KindUnauthenticated, "too many failed attempts, please log in again")
	ErrInvalidMFACode      = newError(KindUnauthenticated, "invalid mfa code")
	ErrInvalidTOTPCode     = newError(KindValidation, "invalid TOTP code")
	ErrMFANotEnrolled      = newError(KindState, "MFA enrollment not started")
	ErrMFANotEnabled       = newError(KindForbidden, "MFA not enabled for this user")
	ErrMFAAlreadyEnabled   = newError(KindConflict, "MFA already enabled for this user")

	// Bootstrap
	ErrBootstrapDisabled     = newError(KindForbidden, "bootstrap is disabled")
	ErrBootstrapUnauthorized = newError(KindForbidden, "invalid bootstrap token")
	ErrBootstrapAlready      = newError(KindConflict, "system already bootstrapped")

	// Catalog
	ErrCatalogEntryNotFound = newError(KindNotFound, "catalog entry not found")
	ErrCatalogDuplicate     = newError(KindConflict, "a catalog entry with this name already exists")
	ErrInvalidCursor        = newError(KindValidation, "invalid cursor")
)

// mapStoreErr converts a store failure into a service error. Errors that are
// already *Error pass through. Constraint and serialization failures become
// conflict; everything else is internal.
func mapStoreErr(err error, conflict *Error) error {
	var se *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &se):
		return err
	case conflict != nil && (errors.Is(err, store.ErrAlreadyExists) || errors.Is(err, store.ErrConflict)):
		return conflict
	}
	return internalError(err)
}

// notFoundOr maps store.ErrNotFound to nf and anything else through mapStoreErr.
func notFoundOr(err error, nf *Error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nf
	}
	return mapStoreErr(err, nil)
}
