package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/idx"
	"github.com/aussiebroadwan/breachwatch/pkg/jwtx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"
)

const (
	// MaxMFAAttempts is the maximum number of failed MFA attempts allowed per session
	MaxMFAAttempts = 5

	DefaultMFASessionTTL = 5 * time.Minute
)

type SessionService struct {
	Store store.Store
	Keys  *jwtx.KeyManager
	Clock Clock

	MFASessionTTL time.Duration // zero means 5 minutes
}

// LoginResult holds either an access token or, when the user has MFA
// enabled, a challenge to answer through CompleteMFA.
type LoginResult struct {
	Token *jwtx.IssuedToken

	MFARequired  bool
	MFAToken     string
	MFAMethods   []string
	MFAExpiresAt time.Time
}

type Profile struct {
	User        domain.User
	Memberships []domain.MembershipView
}

// Login checks email and password.
func (s *SessionService) Login(ctx context.Context, email, password string) (res LoginResult, err error) {
	ctx, span := tracex.Start(ctx, "SessionService.Login")
	defer func() { tracex.End(span, err) }()
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, validationError("email and password are required")
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		l.Info("login failed", slog.String("reason", "unknown_user"))
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, internalError(err)
	}
	if u.PasswordHash == nil {
		l.Info("login failed", slog.String("reason", "no_password"), slog.String("user_id", u.ID))
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, *u.PasswordHash); err != nil {
		l.Info("login failed", slog.String("reason", "bad_password"), slog.String("user_id", u.ID))
		return LoginResult{}, ErrInvalidCredentials
	}

	now := s.Clock.now()
	if u.MFAEnabled() {
		session := domain.MFASession{
			ID:        idx.NewAt(now).String(),
			UserID:    u.ID,
			CreatedAt: now,
			ExpiresAt: now.Add(s.mfaTTL()),
		}
		if err := s.Store.MFASessions().CreateMFASession(ctx, session); err != nil {
			return LoginResult{}, internalError(err)
		}
		l.Info("mfa challenge issued", slog.String("user_id", u.ID))
		return LoginResult{
			MFARequired:  true,
			MFAToken:     session.ID,
			MFAMethods:   []string{domain.MFAMethodTOTP, domain.MFAMethodBackupCode},
			MFAExpiresAt: session.ExpiresAt,
		}, nil
	}

	tok, err := s.Keys.Issue(u.ID, idx.NewAt(now).String(), u.Email, u.Name, []string{jwtx.AMRPassword}, now)
	if err != nil {
		return LoginResult{}, internalError(err)
	}
	l.Info("login succeeded", slog.String("user_id", u.ID))
	return LoginResult{Token: &tok}, nil
}

// CompleteMFA answers a login challenge with a TOTP code or a backup code.
// A backup code is consumed on use.
func (s *SessionService) CompleteMFA(ctx context.Context, mfaToken, code string) (tok jwtx.IssuedToken, err error) {
	ctx, span := tracex.Start(ctx, "SessionService.CompleteMFA")
	defer func() { tracex.End(span, err) }()
	l := slogx.FromContext(ctx)

	code = strings.TrimSpace(code)
	if mfaToken == "" || code == "" {
		return jwtx.IssuedToken{}, validationError("mfaToken and code are required")
	}

	// 1. Retrieve MFA session
	session, err := s.Store.MFASessions().GetMFASession(ctx, mfaToken)
	if err != nil {
		return jwtx.IssuedToken{}, notFoundOr(err, ErrInvalidMFAToken)
	}

	// 2. Check expiry and attempt budget
	now := s.Clock.now()
	if !now.Before(session.ExpiresAt) {
		_ = s.Store.MFASessions().DeleteMFASession(ctx, mfaToken)
		return jwtx.IssuedToken{}, ErrMFASessionExpired
	}
	if session.Attempts >= MaxMFAAttempts {
		_ = s.Store.MFASessions().DeleteMFASession(ctx, mfaToken)
		l.Warn("MFA session exceeded max attempts", slog.String("user_id", session.UserID))
		return jwtx.IssuedToken{}, ErrMFAAttemptsExceeded
	}

	u, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		return jwtx.IssuedToken{}, notFoundOr(err, ErrInvalidMFAToken)
	}

	// 3. Validate the second factor
	var valid bool
	if isTOTPCode(code) {
		valid = u.MFASecret != nil && validateTOTP(code, *u.MFASecret, now)
	} else {
		valid, err = s.Store.BackupCodes().ConsumeBackupCode(ctx, u.ID, cryptox.FingerprintToken(code))
		if err != nil {
			return jwtx.IssuedToken{}, internalError(err)
		}
	}

	if !valid {
		updated, err := s.Store.MFASessions().IncrementMFASessionAttempts(ctx, mfaToken)
		if err != nil {
			return jwtx.IssuedToken{}, notFoundOr(err, ErrInvalidMFAToken)
		}
		l.Warn("MFA validation failed", slog.String("user_id", u.ID), slog.Int("attempts", updated.Attempts))
		if updated.Attempts >= MaxMFAAttempts {
			_ = s.Store.MFASessions().DeleteMFASession(ctx, mfaToken)
			return jwtx.IssuedToken{}, ErrMFAAttemptsExceeded
		}
		return jwtx.IssuedToken{}, ErrInvalidMFACode
	}

	// 4. The challenge is single-use
	if err := s.Store.MFASessions().DeleteMFASession(ctx, mfaToken); err != nil {
		return jwtx.IssuedToken{}, notFoundOr(err, ErrInvalidMFAToken)
	}

	amr := []string{jwtx.AMRPassword, jwtx.AMROTP, jwtx.AMRMFA}
	tok, err = s.Keys.Issue(u.ID, session.ID, u.Email, u.Name, amr, now)
	if err != nil {
		return jwtx.IssuedToken{}, internalError(err)
	}
	l.Info("login succeeded", slog.String("user_id", u.ID), slog.Bool("mfa", true))
	return tok, nil
}

// Me returns the actor and their memberships.
func (s *SessionService) Me(ctx context.Context, actor Actor) (Profile, error) {
	if actor.Anonymous() {
		return Profile{}, ErrUnauthenticated
	}
	u, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if err != nil {
		return Profile{}, notFoundOr(err, ErrUnauthenticated)
	}
	memberships, err := s.Store.TeamMembers().ListByUser(ctx, u.ID)
	if err != nil {
		return Profile{}, mapStoreErr(err, nil)
	}
	return Profile{User: u, Memberships: memberships}, nil
}

func (s *SessionService) mfaTTL() time.Duration {
	if s.MFASessionTTL <= 0 {
		return DefaultMFASessionTTL
	}
	return s.MFASessionTTL
}
