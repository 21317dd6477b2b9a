package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	backupCodeCount = 10                   // Number of backup codes to generate
	backupCodeBytes = cryptox.TokenSize128 // 128-bit entropy for backup codes

	totpPeriod = 30
)

type MFAService struct {
	Store  store.Store
	Issuer string // Issuer name for TOTP (e.g., "BreachWatch")
	Clock  Clock
}

// EnrollTOTP generates a TOTP secret for the actor. MFA is not enabled until
// VerifyTOTP succeeds; enrolling again replaces an unverified secret.
func (s *MFAService) EnrollTOTP(ctx context.Context, actor Actor) (domain.MFAEnrollment, error) {
	u, err := s.user(ctx, actor)
	if err != nil {
		return domain.MFAEnrollment{}, err
	}
	if u.MFAEnabled() {
		return domain.MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Email,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, internalError(fmt.Errorf("generate TOTP key: %w", err))
	}

	// Store the secret (but don't enable MFA yet)
	if err := s.Store.Users().UpdateMFASecret(ctx, u.ID, key.Secret(), s.Clock.now()); err != nil {
		return domain.MFAEnrollment{}, mapStoreErr(err, nil)
	}

	return domain.MFAEnrollment{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: u.Email,
	}, nil
}

// VerifyTOTP confirms enrollment with a code, enables MFA and returns a
// fresh set of backup codes.
func (s *MFAService) VerifyTOTP(ctx context.Context, actor Actor, code string) ([]string, error) {
	u, err := s.user(ctx, actor)
	if err != nil {
		return nil, err
	}
	if u.MFAEnabled() {
		return nil, ErrMFAAlreadyEnabled
	}
	if u.MFASecret == nil || *u.MFASecret == "" {
		return nil, ErrMFANotEnrolled
	}

	now := s.Clock.now()
	if !validateTOTP(code, *u.MFASecret, now) {
		return nil, ErrInvalidTOTPCode
	}

	codes, err := generateBackupCodes()
	if err != nil {
		return nil, internalError(err)
	}

	// Store backup codes and enable MFA in a transaction
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := replaceBackupCodes(ctx, tx, u.ID, codes); err != nil {
			return err
		}
		return tx.Users().EnableMFA(ctx, u.ID, now)
	})
	if err != nil {
		return nil, mapStoreErr(err, nil)
	}

	slogx.FromContext(ctx).Info("mfa enabled", slog.String("user_id", u.ID))
	return codes, nil
}

// RegenerateBackupCodes replaces every backup code after checking a TOTP code.
func (s *MFAService) RegenerateBackupCodes(ctx context.Context, actor Actor, code string) ([]string, error) {
	u, err := s.verifiedUser(ctx, actor, code)
	if err != nil {
		return nil, err
	}

	codes, err := generateBackupCodes()
	if err != nil {
		return nil, internalError(err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return replaceBackupCodes(ctx, tx, u.ID, codes)
	})
	if err != nil {
		return nil, mapStoreErr(err, nil)
	}
	return codes, nil
}

// RemoveMFA disables MFA after checking a TOTP code.
func (s *MFAService) RemoveMFA(ctx context.Context, actor Actor, code string) error {
	u, err := s.verifiedUser(ctx, actor, code)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, u.ID); err != nil {
			return err
		}
		return tx.Users().DisableMFA(ctx, u.ID, s.Clock.now())
	})
	if err != nil {
		return mapStoreErr(err, nil)
	}

	slogx.FromContext(ctx).Info("mfa disabled", slog.String("user_id", u.ID))
	return nil
}

func (s *MFAService) user(ctx context.Context, actor Actor) (domain.User, error) {
	if actor.Anonymous() {
		return domain.User{}, ErrUnauthenticated
	}
	u, err := s.Store.Users().GetUserByID(ctx, actor.UserID)
	if err != nil {
		return domain.User{}, notFoundOr(err, ErrUnauthenticated)
	}
	return u, nil
}

func (s *MFAService) verifiedUser(ctx context.Context, actor Actor, code string) (domain.User, error) {
	u, err := s.user(ctx, actor)
	if err != nil {
		return domain.User{}, err
	}
	if !u.MFAEnabled() || u.MFASecret == nil {
		return domain.User{}, ErrMFANotEnabled
	}
	if !validateTOTP(code, *u.MFASecret, s.Clock.now()) {
		return domain.User{}, ErrInvalidTOTPCode
	}
	return u, nil
}

func replaceBackupCodes(ctx context.Context, tx store.Tx, userID string, codes []string) error {
	if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, userID); err != nil {
		return fmt.Errorf("delete old backup codes: %w", err)
	}
	// Store backup codes as hashes
	for _, code := range codes {
		if err := tx.BackupCodes().CreateBackupCode(ctx, userID, cryptox.FingerprintToken(code)); err != nil {
			return fmt.Errorf("store backup code: %w", err)
		}
	}
	return nil
}

func generateBackupCodes() ([]string, error) {
	codes := make([]string, backupCodeCount)
	for i := range backupCodeCount {
		code, err := cryptox.GenerateToken(backupCodeBytes)
		if err != nil {
			return nil, fmt.Errorf("generate backup code: %w", err)
		}
		codes[i] = code
	}
	return codes, nil
}

func validateTOTP(code, secret string, now time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, now, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// isTOTPCode reports whether code looks like a six digit TOTP code rather
// than a backup code.
func isTOTPCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
