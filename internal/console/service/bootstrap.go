package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/idx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
)

type BootstrapService struct {
	Store  store.Store
	Hasher cryptox.PasswordHasher
	Token  string // Pre-configured bootstrap token; empty disables bootstrap
	Clock  Clock
}

type BootstrapRequest struct {
	Email    string
	Name     string
	Password string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Users().CountByRole(ctx, domain.UserRolePlatformAdmin)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Bootstrap creates the first platform admin.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (domain.User, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate provided token
	if s.Token == "" {
		return domain.User{}, ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	// 2. Check if already bootstrapped
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.User{}, internalError(err)
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrBootstrapAlready
	}

	// 3. Validate and hash
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.User{}, err
	}
	name, err := requireName("name", req.Name, 1)
	if err != nil {
		return domain.User{}, err
	}
	if err := checkPassword(req.Password); err != nil {
		return domain.User{}, err
	}
	passwordHash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.User{}, internalError(err)
	}

	// 4. Create the admin, re-checking inside the transaction
	now := s.Clock.now()
	admin := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		Name:         name,
		PasswordHash: &passwordHash,
		Role:         domain.UserRolePlatformAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Users().CountByRole(ctx, domain.UserRolePlatformAdmin)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		return domain.User{}, mapStoreErr(err, ErrAccountExists)
	}

	l.Info("bootstrap completed", slog.String("admin_user_id", admin.ID))
	return admin, nil
}
