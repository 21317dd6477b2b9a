package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

type usersRepo struct {
	q *queries
}

const userColumns = `id, email, name, password_hash, role, organization_id, mfa_secret, mfa_enabled_at, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                   domain.User
		role                string
		passwordHash, orgID sql.NullString
		mfaSecret           sql.NullString
		mfaEnabledAt        sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &passwordHash, &role, &orgID, &mfaSecret, &mfaEnabledAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.UserRole(role)
	u.PasswordHash = mapNullStringPtr(passwordHash)
	u.OrganizationID = mapNullStringPtr(orgID)
	u.MFASecret = mapNullStringPtr(mfaSecret)
	u.MFAEnabledAt = mapNullTimePtr(mfaEnabledAt)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, r.q.mapErr(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		return domain.User{}, r.q.mapErr(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, mapOptionalString(u.PasswordHash), string(u.Role),
		mapOptionalString(u.OrganizationID), mapOptionalString(u.MFASecret), mapOptionalTime(u.MFAEnabledAt),
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return err
}

func (r *usersRepo) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	var n int
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, string(role)).Scan(&n); err != nil {
		return 0, r.q.mapErr(err)
	}
	return n, nil
}

func (r *usersRepo) update(ctx context.Context, query string, args ...any) error {
	n, err := r.q.execAffected(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID, secret string, now time.Time) error {
	return r.update(ctx, `UPDATE users SET mfa_secret = ?, updated_at = ? WHERE id = ?`, secret, now.UTC(), userID)
}

func (r *usersRepo) EnableMFA(ctx context.Context, userID string, at time.Time) error {
	return r.update(ctx,
		`UPDATE users SET mfa_enabled_at = ?, updated_at = ? WHERE id = ? AND mfa_secret IS NOT NULL`,
		at.UTC(), at.UTC(), userID,
	)
}

func (r *usersRepo) DisableMFA(ctx context.Context, userID string, now time.Time) error {
	return r.update(ctx,
		`UPDATE users SET mfa_secret = NULL, mfa_enabled_at = NULL, updated_at = ? WHERE id = ?`,
		now.UTC(), userID,
	)
}

func (r *usersRepo) SetOrganization(ctx context.Context, userID string, orgID *string, now time.Time) error {
	return r.update(ctx,
		`UPDATE users SET organization_id = ?, updated_at = ? WHERE id = ?`,
		mapOptionalString(orgID), now.UTC(), userID,
	)
}
