package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

type mfaSessionsRepo struct {
	q *queries
}

const mfaSessionColumns = `id, user_id, attempts, created_at, expires_at`

func scanMFASession(row rowScanner) (domain.MFASession, error) {
	var s domain.MFASession
	if err := row.Scan(&s.ID, &s.UserID, &s.Attempts, &s.CreatedAt, &s.ExpiresAt); err != nil {
		return domain.MFASession{}, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = s.ExpiresAt.UTC()
	return s, nil
}

func (r *mfaSessionsRepo) CreateMFASession(ctx context.Context, s domain.MFASession) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO mfa_sessions (`+mfaSessionColumns+`) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Attempts, s.CreatedAt.UTC(), s.ExpiresAt.UTC(),
	)
	return err
}

func (r *mfaSessionsRepo) GetMFASession(ctx context.Context, id string) (domain.MFASession, error) {
	s, err := scanMFASession(r.q.queryRow(ctx, `SELECT `+mfaSessionColumns+` FROM mfa_sessions WHERE id = ?`, id))
	if err != nil {
		return domain.MFASession{}, r.q.mapErr(err)
	}
	return s, nil
}

func (r *mfaSessionsRepo) IncrementMFASessionAttempts(ctx context.Context, id string) (domain.MFASession, error) {
	n, err := r.q.execAffected(ctx, `UPDATE mfa_sessions SET attempts = attempts + 1 WHERE id = ?`, id)
	if err != nil {
		return domain.MFASession{}, err
	}
	if n == 0 {
		return domain.MFASession{}, store.ErrNotFound
	}
	return r.GetMFASession(ctx, id)
}

func (r *mfaSessionsRepo) DeleteMFASession(ctx context.Context, id string) error {
	n, err := r.q.execAffected(ctx, `DELETE FROM mfa_sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *mfaSessionsRepo) DeleteExpiredMFASessions(ctx context.Context, now time.Time) (int64, error) {
	return r.q.execAffected(ctx, `DELETE FROM mfa_sessions WHERE expires_at < ?`, now.UTC())
}
