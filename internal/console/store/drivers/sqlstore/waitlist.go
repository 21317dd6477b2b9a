package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

type waitlistRepo struct {
	q *queries
}

const waitlistColumns = `id, email, name, company, status, onboarding_token_hash, token_expires_at, created_at, updated_at`

func scanWaitlistEntry(row rowScanner) (domain.WaitlistEntry, error) {
	var (
		e         domain.WaitlistEntry
		status    string
		company   sql.NullString
		tokenHash sql.NullString
		expiresAt sql.NullTime
	)
	err := row.Scan(&e.ID, &e.Email, &e.Name, &company, &status, &tokenHash, &expiresAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.WaitlistEntry{}, err
	}
	e.Status = domain.WaitlistStatus(status)
	e.Company = mapNullStringPtr(company)
	e.OnboardingTokenHash = mapNullStringPtr(tokenHash)
	e.TokenExpiresAt = mapNullTimePtr(expiresAt)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}

func (r *waitlistRepo) CreateEntry(ctx context.Context, e domain.WaitlistEntry) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO waitlist_entries (`+waitlistColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Email, e.Name, mapOptionalString(e.Company), string(e.Status),
		mapOptionalString(e.OnboardingTokenHash), mapOptionalTime(e.TokenExpiresAt),
		e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
	)
	return err
}

func (r *waitlistRepo) GetEntryByID(ctx context.Context, id string) (domain.WaitlistEntry, error) {
	row := r.q.queryRow(ctx, `SELECT `+waitlistColumns+` FROM waitlist_entries WHERE id = ?`, id)
	e, err := scanWaitlistEntry(row)
	if err != nil {
		return domain.WaitlistEntry{}, r.q.mapErr(err)
	}
	return e, nil
}

func (r *waitlistRepo) GetEntryByTokenHash(ctx context.Context, tokenHash string) (domain.WaitlistEntry, error) {
	row := r.q.queryRow(ctx, `SELECT `+waitlistColumns+` FROM waitlist_entries WHERE onboarding_token_hash = ?`, tokenHash)
	e, err := scanWaitlistEntry(row)
	if err != nil {
		return domain.WaitlistEntry{}, r.q.mapErr(err)
	}
	return e, nil
}

func (r *waitlistRepo) ListEntries(ctx context.Context, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries`
	var args []any
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.WaitlistEntry{}
	for rows.Next() {
		e, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *waitlistRepo) UpdateStatus(ctx context.Context, id string, status domain.WaitlistStatus, now time.Time) error {
	n, err := r.q.execAffected(ctx,
		`UPDATE waitlist_entries SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), now.UTC(), id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *waitlistRepo) Approve(ctx context.Context, id, tokenHash string, expiresAt, now time.Time) (bool, error) {
	n, err := r.q.execAffected(ctx,
		`UPDATE waitlist_entries
		    SET status = 'APPROVED', onboarding_token_hash = ?, token_expires_at = ?, updated_at = ?
		  WHERE id = ? AND status <> 'APPROVED'`,
		tokenHash, expiresAt.UTC(), now.UTC(), id,
	)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *waitlistRepo) ClearToken(ctx context.Context, id, tokenHash string, now time.Time) error {
	n, err := r.q.execAffected(ctx,
		`UPDATE waitlist_entries
		    SET onboarding_token_hash = NULL, token_expires_at = NULL, updated_at = ?
		  WHERE id = ? AND onboarding_token_hash = ?`,
		now.UTC(), id, tokenHash,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}
