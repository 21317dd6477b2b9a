package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

type invitationsRepo struct {
	q *queries
}

const invitationColumns = `id, token_hash, email, role, organization_id, invited_by_id, status, expires_at, accepted_at, invited_user_id, created_at, updated_at`

func scanInvitation(row rowScanner) (domain.Invitation, error) {
	var (
		inv           domain.Invitation
		role, status  string
		acceptedAt    sql.NullTime
		invitedUserID sql.NullString
	)
	err := row.Scan(
		&inv.ID, &inv.TokenHash, &inv.Email, &role, &inv.OrganizationID, &inv.InvitedByID,
		&status, &inv.ExpiresAt, &acceptedAt, &invitedUserID, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Role = domain.MemberRole(role)
	inv.Status = domain.InvitationStatus(status)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.InvitedUserID = mapNullStringPtr(invitedUserID)
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO invitations (`+invitationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TokenHash, inv.Email, string(inv.Role), inv.OrganizationID, inv.InvitedByID,
		string(inv.Status), inv.ExpiresAt.UTC(), mapOptionalTime(inv.AcceptedAt),
		mapOptionalString(inv.InvitedUserID), inv.CreatedAt.UTC(), inv.UpdatedAt.UTC(),
	)
	return err
}

func (r *invitationsRepo) getOne(ctx context.Context, where string, arg any) (domain.Invitation, error) {
	row := r.q.queryRow(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE `+where, arg)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, r.q.mapErr(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error) {
	return r.getOne(ctx, `token_hash = ?`, tokenHash)
}

func (r *invitationsRepo) ListByOrganization(ctx context.Context, orgID string) ([]domain.Invitation, error) {
	rows, err := r.q.query(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE organization_id = ? ORDER BY created_at DESC, id DESC`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Invitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) FindPending(ctx context.Context, orgID, email string) (domain.Invitation, error) {
	row := r.q.queryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitations
		  WHERE organization_id = ? AND email = ? AND status = 'PENDING'
		  ORDER BY created_at DESC LIMIT 1`,
		orgID, email,
	)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, r.q.mapErr(err)
	}
	return inv, nil
}

func (r *invitationsRepo) MarkExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	n, err := r.q.execAffected(ctx,
		`UPDATE invitations SET status = 'EXPIRED', updated_at = ? WHERE id = ? AND status = 'PENDING'`,
		now.UTC(), id,
	)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *invitationsRepo) MarkAccepted(ctx context.Context, id, userID string, at time.Time) error {
	n, err := r.q.execAffected(ctx,
		`UPDATE invitations
		    SET status = 'ACCEPTED', accepted_at = ?, invited_user_id = ?, updated_at = ?
		  WHERE id = ? AND status = 'PENDING'`,
		at.UTC(), userID, at.UTC(), id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *invitationsRepo) Cancel(ctx context.Context, id string, now time.Time) error {
	n, err := r.q.execAffected(ctx,
		`UPDATE invitations SET status = 'CANCELLED', updated_at = ? WHERE id = ? AND status = 'PENDING'`,
		now.UTC(), id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *invitationsRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	return r.q.execAffected(ctx,
		`UPDATE invitations SET status = 'EXPIRED', updated_at = ? WHERE status = 'PENDING' AND expires_at < ?`,
		now.UTC(), now.UTC(),
	)
}
