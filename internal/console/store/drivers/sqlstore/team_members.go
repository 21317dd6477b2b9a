package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

type teamMembersRepo struct {
	q *queries
}

func (r *teamMembersRepo) CreateTeamMember(ctx context.Context, m domain.TeamMember) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO team_members (id, user_id, organization_id, role, status, joined_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.OrganizationID, string(m.Role), string(m.Status), m.JoinedAt.UTC(),
	)
	return err
}

func (r *teamMembersRepo) GetTeamMember(ctx context.Context, orgID, userID string) (domain.TeamMember, error) {
	var (
		m            domain.TeamMember
		role, status string
	)
	err := r.q.queryRow(ctx,
		`SELECT id, user_id, organization_id, role, status, joined_at
		   FROM team_members WHERE organization_id = ? AND user_id = ?`,
		orgID, userID,
	).Scan(&m.ID, &m.UserID, &m.OrganizationID, &role, &status, &m.JoinedAt)
	if err != nil {
		return domain.TeamMember{}, r.q.mapErr(err)
	}
	m.Role = domain.MemberRole(role)
	m.Status = domain.MemberStatus(status)
	m.JoinedAt = m.JoinedAt.UTC()
	return m, nil
}

func (r *teamMembersRepo) ListByOrganization(ctx context.Context, orgID string) ([]domain.MemberView, error) {
	rows, err := r.q.query(ctx,
		`SELECT m.id, m.user_id, m.organization_id, m.role, m.status, m.joined_at, u.email, u.name
		   FROM team_members m
		   JOIN users u ON u.id = m.user_id
		  WHERE m.organization_id = ?
		  ORDER BY m.joined_at, m.id`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MemberView{}
	for rows.Next() {
		var (
			v            domain.MemberView
			role, status string
		)
		if err := rows.Scan(&v.ID, &v.UserID, &v.OrganizationID, &role, &status, &v.JoinedAt, &v.Email, &v.Name); err != nil {
			return nil, err
		}
		v.Role = domain.MemberRole(role)
		v.Status = domain.MemberStatus(status)
		v.JoinedAt = v.JoinedAt.UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *teamMembersRepo) ListByUser(ctx context.Context, userID string) ([]domain.MembershipView, error) {
	rows, err := r.q.query(ctx,
		`SELECT m.id, m.user_id, m.organization_id, m.role, m.status, m.joined_at, o.name, o.slug
		   FROM team_members m
		   JOIN organizations o ON o.id = m.organization_id
		  WHERE m.user_id = ?
		  ORDER BY m.joined_at, m.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.MembershipView{}
	for rows.Next() {
		var (
			v            domain.MembershipView
			role, status string
		)
		if err := rows.Scan(&v.ID, &v.UserID, &v.OrganizationID, &role, &status, &v.JoinedAt, &v.OrganizationName, &v.OrganizationSlug); err != nil {
			return nil, err
		}
		v.Role = domain.MemberRole(role)
		v.Status = domain.MemberStatus(status)
		v.JoinedAt = v.JoinedAt.UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *teamMembersRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM team_members WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, r.q.mapErr(err)
	}
	return n, nil
}

func (r *teamMembersRepo) DeleteTeamMember(ctx context.Context, orgID, userID string) error {
	n, err := r.q.execAffected(ctx,
		`DELETE FROM team_members WHERE organization_id = ? AND user_id = ?`,
		orgID, userID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
