package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
)

type organizationsRepo struct {
	q *queries
}

func scanOrganization(row *sql.Row) (domain.Organization, error) {
	var o domain.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Organization{}, err
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO organizations (id, name, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Slug, o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	)
	return err
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	o, err := scanOrganization(r.q.queryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM organizations WHERE id = ?`, id))
	if err != nil {
		return domain.Organization{}, r.q.mapErr(err)
	}
	return o, nil
}

func (r *organizationsRepo) GetOrganizationBySlug(ctx context.Context, slug string) (domain.Organization, error) {
	o, err := scanOrganization(r.q.queryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM organizations WHERE slug = ?`, slug))
	if err != nil {
		return domain.Organization{}, r.q.mapErr(err)
	}
	return o, nil
}
