package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
)

type subscriptionsRepo struct {
	q *queries
}

func (r *subscriptionsRepo) CreateSubscription(ctx context.Context, s domain.Subscription) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO subscriptions (id, organization_id, plan, status, trial_ends_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.OrganizationID, string(s.Plan), string(s.Status), mapOptionalTime(s.TrialEndsAt), s.CreatedAt.UTC(),
	)
	return err
}

func (r *subscriptionsRepo) GetByOrganization(ctx context.Context, orgID string) (domain.Subscription, error) {
	var (
		s            domain.Subscription
		plan, status string
		trialEndsAt  sql.NullTime
	)
	err := r.q.queryRow(ctx,
		`SELECT id, organization_id, plan, status, trial_ends_at, created_at FROM subscriptions WHERE organization_id = ?`,
		orgID,
	).Scan(&s.ID, &s.OrganizationID, &plan, &status, &trialEndsAt, &s.CreatedAt)
	if err != nil {
		return domain.Subscription{}, r.q.mapErr(err)
	}
	s.Plan = domain.SubscriptionPlan(plan)
	s.Status = domain.SubscriptionStatus(status)
	s.TrialEndsAt = mapNullTimePtr(trialEndsAt)
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}
