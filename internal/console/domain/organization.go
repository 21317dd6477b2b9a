package domain

import "time"

type Organization struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SubscriptionPlan string

const (
	PlanTrial      SubscriptionPlan = "TRIAL"
	PlanTeam       SubscriptionPlan = "TEAM"
	PlanEnterprise SubscriptionPlan = "ENTERPRISE"
)

type SubscriptionStatus string

const (
	SubscriptionTrialing  SubscriptionStatus = "TRIALING"
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription is the billing record of an organization. Payment provider
// state lives with the provider; this is only what the console needs to know.
type Subscription struct {
	ID             string
	OrganizationID string
	Plan           SubscriptionPlan
	Status         SubscriptionStatus
	TrialEndsAt    *time.Time
	CreatedAt      time.Time
}
