package http

import (
	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
)

func toUser(u domain.User) consolesdk.User {
	return consolesdk.User{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		OrganizationID: u.OrganizationID,
		MFAEnabled:     u.MFAEnabled(),
		MFAEnabledAt:   u.MFAEnabledAt,
		CreatedAt:      u.CreatedAt,
	}
}

func toOrganization(o domain.Organization) consolesdk.Organization {
	return consolesdk.Organization{ID: o.ID, Name: o.Name, Slug: o.Slug, CreatedAt: o.CreatedAt}
}

func toSubscription(s domain.Subscription) consolesdk.Subscription {
	return consolesdk.Subscription{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		Plan:           string(s.Plan),
		Status:         string(s.Status),
		TrialEndsAt:    s.TrialEndsAt,
		CreatedAt:      s.CreatedAt,
	}
}

// toWaitlistEntry never exposes the token fingerprint.
func toWaitlistEntry(e domain.WaitlistEntry) consolesdk.WaitlistEntry {
	return consolesdk.WaitlistEntry{
		ID:             e.ID,
		Email:          e.Email,
		Name:           e.Name,
		Company:        e.Company,
		Status:         string(e.Status),
		TokenExpiresAt: e.TokenExpiresAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toInvitation(inv domain.Invitation) consolesdk.Invitation {
	return consolesdk.Invitation{
		ID:             inv.ID,
		Email:          inv.Email,
		Role:           string(inv.Role),
		OrganizationID: inv.OrganizationID,
		InvitedByID:    inv.InvitedByID,
		Status:         string(inv.Status),
		ExpiresAt:      inv.ExpiresAt,
		AcceptedAt:     inv.AcceptedAt,
		CreatedAt:      inv.CreatedAt,
	}
}

func toMember(m domain.MemberView) consolesdk.Member {
	return consolesdk.Member{
		UserID:   m.UserID,
		Email:    m.Email,
		Name:     m.Name,
		Role:     string(m.Role),
		Status:   string(m.Status),
		JoinedAt: m.JoinedAt,
	}
}

func toMembership(m domain.MembershipView) consolesdk.Membership {
	return consolesdk.Membership{
		OrganizationID:   m.OrganizationID,
		OrganizationName: m.OrganizationName,
		OrganizationSlug: m.OrganizationSlug,
		Role:             string(m.Role),
		Status:           string(m.Status),
		JoinedAt:         m.JoinedAt,
	}
}

func toCatalogEntry(e domain.LeakedDatabase) consolesdk.CatalogEntry {
	classes := e.DataClasses
	if classes == nil {
		classes = []string{}
	}
	return consolesdk.CatalogEntry{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		BreachDate:  e.BreachDate,
		RecordCount: e.RecordCount,
		DataClasses: classes,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// mapSlice converts every element of in with f. It never returns nil so
// empty lists encode as [].
func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
