// Package notify delivers the console's outbound emails.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
)

type ApprovalEmail struct {
	To            string
	Name          string
	OnboardingURL string
	ExpiresAt     time.Time
}

type InvitationEmail struct {
	To               string
	OrganizationName string
	InviterName      string
	Role             string
	AcceptURL        string
	ExpiresAt        time.Time
}

// Notifier sends lifecycle emails. Delivery is best effort: callers log a
// failure and carry on.
type Notifier interface {
	SendApprovalEmail(ctx context.Context, msg ApprovalEmail) error
	SendInvitationEmail(ctx context.Context, msg InvitationEmail) error
}

// LogNotifier writes emails to the request logger instead of sending them.
// Links are logged in full, so it is only suitable for development.
type LogNotifier struct{}

func (LogNotifier) SendApprovalEmail(ctx context.Context, msg ApprovalEmail) error {
	slogx.FromContext(ctx).Info("approval email",
		slog.String("to", msg.To),
		slog.String("onboarding_url", msg.OnboardingURL),
		slog.Time("expires_at", msg.ExpiresAt),
	)
	return nil
}

func (LogNotifier) SendInvitationEmail(ctx context.Context, msg InvitationEmail) error {
	slogx.FromContext(ctx).Info("invitation email",
		slog.String("to", msg.To),
		slog.String("organization", msg.OrganizationName),
		slog.String("role", msg.Role),
		slog.String("accept_url", msg.AcceptURL),
		slog.Time("expires_at", msg.ExpiresAt),
	)
	return nil
}
