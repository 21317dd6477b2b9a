package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/notify"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/idx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultOnboardingTokenTTLHours = 24

type WaitlistService struct {
	Store    store.Store
	Gate     *Gate
	Notifier notify.Notifier
	Links    Links
	Clock    Clock

	// TokenTTLHours is the onboarding link lifetime. Zero means 24.
	TokenTTLHours int
}

type JoinWaitlistRequest struct {
	Email   string
	Name    string
	Company *string
}

// StatusChange is the outcome of SetStatus. OnboardingURL is set only on the
// call that issued a new token; it is never readable again.
type StatusChange struct {
	Entry         domain.WaitlistEntry
	OnboardingURL string
}

// Join adds a public signup to the waitlist as PENDING.
func (s *WaitlistService) Join(ctx context.Context, req JoinWaitlistRequest) (entry domain.WaitlistEntry, err error) {
	ctx, span := tracex.Start(ctx, "WaitlistService.Join")
	defer func() { tracex.End(span, err) }()

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.WaitlistEntry{}, err
	}
	name, err := requireName("name", req.Name, 1)
	if err != nil {
		return domain.WaitlistEntry{}, err
	}

	now := s.Clock.now()
	entry = domain.WaitlistEntry{
		ID:        idx.NewAt(now).String(),
		Email:     email,
		Name:      name,
		Company:   optionalString(req.Company),
		Status:    domain.WaitlistPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Waitlist().CreateEntry(ctx, entry); err != nil {
		return domain.WaitlistEntry{}, mapStoreErr(err, ErrWaitlistDuplicate)
	}

	slogx.FromContext(ctx).Info("waitlist signup", slog.String("entry_id", entry.ID))
	return entry, nil
}

// SetStatus moves an entry to status. Moving into APPROVED from any other
// status issues an onboarding token and emails the link; approving an
// APPROVED entry changes nothing. Other transitions only write the status.
func (s *WaitlistService) SetStatus(ctx context.Context, actor Actor, id string, status domain.WaitlistStatus) (change StatusChange, err error) {
	ctx, span := tracex.Start(ctx, "WaitlistService.SetStatus",
		attribute.String("waitlist.entry_id", id),
		attribute.String("waitlist.status", string(status)),
	)
	defer func() { tracex.End(span, err) }()
	l := slogx.FromContext(ctx)

	// 1. Only platform admins manage the waitlist
	if err := s.Gate.RequireAdmin(ctx, actor); err != nil {
		return StatusChange{}, err
	}

	// 2. Validate input
	if !status.Valid() {
		return StatusChange{}, validationError("status must be one of PENDING, APPROVED, REJECTED")
	}

	entry, err := s.Store.Waitlist().GetEntryByID(ctx, id)
	if err != nil {
		return StatusChange{}, notFoundOr(err, ErrWaitlistNotFound)
	}
	now := s.Clock.now()

	// 3. Non-approval transitions write the status only
	if status != domain.WaitlistApproved {
		if err := s.Store.Waitlist().UpdateStatus(ctx, id, status, now); err != nil {
			return StatusChange{}, notFoundOr(err, ErrWaitlistNotFound)
		}
		entry, err = s.Store.Waitlist().GetEntryByID(ctx, id)
		if err != nil {
			return StatusChange{}, notFoundOr(err, ErrWaitlistNotFound)
		}
		l.Info("waitlist status changed", slog.String("entry_id", id), slog.String("status", string(status)))
		return StatusChange{Entry: entry}, nil
	}

	// 4. Approving an approved entry is a no-op
	if entry.Status == domain.WaitlistApproved {
		return StatusChange{Entry: entry}, nil
	}

	// 5. Issue the token; the conditional update lets one racing approval win
	raw, hash, err := issueToken()
	if err != nil {
		return StatusChange{}, internalError(err)
	}
	expiresAt := cryptox.ExpiryFrom(now, s.ttlHours())

	issued, err := s.Store.Waitlist().Approve(ctx, id, hash, expiresAt, now)
	if err != nil {
		return StatusChange{}, mapStoreErr(err, nil)
	}

	entry, err = s.Store.Waitlist().GetEntryByID(ctx, id)
	if err != nil {
		return StatusChange{}, notFoundOr(err, ErrWaitlistNotFound)
	}
	if !issued {
		return StatusChange{Entry: entry}, nil
	}

	url := s.Links.Onboarding(raw)
	l.Info("waitlist entry approved", slog.String("entry_id", id), slog.Time("token_expires_at", expiresAt))

	// 6. Notify; a failed email never undoes the approval
	if s.Notifier != nil {
		err := s.Notifier.SendApprovalEmail(ctx, notify.ApprovalEmail{
			To:            entry.Email,
			Name:          entry.Name,
			OnboardingURL: url,
			ExpiresAt:     expiresAt,
		})
		if err != nil {
			l.Error("failed to send approval email", slog.String("entry_id", id), slog.Any("error", err))
		}
	}

	return StatusChange{Entry: entry, OnboardingURL: url}, nil
}

// List returns waitlist entries, optionally filtered by status.
func (s *WaitlistService) List(ctx context.Context, actor Actor, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error) {
	if err := s.Gate.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	if status != nil && !status.Valid() {
		return nil, validationError("status must be one of PENDING, APPROVED, REJECTED")
	}
	entries, err := s.Store.Waitlist().ListEntries(ctx, status)
	if err != nil {
		return nil, mapStoreErr(err, nil)
	}
	return entries, nil
}

func (s *WaitlistService) Get(ctx context.Context, actor Actor, id string) (domain.WaitlistEntry, error) {
	if err := s.Gate.RequireAdmin(ctx, actor); err != nil {
		return domain.WaitlistEntry{}, err
	}
	entry, err := s.Store.Waitlist().GetEntryByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.WaitlistEntry{}, ErrWaitlistNotFound
	}
	if err != nil {
		return domain.WaitlistEntry{}, internalError(err)
	}
	return entry, nil
}

func (s *WaitlistService) ttlHours() int {
	if s.TokenTTLHours <= 0 {
		return DefaultOnboardingTokenTTLHours
	}
	return s.TokenTTLHours
}
