package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"
)

// HousekeepingService periodically persists expired invitations and cleans
// up expired MFA sessions.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Clock    Clock

	// Internal channels for lifecycle management
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

type HousekeepingResult struct {
	ExpiredInvitations int64
	DeletedMFASessions int64
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(s store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    s,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. It is non-blocking and should be
// called after migrations have run. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs a single cleanup pass. Each step is independent; a
// failing step is logged and the next one still runs.
func (s *HousekeepingService) RunOnce(ctx context.Context) HousekeepingResult {
	ctx, span := tracex.Start(ctx, "HousekeepingService.RunOnce")
	defer span.End()

	now := s.Clock.now()
	var res HousekeepingResult

	n, err := s.Store.Invitations().ExpireStale(ctx, now)
	if err != nil {
		s.Logger.Error("failed to expire pending invitations", "error", err)
	} else {
		res.ExpiredInvitations = n
	}

	n, err = s.Store.MFASessions().DeleteExpiredMFASessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired MFA sessions", "error", err)
	} else {
		res.DeletedMFASessions = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		"expired_invitations", res.ExpiredInvitations,
		"deleted_mfa_sessions", res.DeletedMFASessions,
	)
	return res
}
