package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/breachwatch/internal/console/http"
	"github.com/aussiebroadwan/breachwatch/internal/console/notify"
	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/internal/console/store/drivers/postgres"
	"github.com/aussiebroadwan/breachwatch/internal/console/store/drivers/sqlite"
	"github.com/aussiebroadwan/breachwatch/pkg/cryptox"
	"github.com/aussiebroadwan/breachwatch/pkg/jwtx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the console with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db            store.Store
	keyManager    *jwtx.KeyManager
	hasher        cryptox.PasswordHasher
	notifier      notify.Notifier
	traceShutdown func(context.Context) error

	// Services
	waitlistService     *service.WaitlistService
	onboardingService   *service.OnboardingService
	invitationService   *service.InvitationService
	teamService         *service.TeamService
	sessionService      *service.SessionService
	mfaService          *service.MFAService
	catalogService      *service.CatalogService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "breachwatch-console",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperPath)

	hasher, err := cryptox.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}
	app.hasher = hasher

	ctx := context.Background()
	app.traceShutdown, err = tracex.Setup(ctx, tracex.Config{
		ServiceName: "breachwatch-console",
		Version:     BuildVersion,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	app.keyManager, err = InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}

	if err := app.initNotifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("console starting", "addr", app.cfg.HTTPAddr, "version", BuildVersion, "db_driver", app.cfg.DBDriver)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Stop the background sweep before the store goes away
	app.housekeepingService.Stop()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.traceShutdown(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("console stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DBDriver {
	case "postgres":
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.Open(app.cfg.DBPath)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DBDriver)
	return nil
}

func (app *Application) initNotifier() error {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("SMTP_HOST not set, emails will be logged instead of sent")
		app.notifier = notify.LogNotifier{}
		return nil
	}

	n, err := notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}
	app.notifier = n
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	gate := service.NewGate(app.db)
	links := service.Links{BaseURL: app.cfg.PublicBaseURL}

	app.waitlistService = &service.WaitlistService{
		Store:         app.db,
		Gate:          gate,
		Notifier:      app.notifier,
		Links:         links,
		TokenTTLHours: int(app.cfg.OnboardingTokenTTL.Hours()),
	}
	app.onboardingService = &service.OnboardingService{
		Store:  app.db,
		Hasher: app.hasher,
	}
	app.invitationService = &service.InvitationService{
		Store:          app.db,
		Gate:           gate,
		Notifier:       app.notifier,
		Hasher:         app.hasher,
		Links:          links,
		TokenTTLHours:  int(app.cfg.InvitationTokenTTL.Hours()),
		MaxMemberships: app.cfg.MaxMembershipsPerUser,
	}
	app.teamService = &service.TeamService{Store: app.db, Gate: gate}
	app.sessionService = &service.SessionService{
		Store:         app.db,
		Keys:          app.keyManager,
		MFASessionTTL: service.DefaultMFASessionTTL,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.MFAIssuer,
	}
	app.catalogService = &service.CatalogService{Store: app.db, Gate: gate}
	app.bootstrapService = &service.BootstrapService{
		Store:  app.db,
		Hasher: app.hasher,
		Token:  app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.keyManager, BuildVersion, app.db, app.logger)

	router.WaitlistService = app.waitlistService
	router.OnboardingService = app.onboardingService
	router.InvitationService = app.invitationService
	router.TeamService = app.teamService
	router.SessionService = app.sessionService
	router.MFAService = app.mfaService
	router.CatalogService = app.catalogService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
