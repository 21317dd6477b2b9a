package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/internal/console/store/drivers/postgres"
	"github.com/aussiebroadwan/breachwatch/internal/console/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const testImage = "postgres:16-alpine"

// startPostgres runs a throwaway server and returns a migrated store on it.
func startPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres driver tests need docker; skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, testImage,
		tcpostgres.WithDatabase("console"),
		tcpostgres.WithUsername("console"),
		tcpostgres.WithPassword("console"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := postgres.NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStore(t *testing.T) {
	s := startPostgres(t)

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := s.DB().ExecContext(ctx, `TRUNCATE
			backup_codes, mfa_sessions, invitations, waitlist_entries,
			team_members, subscriptions, users, organizations, leaked_databases
			CASCADE`)
		require.NoError(t, err)
		return s
	})
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	s := startPostgres(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestDialectRebind(t *testing.T) {
	d := postgres.Dialect()
	require.Equal(t, "SELECT 1 WHERE a = $1 AND b = $2", d.Rebind("SELECT 1 WHERE a = ? AND b = ?"))
	require.NotNil(t, d.TxOptions)
}
