package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/internal/console/store/drivers/sqlite"
	"github.com/aussiebroadwan/breachwatch/internal/console/store/storetest"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, openTestStore)
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestDSN(t *testing.T) {
	dsn := sqlite.DSN("/tmp/x.db")
	require.Contains(t, dsn, "file:/tmp/x.db?")
	require.Contains(t, dsn, "_time_format=sqlite")
	require.Contains(t, dsn, "foreign_keys")
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "console.db")
	s, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	require.FileExists(t, path)
}
