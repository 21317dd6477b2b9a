// Package sqlite is the modernc.org/sqlite driver for the console store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/breachwatch/internal/console/store/drivers/sqlstore"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	*sqlstore.Store
	dsn string
}

// DSN builds a connection string for a database file. Times are written in
// the SQLite text format so that comparisons in SQL order correctly.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Set("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}

// Open creates the parent directory of path if needed and opens the store.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	return NewStore(DSN(path))
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One writer. Transactions serialize on this connection, so never touch
	// the root store from inside WithTx.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		Store: sqlstore.New(db, Dialect()),
		dsn:   dsn,
	}, nil
}

// Dialect describes SQLite to the shared repositories.
func Dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Name:                   "sqlite",
		Placeholder:            sqlstore.PlaceholderQuestion,
		IsUniqueViolation:      isUniqueViolation,
		IsSerializationFailure: isBusy,
		Migrate:                applyMigrations,
	}
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_BUSY
}
