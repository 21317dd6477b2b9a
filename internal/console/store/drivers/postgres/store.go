// Package postgres is the pgx driver for the console store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/store/drivers/sqlstore"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

type Store struct {
	*sqlstore.Store
}

// NewStore opens a pool against dsn (a postgres:// URL or key=value string)
// and verifies it with a ping.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{Store: sqlstore.New(db, Dialect())}, nil
}

// Dialect describes PostgreSQL to the shared repositories. Every transaction
// runs SERIALIZABLE.
func Dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Name:                   "postgres",
		Placeholder:            sqlstore.PlaceholderDollar,
		TxOptions:              &sql.TxOptions{Isolation: sql.LevelSerializable},
		IsUniqueViolation:      func(err error) bool { return hasCode(err, codeUniqueViolation) },
		IsSerializationFailure: func(err error) bool { return hasCode(err, codeSerializationFailure, codeDeadlockDetected) },
		Migrate:                applyMigrations,
	}
}

func hasCode(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, c := range codes {
		if pgErr.Code == c {
			return true
		}
	}
	return false
}
