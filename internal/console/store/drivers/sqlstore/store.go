package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

type Store struct {
	db *sql.DB
	q  *queries
}

// New wraps an open database. The caller hands over ownership of db.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, q: &queries{db: db, d: d}}
}

// DB exposes the underlying handle for driver-specific setup.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ApplyMigrations runs the dialect's embedded migrations.
func (s *Store) ApplyMigrations() error {
	if s.q.d.Migrate == nil {
		return fmt.Errorf("sqlstore: %s dialect has no migrations", s.q.d.Name)
	}
	return s.q.d.Migrate(s.db)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, s.q.d.TxOptions)
	if err != nil {
		return nil, err
	}
	return newTx(tx, s.q.d), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return s.q.mapErr(err)
	}
	return nil
}

func (s *Store) Waitlist() store.Waitlist           { return &waitlistRepo{q: s.q} }
func (s *Store) Invitations() store.Invitations     { return &invitationsRepo{q: s.q} }
func (s *Store) Organizations() store.Organizations { return &organizationsRepo{q: s.q} }
func (s *Store) Subscriptions() store.Subscriptions { return &subscriptionsRepo{q: s.q} }
func (s *Store) Users() store.Users                 { return &usersRepo{q: s.q} }
func (s *Store) TeamMembers() store.TeamMembers     { return &teamMembersRepo{q: s.q} }
func (s *Store) Catalog() store.Catalog             { return &catalogRepo{q: s.q} }
func (s *Store) BackupCodes() store.BackupCodes     { return &backupCodesRepo{q: s.q} }
func (s *Store) MFASessions() store.MFASessions     { return &mfaSessionsRepo{q: s.q} }

var errNestedTx = errors.New("sqlstore: nested transactions are not supported")
