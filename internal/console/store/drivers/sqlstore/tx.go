package sqlstore

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/breachwatch/internal/console/store"
)

// txStore wraps a *sql.Tx and exposes the same repos bound to the transaction.
type txStore struct {
	tx *sql.Tx
	q  *queries
}

func newTx(tx *sql.Tx, d Dialect) *txStore {
	return &txStore{tx: tx, q: &queries{db: tx, d: d}}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Waitlist() store.Waitlist           { return &waitlistRepo{q: t.q} }
func (t *txStore) Invitations() store.Invitations     { return &invitationsRepo{q: t.q} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{q: t.q} }
func (t *txStore) Subscriptions() store.Subscriptions { return &subscriptionsRepo{q: t.q} }
func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.q} }
func (t *txStore) TeamMembers() store.TeamMembers     { return &teamMembersRepo{q: t.q} }
func (t *txStore) Catalog() store.Catalog             { return &catalogRepo{q: t.q} }
func (t *txStore) BackupCodes() store.BackupCodes     { return &backupCodesRepo{q: t.q} }
func (t *txStore) MFASessions() store.MFASessions     { return &mfaSessionsRepo{q: t.q} }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errNestedTx
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

// Ping/Close/ApplyMigrations are owned by the root store.
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }
