// Package sqlstore implements store.Store on database/sql. The sqlite and
// postgres drivers share these repositories and differ only in their Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

type Placeholder int

const (
	PlaceholderQuestion Placeholder = iota // ?
	PlaceholderDollar                      // $1, $2, ...
)

// Dialect captures what differs between SQL engines.
type Dialect struct {
	Name        string
	Placeholder Placeholder

	// TxOptions is passed to BeginTx for every read/write transaction.
	TxOptions *sql.TxOptions

	IsUniqueViolation      func(error) bool
	IsSerializationFailure func(error) bool

	// Migrate applies the engine's embedded migrations.
	Migrate func(db *sql.DB) error
}

// Rebind rewrites ? placeholders for the dialect. Queries in this package
// never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d.Placeholder != PlaceholderDollar {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries binds a DBTX to a dialect. Every repo goes through it so that
// placeholders and error classification stay in one place.
type queries struct {
	db DBTX
	d  Dialect
}

func (q *queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := q.db.ExecContext(ctx, q.d.Rebind(query), args...)
	if err != nil {
		return nil, q.mapErr(err)
	}
	return res, nil
}

// execAffected runs query and returns the number of rows it changed.
func (q *queries) execAffected(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := q.db.QueryContext(ctx, q.d.Rebind(query), args...)
	if err != nil {
		return nil, q.mapErr(err)
	}
	return rows, nil
}

func (q *queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.d.Rebind(query), args...)
}
