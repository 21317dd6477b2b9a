package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
)

type catalogRepo struct {
	q *queries
}

const catalogColumns = `id, name, slug, breach_date, record_count, data_classes, description, created_at`

func scanLeakedDatabase(row rowScanner) (domain.LeakedDatabase, error) {
	var (
		e           domain.LeakedDatabase
		breachDate  sql.NullTime
		dataClasses string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Slug, &breachDate, &e.RecordCount, &dataClasses, &e.Description, &e.CreatedAt); err != nil {
		return domain.LeakedDatabase{}, err
	}
	classes, err := decodeStrings(dataClasses)
	if err != nil {
		return domain.LeakedDatabase{}, err
	}
	e.DataClasses = classes
	e.BreachDate = mapNullTimePtr(breachDate)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

func (r *catalogRepo) CreateEntry(ctx context.Context, e domain.LeakedDatabase) error {
	classes, err := encodeStrings(e.DataClasses)
	if err != nil {
		return err
	}
	_, err = r.q.exec(ctx,
		`INSERT INTO leaked_databases (`+catalogColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Slug, mapOptionalTime(e.BreachDate), e.RecordCount, classes, e.Description, e.CreatedAt.UTC(),
	)
	return err
}

func (r *catalogRepo) GetEntryByID(ctx context.Context, id string) (domain.LeakedDatabase, error) {
	e, err := scanLeakedDatabase(r.q.queryRow(ctx, `SELECT `+catalogColumns+` FROM leaked_databases WHERE id = ?`, id))
	if err != nil {
		return domain.LeakedDatabase{}, r.q.mapErr(err)
	}
	return e, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *catalogRepo) Search(ctx context.Context, q domain.CatalogQuery) ([]domain.LeakedDatabase, error) {
	query := `SELECT ` + catalogColumns + ` FROM leaked_databases WHERE id > ?`
	args := []any{q.After}

	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		pattern := "%" + likeEscaper.Replace(text) + "%"
		query += ` AND (LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY id LIMIT ?`
	args = append(args, q.Limit)

	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.LeakedDatabase{}
	for rows.Next() {
		e, err := scanLeakedDatabase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
