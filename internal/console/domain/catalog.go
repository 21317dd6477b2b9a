package domain

import "time"

// LeakedDatabase is one breach in the searchable catalog.
type LeakedDatabase struct {
	ID          string
	Name        string
	Slug        string
	BreachDate  *time.Time
	RecordCount int64
	DataClasses []string // e.g. "email", "password_hash", "phone"
	Description string
	CreatedAt   time.Time
}

type CatalogQuery struct {
	Text  string // case-insensitive substring on name/description
	After string // ULID cursor, exclusive
	Limit int
}
