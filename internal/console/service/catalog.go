package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/store"
	"github.com/aussiebroadwan/breachwatch/pkg/idx"
	"github.com/aussiebroadwan/breachwatch/pkg/slogx"
	"github.com/aussiebroadwan/breachwatch/pkg/tracex"
)

const (
	DefaultCatalogPageSize = 20
	MaxCatalogPageSize     = 100
)

type CatalogService struct {
	Store store.Store
	Gate  *Gate
	Clock Clock
}

type CatalogSearch struct {
	Query  string
	Cursor string
	Limit  int
}

type CatalogPage struct {
	Items      []domain.LeakedDatabase
	NextCursor string // empty on the last page
}

type CreateCatalogEntryRequest struct {
	Name        string
	BreachDate  *time.Time
	RecordCount int64
	DataClasses []string
	Description string
}

// Search pages through the catalog in id order.
func (s *CatalogService) Search(ctx context.Context, actor Actor, req CatalogSearch) (page CatalogPage, err error) {
	ctx, span := tracex.Start(ctx, "CatalogService.Search")
	defer func() { tracex.End(span, err) }()

	if err := s.Gate.RequireUser(ctx, actor); err != nil {
		return CatalogPage{}, err
	}

	if req.Cursor != "" {
		id, err := idx.Parse(req.Cursor)
		if err != nil {
			return CatalogPage{}, ErrInvalidCursor
		}
		req.Cursor = id.String()
	}
	limit := req.Limit
	switch {
	case limit <= 0:
		limit = DefaultCatalogPageSize
	case limit > MaxCatalogPageSize:
		limit = MaxCatalogPageSize
	}

	// One extra row tells us whether another page exists.
	items, err := s.Store.Catalog().Search(ctx, domain.CatalogQuery{
		Text:  req.Query,
		After: req.Cursor,
		Limit: limit + 1,
	})
	if err != nil {
		return CatalogPage{}, mapStoreErr(err, nil)
	}
	if len(items) > limit {
		items = items[:limit]
		page.NextCursor = items[limit-1].ID
	}
	page.Items = items
	return page, nil
}

func (s *CatalogService) Get(ctx context.Context, actor Actor, id string) (domain.LeakedDatabase, error) {
	if err := s.Gate.RequireUser(ctx, actor); err != nil {
		return domain.LeakedDatabase{}, err
	}
	e, err := s.Store.Catalog().GetEntryByID(ctx, id)
	if err != nil {
		return domain.LeakedDatabase{}, notFoundOr(err, ErrCatalogEntryNotFound)
	}
	return e, nil
}

// Create adds a catalog entry. Platform admins only.
func (s *CatalogService) Create(ctx context.Context, actor Actor, req CreateCatalogEntryRequest) (domain.LeakedDatabase, error) {
	if err := s.Gate.RequireAdmin(ctx, actor); err != nil {
		return domain.LeakedDatabase{}, err
	}

	name, err := requireName("name", req.Name, 1)
	if err != nil {
		return domain.LeakedDatabase{}, err
	}
	slug := Slug(name)
	if slug == "" {
		return domain.LeakedDatabase{}, validationError("name must contain letters or digits")
	}
	if req.RecordCount < 0 {
		return domain.LeakedDatabase{}, validationError("recordCount must not be negative")
	}

	now := s.Clock.now()
	var breachDate *time.Time
	if req.BreachDate != nil {
		d := req.BreachDate.UTC()
		if d.After(now) {
			return domain.LeakedDatabase{}, validationError("breachDate must not be in the future")
		}
		breachDate = &d
	}

	e := domain.LeakedDatabase{
		ID:          idx.NewAt(now).String(),
		Name:        name,
		Slug:        slug,
		BreachDate:  breachDate,
		RecordCount: req.RecordCount,
		DataClasses: normalizeDataClasses(req.DataClasses),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
	}
	if err := s.Store.Catalog().CreateEntry(ctx, e); err != nil {
		return domain.LeakedDatabase{}, mapStoreErr(err, ErrCatalogDuplicate)
	}

	slogx.FromContext(ctx).Info("catalog entry created", slog.String("entry_id", e.ID), slog.String("slug", slug))
	return e, nil
}

// normalizeDataClasses lower-cases, trims, drops empties and de-duplicates,
// keeping first-seen order.
func normalizeDataClasses(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
