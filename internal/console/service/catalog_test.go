package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/breachwatch/internal/console/domain"
	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	breached := env.Clock.Now().Add(-48 * time.Hour)
	entry, err := env.Catalog.Create(ctx, env.Admin, service.CreateCatalogEntryRequest{
		Name:        "  Société Générale ",
		BreachDate:  &breached,
		RecordCount: 1200,
		DataClasses: []string{"Email", " password_hash ", "email", ""},
		Description: " Leaked in a forum dump ",
	})
	require.NoError(t, err)
	require.Equal(t, "Société Générale", entry.Name)
	require.Equal(t, "societe-generale", entry.Slug)
	require.Equal(t, []string{"email", "password_hash"}, entry.DataClasses)
	require.Equal(t, "Leaked in a forum dump", entry.Description)

	got, err := env.Catalog.Get(ctx, env.Admin, entry.ID)
	require.NoError(t, err)
	require.Equal(t, entry.Slug, got.Slug)
	require.Equal(t, entry.DataClasses, got.DataClasses)
	require.True(t, breached.Equal(*got.BreachDate))

	_, err = env.Catalog.Create(ctx, env.Admin, service.CreateCatalogEntryRequest{Name: "societe generale"})
	require.ErrorIs(t, err, service.ErrCatalogDuplicate)

	_, err = env.Catalog.Get(ctx, env.Admin, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.ErrorIs(t, err, service.ErrCatalogEntryNotFound)
}

func TestCatalogCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	future := env.Clock.Now().Add(time.Hour)

	tests := []struct {
		name string
		req  service.CreateCatalogEntryRequest
	}{
		{"blank name", service.CreateCatalogEntryRequest{Name: " "}},
		{"punctuation only", service.CreateCatalogEntryRequest{Name: "!!!"}},
		{"negative count", service.CreateCatalogEntryRequest{Name: "x", RecordCount: -1}},
		{"future breach", service.CreateCatalogEntryRequest{Name: "x", BreachDate: &future}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Catalog.Create(context.Background(), env.Admin, tt.req)
			requireKind(t, err, service.KindValidation)
		})
	}
}

func TestCatalogPermissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.createUser(t, "a@x.com", domain.UserRoleUser)
	actor := service.Actor{UserID: u.ID}

	_, err := env.Catalog.Create(ctx, actor, service.CreateCatalogEntryRequest{Name: "X"})
	require.ErrorIs(t, err, service.ErrForbidden)

	_, err = env.Catalog.Search(ctx, actor, service.CatalogSearch{})
	require.NoError(t, err)

	_, err = env.Catalog.Search(ctx, service.Actor{}, service.CatalogSearch{})
	require.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestCatalogSearchPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := range 5 {
		_, err := env.Catalog.Create(ctx, env.Admin, service.CreateCatalogEntryRequest{
			Name:        fmt.Sprintf("Breach %d", i),
			Description: "forum dump",
		})
		require.NoError(t, err)
	}
	_, err := env.Catalog.Create(ctx, env.Admin, service.CreateCatalogEntryRequest{Name: "Unrelated"})
	require.NoError(t, err)

	var names []string
	cursor := ""
	for pages := 0; ; pages++ {
		require.Less(t, pages, 5)
		page, err := env.Catalog.Search(ctx, env.Admin, service.CatalogSearch{Query: "BREACH", Cursor: cursor, Limit: 2})
		require.NoError(t, err)
		for _, item := range page.Items {
			names = append(names, item.Name)
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	require.Equal(t, []string{"Breach 0", "Breach 1", "Breach 2", "Breach 3", "Breach 4"}, names)

	// Description matches too
	page, err := env.Catalog.Search(ctx, env.Admin, service.CatalogSearch{Query: "forum"})
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	require.Empty(t, page.NextCursor)

	_, err = env.Catalog.Search(ctx, env.Admin, service.CatalogSearch{Cursor: "not-a-ulid"})
	require.ErrorIs(t, err, service.ErrInvalidCursor)
}
