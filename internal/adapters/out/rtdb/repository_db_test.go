package rtdb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
)

func TestProductRepositoryDB_CRUD(t *testing.T) {
	repo := NewProductRepositoryDB(NewMemoryTree())
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, repo.SaveAll(ctx, productdom.SampleCatalog()))
	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 8)
	assert.Equal(t, "1", items[0].ID)
	assert.True(t, decimal.RequireFromString("299.99").Equal(items[0].Price))

	created, err := repo.Create(ctx, productdom.Product{UserID: "u1", Name: "Lamp", Category: "Home", Price: decimal.RequireFromString("5"), Stock: 1})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, created.ID, got.ID)

	got.Stock = 0
	require.NoError(t, repo.Save(ctx, got))
	again, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Stock)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, productdom.ErrNotFound)
}

func TestCartRepositoryDB_ReplaceList(t *testing.T) {
	repo := NewCartRepositoryDB(NewMemoryTree())
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	p1 := productdom.Product{ID: "p1", Name: "A", Category: "C", Price: decimal.RequireFromString("1.25"), Stock: 3}
	p2 := productdom.Product{ID: "p2", Name: "B", Category: "C", Price: decimal.RequireFromString("2"), Stock: 3}
	require.NoError(t, repo.Save(ctx, "u1", []cartdom.Line{{Product: p1, Quantity: 2}, {Product: p2, Quantity: 1}}))

	lines, found, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("1.25").Equal(lines[0].Price))

	require.NoError(t, repo.Save(ctx, "u1", []cartdom.Line{{Product: p2, Quantity: 4}}))
	lines, _, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ID)
}

func TestOrderRepositoryDB(t *testing.T) {
	repo := NewOrderRepositoryDB(NewMemoryTree())
	ctx := context.Background()
	p := productdom.Product{ID: "p1", Name: "A", Category: "C", Price: decimal.RequireFromString("3.5")}

	o, err := orderdom.New("", "u1", []cartdom.Line{{Product: p, Quantity: 2}}, time.UnixMilli(5000))
	require.NoError(t, err)
	o, err = repo.Create(ctx, o)
	require.NoError(t, err)
	require.NotEmpty(t, o.ID)

	got, err := repo.Get(ctx, "u1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusPending, got.Status)
	assert.True(t, decimal.RequireFromString("7").Equal(got.Total))
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	got = got.SetStatus(orderdom.StatusCompleted, time.UnixMilli(6000))
	require.NoError(t, repo.Save(ctx, got))

	list, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, orderdom.StatusCompleted, list[0].Status)
	assert.Equal(t, int64(6000), list[0].UpdatedAt)

	_, err = repo.Get(ctx, "u1", "missing")
	assert.ErrorIs(t, err, orderdom.ErrNotFound)

	empty, err := repo.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
