package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "storefront/internal/domain/cart"
	productdom "storefront/internal/domain/product"
)

func TestNew(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	items := []cartdom.Line{
		{Product: productdom.Product{ID: "p1", Price: decimal.RequireFromString("10.00")}, Quantity: 2},
		{Product: productdom.Product{ID: "p2", Price: decimal.RequireFromString("0.50")}, Quantity: 0},
	}

	o, err := New("o1", "u1", items, now)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Len(t, o.Items, 1)
	assert.True(t, decimal.RequireFromString("20").Equal(o.Total))
	assert.Equal(t, now.UnixMilli(), o.CreatedAt)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)

	_, err = New("o2", "u1", nil, now)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = New("o3", " ", items, now)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSetStatusAndSort(t *testing.T) {
	a := Order{ID: "a", CreatedAt: 1}
	b := Order{ID: "b", CreatedAt: 3}
	c := Order{ID: "c", CreatedAt: 2}
	items := []Order{a, b, c}
	SortNewestFirst(items)
	assert.Equal(t, []string{"b", "c", "a"}, []string{items[0].ID, items[1].ID, items[2].ID})

	later := time.UnixMilli(99)
	got := a.SetStatus(StatusCancelled, later)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, int64(99), got.UpdatedAt)
	assert.Equal(t, int64(1), got.CreatedAt)
}
