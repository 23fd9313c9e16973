package firestore

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "storefront/internal/domain/cart"
	productdom "storefront/internal/domain/product"
)

func TestAsDecimal(t *testing.T) {
	assert.True(t, decimal.RequireFromString("19.99").Equal(asDecimal("19.99")))
	assert.True(t, decimal.RequireFromString("19.99").Equal(asDecimal(19.99)))
	assert.True(t, decimal.NewFromInt(3).Equal(asDecimal(int64(3))))
	assert.True(t, asDecimal("oops").IsZero())
	assert.True(t, asDecimal(nil).IsZero())
}

func TestAsInt64(t *testing.T) {
	ts := time.UnixMilli(1234)
	assert.Equal(t, int64(1234), asInt64(ts))
	assert.Equal(t, int64(7), asInt64(int64(7)))
	assert.Equal(t, int64(7), asInt64(7.0))
}

func TestLines_RoundTrip(t *testing.T) {
	p := productdom.Product{ID: "p1", UserID: "u", Name: "A", Category: "C", Price: decimal.RequireFromString("2.50"), Stock: 4}
	fields := linesToFields([]cartdom.Line{{Product: p, Quantity: 3}})

	got := linesFromField(fields)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, 3, got[0].Quantity)
	assert.True(t, p.Price.Equal(got[0].Price))
	assert.Equal(t, 4, got[0].Stock)
}

func TestLinesFromField_LegacyShapes(t *testing.T) {
	got := linesFromField(map[string]any{
		"b": map[string]any{"name": "B", "quantity": int64(2), "price": 1.5},
		"a": int64(1),
		"z": int64(0),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, 1, got[0].Quantity)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "B", got[1].Name)

	assert.Empty(t, linesFromField(nil))
	assert.Empty(t, linesFromField("garbage"))
}
