// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	productdom "storefront/internal/domain/product"
)

var ErrInvalidCart = errors.New("cart: invalid")

// Line is "one line item" in a cart: a product snapshot plus quantity.
// The snapshot is taken when the line is added and refreshed whenever the quantity is set.
//
// NOTE:
// - quantity > 0 while present (zero lines are removed, never persisted)
// - one line per product id
type Line struct {
	productdom.Product
	Quantity int `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Normalize drops zero / negative lines and lines without a product id,
// and merges duplicate product ids (quantities summed, first snapshot kept).
func Normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		id := strings.TrimSpace(l.ID)
		if id == "" || l.Quantity <= 0 {
			continue
		}
		l.ID = id
		if i, ok := index[id]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[id] = len(out)
		out = append(out, l)
	}
	return out
}

func Clone(lines []Line) []Line {
	if lines == nil {
		return []Line{}
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// QuantityOf returns the quantity held for productID (0 if absent).
func QuantityOf(lines []Line, productID string) int {
	for _, l := range lines {
		if l.ID == productID {
			return l.Quantity
		}
	}
	return 0
}

// SetQuantity returns a new list where the line for p has quantity qty.
// qty <= 0 removes the line. A new line is appended at the end.
func SetQuantity(lines []Line, p productdom.Product, qty int) []Line {
	out := make([]Line, 0, len(lines)+1)
	found := false
	for _, l := range lines {
		if l.ID != p.ID {
			out = append(out, l)
			continue
		}
		found = true
		if qty > 0 {
			out = append(out, Line{Product: p, Quantity: qty})
		}
	}
	if !found && qty > 0 {
		out = append(out, Line{Product: p, Quantity: qty})
	}
	return out
}

// Remove drops the line for productID.
func Remove(lines []Line, productID string) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ID != productID {
			out = append(out, l)
		}
	}
	return out
}

// Total = Σ price × quantity.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count = Σ quantity.
func Count(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
