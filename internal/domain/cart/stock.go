// internal/domain/cart/stock.go
package cart

// Delta is the quantity change of one product between two cart states.
type Delta struct {
	ProductID string
	OldQty    int
	NewQty    int
}

// Diff > 0 means more units went into the cart (stock goes down).
func (d Delta) Diff() int { return d.NewQty - d.OldQty }

// Deltas compares the previous and next cart.
//
// - lines of next come first (in order), then lines that disappeared from next (qty 0)
// - products whose quantity did not change are skipped
func Deltas(prev, next []Line) []Delta {
	out := make([]Delta, 0, len(next))
	inNext := make(map[string]struct{}, len(next))
	for _, l := range next {
		inNext[l.ID] = struct{}{}
		d := Delta{ProductID: l.ID, OldQty: QuantityOf(prev, l.ID), NewQty: l.Quantity}
		if d.Diff() != 0 {
			out = append(out, d)
		}
	}
	for _, l := range prev {
		if _, ok := inNext[l.ID]; ok {
			continue
		}
		if l.Quantity != 0 {
			out = append(out, Delta{ProductID: l.ID, OldQty: l.Quantity, NewQty: 0})
		}
	}
	return out
}

// AdjustStock applies a cart delta to the last-known stock, floored at 0.
func AdjustStock(stock int, d Delta) int {
	n := stock - d.Diff()
	if n < 0 {
		return 0
	}
	return n
}

// ClampQuantity limits requested to [0, stock+current].
//
// stock is the catalog stock, which has already been decremented for the
// units currently in the cart, so those units are available to this line again.
// clamped reports whether requested was cut.
func ClampQuantity(requested, stock, current int) (qty int, clamped bool) {
	if stock < 0 {
		stock = 0
	}
	if current < 0 {
		current = 0
	}
	ceiling := stock + current
	switch {
	case requested < 0:
		return 0, true
	case requested > ceiling:
		return ceiling, true
	default:
		return requested, false
	}
}
