// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/application/state"
	cartdom "storefront/internal/domain/cart"
	productdom "storefront/internal/domain/product"
)

// StockWriter writes the stock of one product (ProductUsecase.UpdateProductStock).
type StockWriter interface {
	UpdateProductStock(ctx context.Context, id string, stock int) (productdom.Product, error)
}

// CartUsecase is the cart reconciliation unit.
//
// - the cart is persisted as a whole list (replace, last writer wins)
// - after the cart write, the stock of every affected product is written sequentially
// - stock is derived from the catalog slice (last-known value), not re-read
type CartUsecase struct {
	repo  cartdom.Repository
	store *state.Store
	stock StockWriter
	log   *zap.Logger
}

func NewCartUsecase(repo cartdom.Repository, store *state.Store, stock StockWriter, logger *zap.Logger) *CartUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartUsecase{repo: repo, store: store, stock: stock, log: logger.Named("cart_uc")}
}

// CartChange is the result of a quantity operation.
type CartChange struct {
	Items    []cartdom.Line `json:"items"`
	Quantity int            `json:"quantity"`
	// Clamped is true when the requested quantity exceeded what is available.
	Clamped bool `json:"clamped"`
}

type CartSummary struct {
	Items []cartdom.Line  `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// FetchCart loads carts/{uid}. A missing cart is created empty.
func (uc *CartUsecase) FetchCart(ctx context.Context, uid string) ([]cartdom.Line, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrInvalidArgument
	}

	uc.store.Cart.Begin()
	items, found, err := uc.repo.Get(ctx, id)
	if err == nil && !found {
		items = []cartdom.Line{}
		err = uc.repo.Save(ctx, id, items)
	}
	if err != nil {
		uc.log.Warn("fetch cart failed", zap.String("uid", maskUID(id)), zap.Error(err))
		uc.store.Cart.Reject(errMessage(err, "Failed to fetch cart"))
		return nil, err
	}

	items = cartdom.Normalize(items)
	uc.store.Cart.Fulfil(items)
	return items, nil
}

// UpdateCart replaces carts/{uid} with items, then adjusts stock per changed product.
// Lines of catalog products take the catalog record and are clamped to what is available.
// Products that are not in the catalog slice are skipped.
// The first failing stock write stops the sequence and rejects the call.
func (uc *CartUsecase) UpdateCart(ctx context.Context, uid string, items []cartdom.Line) ([]cartdom.Line, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrInvalidArgument
	}

	uc.store.Cart.Begin()

	prev := uc.store.Cart.Items()
	next := uc.reconcile(prev, cartdom.Normalize(items))

	if err := uc.repo.Save(ctx, id, next); err != nil {
		uc.store.Cart.Reject(errMessage(err, "Failed to update cart"))
		return nil, err
	}

	applied := make([]string, 0)
	for _, d := range cartdom.Deltas(prev, next) {
		p, ok := uc.store.Catalog.Lookup(d.ProductID)
		if !ok {
			uc.log.Debug("stock skip: product not in catalog", zap.String("productId", d.ProductID))
			continue
		}
		newStock := cartdom.AdjustStock(p.Stock, d)
		if _, err := uc.stock.UpdateProductStock(ctx, d.ProductID, newStock); err != nil {
			serr := &StockAdjustmentError{ProductID: d.ProductID, Applied: applied, Err: err}
			uc.log.Warn("stock adjustment failed",
				zap.String("productId", d.ProductID),
				zap.Strings("applied", applied),
				zap.Error(err),
			)
			uc.store.Cart.Reject(serr.Error())
			return nil, serr
		}
		applied = append(applied, d.ProductID)
	}

	uc.store.Cart.Fulfil(next)
	return next, nil
}

// reconcile replaces the client snapshot with the catalog record and clamps each quantity
// to stock + what prev already holds. Lines clamped to 0 are dropped.
func (uc *CartUsecase) reconcile(prev, next []cartdom.Line) []cartdom.Line {
	out := make([]cartdom.Line, 0, len(next))
	for _, l := range next {
		p, ok := uc.store.Catalog.Lookup(l.ID)
		if !ok {
			out = append(out, l)
			continue
		}
		qty, clamped := cartdom.ClampQuantity(l.Quantity, p.Stock, cartdom.QuantityOf(prev, l.ID))
		if clamped {
			uc.log.Debug("quantity clamped",
				zap.String("productId", l.ID),
				zap.Int("requested", l.Quantity),
				zap.Int("quantity", qty),
			)
		}
		if qty == 0 {
			continue
		}
		out = append(out, cartdom.Line{Product: p, Quantity: qty})
	}
	return out
}

// SetQuantity sets the quantity of one line, clamped to what the catalog says is available.
// 0 removes the line. When the clamped quantity equals the current one nothing is written.
func (uc *CartUsecase) SetQuantity(ctx context.Context, uid, productID string, requested int) (CartChange, error) {
	pid := strings.TrimSpace(productID)
	if strings.TrimSpace(uid) == "" || pid == "" {
		return CartChange{}, ErrInvalidArgument
	}

	p, ok := uc.store.Catalog.Lookup(pid)
	if !ok {
		return CartChange{}, fmt.Errorf("cart_uc: %w", productdom.ErrNotFound)
	}

	items := uc.store.Cart.Items()
	current := cartdom.QuantityOf(items, pid)
	qty, clamped := cartdom.ClampQuantity(requested, p.Stock, current)
	if qty == current {
		return CartChange{Items: items, Quantity: qty, Clamped: clamped}, nil
	}

	next, err := uc.UpdateCart(ctx, uid, cartdom.SetQuantity(items, p, qty))
	if err != nil {
		return CartChange{}, err
	}
	return CartChange{Items: next, Quantity: qty, Clamped: clamped}, nil
}

// AddToCart adds one unit.
func (uc *CartUsecase) AddToCart(ctx context.Context, uid, productID string) (CartChange, error) {
	current := cartdom.QuantityOf(uc.store.Cart.Items(), strings.TrimSpace(productID))
	return uc.SetQuantity(ctx, uid, productID, current+1)
}

// RemoveItem drops one line. Its units are given back to stock when the product is in the catalog.
func (uc *CartUsecase) RemoveItem(ctx context.Context, uid, productID string) ([]cartdom.Line, error) {
	pid := strings.TrimSpace(productID)
	if strings.TrimSpace(uid) == "" || pid == "" {
		return nil, ErrInvalidArgument
	}

	items := uc.store.Cart.Items()
	if cartdom.QuantityOf(items, pid) == 0 {
		return items, nil
	}
	return uc.UpdateCart(ctx, uid, cartdom.Remove(items, pid))
}

// ClearCart writes an empty list. Stock is NOT restored (known limitation).
func (uc *CartUsecase) ClearCart(ctx context.Context, uid string) error {
	id := strings.TrimSpace(uid)
	if id == "" {
		return ErrInvalidArgument
	}

	uc.store.Cart.Begin()
	if err := uc.repo.Save(ctx, id, []cartdom.Line{}); err != nil {
		uc.store.Cart.Reject(errMessage(err, "Failed to clear cart"))
		return err
	}

	uc.store.Cart.Fulfil([]cartdom.Line{})
	return nil
}

// Summary is the cart view (lines, total, item count) from the cart slice.
func (uc *CartUsecase) Summary() CartSummary {
	items := uc.store.Cart.Items()
	return CartSummary{Items: items, Total: cartdom.Total(items), Count: cartdom.Count(items)}
}

func maskUID(uid string) string {
	if len(uid) <= 6 {
		return "***"
	}
	return uid[:3] + "***" + uid[len(uid)-3:]
}
