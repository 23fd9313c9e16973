// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/application/state"
	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
)

// Mailer sends the order confirmation.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order) error
}

type OrderUsecase struct {
	repo   orderdom.Repository
	carts  *CartUsecase
	store  *state.Store
	mailer Mailer
	clock  Clock
	log    *zap.Logger
}

func NewOrderUsecase(repo orderdom.Repository, carts *CartUsecase, store *state.Store, mailer Mailer, logger *zap.Logger) *OrderUsecase {
	return NewOrderUsecaseWithClock(repo, carts, store, mailer, systemClock{}, logger)
}

// NewOrderUsecaseWithClock is useful for tests.
func NewOrderUsecaseWithClock(repo orderdom.Repository, carts *CartUsecase, store *state.Store, mailer Mailer, clock Clock, logger *zap.Logger) *OrderUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderUsecase{repo: repo, carts: carts, store: store, mailer: mailer, clock: clock, log: logger.Named("order_uc")}
}

// FetchUserOrders loads the orders of uid, newest first.
func (uc *OrderUsecase) FetchUserOrders(ctx context.Context, uid string) ([]orderdom.Order, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrInvalidArgument
	}

	uc.store.Orders.Begin()
	items, err := uc.repo.List(ctx, id)
	if err != nil {
		uc.store.Orders.Reject(errMessage(err, "Failed to fetch orders"))
		return nil, err
	}

	orderdom.SortNewestFirst(items)
	uc.store.Orders.ReplaceAll(items)
	return items, nil
}

func (uc *OrderUsecase) CreateOrder(ctx context.Context, uid string, items []cartdom.Line) (orderdom.Order, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return orderdom.Order{}, ErrInvalidArgument
	}

	uc.store.Orders.Begin()
	o, err := uc.create(ctx, id, items)
	if err != nil {
		uc.store.Orders.Reject(errMessage(err, "Failed to create order"))
		return orderdom.Order{}, err
	}

	uc.store.Orders.Prepend(o)
	uc.log.Info("order created", zap.String("orderId", o.ID), zap.String("total", o.Total.StringFixed(2)))
	return o, nil
}

func (uc *OrderUsecase) create(ctx context.Context, uid string, items []cartdom.Line) (orderdom.Order, error) {
	o, err := orderdom.New("", uid, items, uc.clock.Now())
	if err != nil {
		return orderdom.Order{}, err
	}
	return uc.repo.Create(ctx, o)
}

func (uc *OrderUsecase) UpdateOrderStatus(ctx context.Context, uid, orderID, status string) (orderdom.Order, error) {
	id, oid := strings.TrimSpace(uid), strings.TrimSpace(orderID)
	if id == "" || oid == "" {
		return orderdom.Order{}, ErrInvalidArgument
	}
	st, err := orderdom.ParseStatus(status)
	if err != nil {
		return orderdom.Order{}, err
	}

	uc.store.Orders.Begin()
	o, err := uc.repo.Get(ctx, id, oid)
	if err == nil {
		o = o.SetStatus(st, uc.clock.Now())
		err = uc.repo.Save(ctx, o)
	}
	if err != nil {
		uc.store.Orders.Reject(errMessage(err, "Failed to update order status"))
		return orderdom.Order{}, err
	}

	uc.store.Orders.Patch(o)
	return o, nil
}

// Checkout turns the current cart into a pending order and clears the cart.
// Stock is not restored: the order consumed it. The confirmation mail is best-effort.
func (uc *OrderUsecase) Checkout(ctx context.Context, uid string) (orderdom.Order, error) {
	items := uc.store.Cart.Items()
	if len(items) == 0 {
		return orderdom.Order{}, ErrEmptyCart
	}

	o, err := uc.CreateOrder(ctx, uid, items)
	if err != nil {
		return orderdom.Order{}, err
	}

	if err := uc.carts.ClearCart(ctx, uid); err != nil {
		return o, fmt.Errorf("order %s created but cart was not cleared: %w", o.ID, err)
	}

	uc.notify(ctx, o)
	return o, nil
}

func (uc *OrderUsecase) notify(ctx context.Context, o orderdom.Order) {
	if uc.mailer == nil {
		return
	}
	u := uc.store.Auth.User()
	if u == nil || strings.TrimSpace(u.Email) == "" {
		return
	}
	if err := uc.mailer.SendOrderConfirmation(ctx, u.Email, o); err != nil {
		uc.log.Warn("order confirmation mail failed", zap.String("orderId", o.ID), zap.Error(err))
	}
}
