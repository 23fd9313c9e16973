// internal/adapters/out/rtdb/order_repository_db.go
package rtdb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	orderdom "storefront/internal/domain/order"
)

// OrderRepositoryDB implements order.Repository on the Realtime Database.
// path: orders/{uid}/{orderId}
type OrderRepositoryDB struct {
	Tree Tree
}

func NewOrderRepositoryDB(tree Tree) *OrderRepositoryDB {
	return &OrderRepositoryDB{Tree: tree}
}

func (r *OrderRepositoryDB) List(ctx context.Context, uid string) ([]orderdom.Order, error) {
	if r == nil || r.Tree == nil {
		return nil, errors.New("order_repository_db: tree is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("order_repository_db: uid is empty")
	}

	var raw json.RawMessage
	ok, err := r.Tree.Get(ctx, join("orders", id), &raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []orderdom.Order{}, nil
	}

	recs, err := decodeKeyed[orderRecord](raw)
	if err != nil {
		return nil, err
	}
	out := make([]orderdom.Order, 0, len(recs))
	for _, kr := range recs {
		o, err := recordToOrder(kr.key, kr.value)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepositoryDB) Get(ctx context.Context, uid, orderID string) (orderdom.Order, error) {
	if r == nil || r.Tree == nil {
		return orderdom.Order{}, errors.New("order_repository_db: tree is nil")
	}
	id, oid := strings.TrimSpace(uid), strings.TrimSpace(orderID)
	if id == "" || oid == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	var rec orderRecord
	ok, err := r.Tree.Get(ctx, join("orders", id, oid), &rec)
	if err != nil {
		return orderdom.Order{}, err
	}
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return recordToOrder(oid, rec)
}

func (r *OrderRepositoryDB) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r == nil || r.Tree == nil {
		return orderdom.Order{}, errors.New("order_repository_db: tree is nil")
	}
	uid := strings.TrimSpace(o.UserID)
	if uid == "" {
		return orderdom.Order{}, errors.New("order_repository_db: order.UserID is empty")
	}
	rec, err := orderToRecord(o)
	if err != nil {
		return orderdom.Order{}, err
	}
	key, err := r.Tree.Push(ctx, join("orders", uid), rec)
	if err != nil {
		return orderdom.Order{}, err
	}
	o.ID = key
	return o, nil
}

func (r *OrderRepositoryDB) Save(ctx context.Context, o orderdom.Order) error {
	if r == nil || r.Tree == nil {
		return errors.New("order_repository_db: tree is nil")
	}
	uid, oid := strings.TrimSpace(o.UserID), strings.TrimSpace(o.ID)
	if uid == "" || oid == "" {
		return errors.New("order_repository_db: Save requires order.UserID and order.ID")
	}
	rec, err := orderToRecord(o)
	if err != nil {
		return err
	}
	return r.Tree.Set(ctx, join("orders", uid, oid), rec)
}
