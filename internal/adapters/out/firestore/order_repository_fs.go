// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "storefront/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository using Firestore.
// collection: orders, docId = orderId, userId is a field (queried with Where).
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

func (r *OrderRepositoryFS) List(ctx context.Context, uid string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, errors.New("order_repository_fs: uid is empty")
	}

	it := r.col().Where("userId", "==", id).Documents(ctx)
	defer it.Stop()

	out := make([]orderdom.Order, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("order_repository_fs: list: %w", err)
		}
		out = append(out, orderFromSnapshot(snap))
	}
	return out, nil
}

func (r *OrderRepositoryFS) Get(ctx context.Context, uid, orderID string) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}
	id, oid := strings.TrimSpace(uid), strings.TrimSpace(orderID)
	if id == "" || oid == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	o := orderFromSnapshot(snap)
	// 他人の注文は存在しない扱い
	if o.UserID != id {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}
	docRef := r.col().NewDoc()
	if _, err := docRef.Set(ctx, orderFields(o)); err != nil {
		return orderdom.Order{}, err
	}
	o.ID = docRef.ID
	return o, nil
}

func (r *OrderRepositoryFS) Save(ctx context.Context, o orderdom.Order) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	oid := strings.TrimSpace(o.ID)
	if oid == "" {
		return errors.New("order_repository_fs: Save requires order.ID")
	}
	_, err := r.col().Doc(oid).Set(ctx, orderFields(o))
	return err
}

func orderFields(o orderdom.Order) map[string]any {
	return map[string]any{
		"userId":    o.UserID,
		"items":     linesToFields(o.Items),
		"total":     o.Total.String(),
		"status":    string(o.Status),
		"createdAt": o.CreatedAt,
		"updatedAt": o.UpdatedAt,
	}
}

func orderFromSnapshot(snap *firestore.DocumentSnapshot) orderdom.Order {
	raw := snap.Data()
	st, err := orderdom.ParseStatus(asString(raw["status"]))
	if err != nil {
		st = orderdom.StatusPending
	}
	return orderdom.Order{
		ID:        snap.Ref.ID,
		UserID:    strings.TrimSpace(asString(raw["userId"])),
		Items:     linesFromField(raw["items"]),
		Total:     asDecimal(raw["total"]),
		Status:    st,
		CreatedAt: asInt64(raw["createdAt"]),
		UpdatedAt: asInt64(raw["updatedAt"]),
	}
}
