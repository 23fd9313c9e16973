// internal/domain/order/repository_port.go
package order

import "context"

// Repository is a persistence port for orders.
//
// - RTDB:      orders/{uid}/{orderId}
// - Firestore: collection orders, docId = orderId, field userId
type Repository interface {
	// List returns the orders of uid (unsorted).
	List(ctx context.Context, uid string) ([]Order, error)

	// Get returns ErrNotFound when missing.
	Get(ctx context.Context, uid, orderID string) (Order, error)

	// Create stores o under a fresh key and returns it with ID set.
	Create(ctx context.Context, o Order) (Order, error)

	Save(ctx context.Context, o Order) error
}
