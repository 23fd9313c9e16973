// internal/domain/product/repository_port.go
package product

import "context"

// Repository is a persistence port for the product collection.
//
// Storage layout:
// - RTDB:      products/{id} = record without id
// - Firestore: collection products, docId = id
type Repository interface {
	// List returns every product. Order is stable per backend (key order).
	List(ctx context.Context) ([]Product, error)

	// Get returns ErrNotFound when the id does not exist.
	Get(ctx context.Context, id string) (Product, error)

	// Create stores p under a fresh key (RTDB push / Firestore NewDoc) and returns it with ID set.
	Create(ctx context.Context, p Product) (Product, error)

	// Save overwrites the record at p.ID.
	Save(ctx context.Context, p Product) error

	// SaveAll writes a batch (catalog seed).
	SaveAll(ctx context.Context, items []Product) error

	Delete(ctx context.Context, id string) error
}
