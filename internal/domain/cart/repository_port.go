// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for carts.
//
// Storage:
// - RTDB:      carts/{uid} = {items: [...]}
// - Firestore: collection carts, docId = uid, fields items, updatedAt
//
// Every save replaces the whole list. There is no version token (last writer wins).
type Repository interface {
	// Get returns (lines, true, nil) when the cart exists and (nil, false, nil) when it doesn't.
	Get(ctx context.Context, uid string) ([]Line, bool, error)

	// Save overwrites carts/{uid} with lines.
	Save(ctx context.Context, uid string, lines []Line) error
}
