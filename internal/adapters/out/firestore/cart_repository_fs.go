// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "storefront/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: uid  (docId is the source of truth)
// - fields: items(array), updatedAt
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// Get returns (nil, false, nil) if not found.
func (r *CartRepositoryFS) Get(ctx context.Context, uid string) ([]cartdom.Line, bool, error) {
	if r == nil || r.Client == nil {
		return nil, false, errors.New("cart_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, false, errors.New("cart_repository_fs: uid is empty")
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	// items の shape が変わっていても 500 にしないよう snap.Data() から自前パースする
	raw := snap.Data()
	if raw == nil {
		return []cartdom.Line{}, true, nil
	}
	return linesFromField(raw["items"]), true, nil
}

// Save overwrites the full doc (simple & predictable).
func (r *CartRepositoryFS) Save(ctx context.Context, uid string, lines []cartdom.Line) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("cart_repository_fs: uid is empty")
	}

	_, err := r.col().Doc(id).Set(ctx, map[string]any{
		"items":     linesToFields(lines),
		"updatedAt": time.Now().UTC(),
	})
	return err
}
