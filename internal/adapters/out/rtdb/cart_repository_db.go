// internal/adapters/out/rtdb/cart_repository_db.go
package rtdb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	cartdom "storefront/internal/domain/cart"
)

// CartRepositoryDB implements cart.Repository on the Realtime Database.
//
// - path: carts/{uid}
// - value: {items: [line...]}  (the whole list is replaced on every save)
//
// NOTE: RTDB drops empty arrays, so an emptied cart reads back as missing.
type CartRepositoryDB struct {
	Tree Tree
}

func NewCartRepositoryDB(tree Tree) *CartRepositoryDB {
	return &CartRepositoryDB{Tree: tree}
}

func (r *CartRepositoryDB) path(uid string) string { return join("carts", uid) }

func (r *CartRepositoryDB) Get(ctx context.Context, uid string) ([]cartdom.Line, bool, error) {
	if r == nil || r.Tree == nil {
		return nil, false, errors.New("cart_repository_db: tree is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, false, errors.New("cart_repository_db: uid is empty")
	}

	var rec struct {
		Items json.RawMessage `json:"items"`
	}
	ok, err := r.Tree.Get(ctx, r.path(id), &rec)
	if err != nil || !ok {
		return nil, false, err
	}

	lines, err := decodeLines(rec.Items)
	if err != nil {
		return nil, false, err
	}
	return lines, true, nil
}

func (r *CartRepositoryDB) Save(ctx context.Context, uid string, lines []cartdom.Line) error {
	if r == nil || r.Tree == nil {
		return errors.New("cart_repository_db: tree is nil")
	}
	id := strings.TrimSpace(uid)
	if id == "" {
		return errors.New("cart_repository_db: uid is empty")
	}
	return r.Tree.Set(ctx, r.path(id), cartRecord{Items: linesToRecords(lines)})
}
