// internal/adapters/out/rtdb/product_repository_db.go
package rtdb

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	productdom "storefront/internal/domain/product"
)

// ProductRepositoryDB implements product.Repository on the Realtime Database.
// path: products/{id}. The id is the key and is not stored in the record.
type ProductRepositoryDB struct {
	Tree Tree
}

func NewProductRepositoryDB(tree Tree) *ProductRepositoryDB {
	return &ProductRepositoryDB{Tree: tree}
}

const productsPath = "products"

func (r *ProductRepositoryDB) List(ctx context.Context) ([]productdom.Product, error) {
	if r == nil || r.Tree == nil {
		return nil, errors.New("product_repository_db: tree is nil")
	}

	var raw json.RawMessage
	ok, err := r.Tree.Get(ctx, productsPath, &raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []productdom.Product{}, nil
	}

	recs, err := decodeKeyed[productRecord](raw)
	if err != nil {
		return nil, err
	}
	out := make([]productdom.Product, 0, len(recs))
	for _, kr := range recs {
		out = append(out, recordToProduct(kr.key, kr.value))
	}
	return out, nil
}

func (r *ProductRepositoryDB) Get(ctx context.Context, id string) (productdom.Product, error) {
	if r == nil || r.Tree == nil {
		return productdom.Product{}, errors.New("product_repository_db: tree is nil")
	}
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, productdom.ErrNotFound
	}

	var rec productRecord
	ok, err := r.Tree.Get(ctx, join(productsPath, pid), &rec)
	if err != nil {
		return productdom.Product{}, err
	}
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return recordToProduct(pid, rec), nil
}

func (r *ProductRepositoryDB) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	if r == nil || r.Tree == nil {
		return productdom.Product{}, errors.New("product_repository_db: tree is nil")
	}
	key, err := r.Tree.Push(ctx, productsPath, productToRecord(p))
	if err != nil {
		return productdom.Product{}, err
	}
	p.ID = key
	return p, nil
}

func (r *ProductRepositoryDB) Save(ctx context.Context, p productdom.Product) error {
	if r == nil || r.Tree == nil {
		return errors.New("product_repository_db: tree is nil")
	}
	pid := strings.TrimSpace(p.ID)
	if pid == "" {
		return errors.New("product_repository_db: Save requires product.ID")
	}
	return r.Tree.Set(ctx, join(productsPath, pid), productToRecord(p))
}

// SaveAll writes every product in one multi-path update.
func (r *ProductRepositoryDB) SaveAll(ctx context.Context, items []productdom.Product) error {
	if r == nil || r.Tree == nil {
		return errors.New("product_repository_db: tree is nil")
	}
	children := make(map[string]any, len(items))
	for _, p := range items {
		pid := strings.TrimSpace(p.ID)
		if pid == "" {
			return errors.New("product_repository_db: SaveAll requires product.ID")
		}
		children[pid] = productToRecord(p)
	}
	return r.Tree.Update(ctx, productsPath, children)
}

func (r *ProductRepositoryDB) Delete(ctx context.Context, id string) error {
	if r == nil || r.Tree == nil {
		return errors.New("product_repository_db: tree is nil")
	}
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.ErrNotFound
	}
	return r.Tree.Delete(ctx, join(productsPath, pid))
}
