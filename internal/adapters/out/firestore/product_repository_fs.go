// internal/adapters/out/firestore/product_repository_fs.go
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

	productdom "storefront/internal/domain/product"
)

// ProductRepositoryFS is a Firestore-based implementation of product.Repository.
// collection: products, docId = product id (not stored as a field).
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

// List returns every product in docId order.
func (r *ProductRepositoryFS) List(ctx context.Context) ([]productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	out := make([]productdom.Product, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("product_repository_fs: list: %w", err)
		}
		out = append(out, productFromFields(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

func (r *ProductRepositoryFS) Get(ctx context.Context, id string) (productdom.Product, error) {
	if r == nil || r.Client == nil {
		return productdom.Product{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.Product{}, productdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return productFromFields(snap.Ref.ID, snap.Data()), nil
}

func (r *ProductRepositoryFS) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	if r == nil || r.Client == nil {
		return productdom.Product{}, errors.New("firestore client is nil")
	}
	docRef := r.col().NewDoc()
	if _, err := docRef.Set(ctx, productFields(p)); err != nil {
		return productdom.Product{}, err
	}
	p.ID = docRef.ID
	return p, nil
}

func (r *ProductRepositoryFS) Save(ctx context.Context, p productdom.Product) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return errors.New("product_repository_fs: Save requires product.ID")
	}
	_, err := r.col().Doc(id).Set(ctx, productFields(p))
	return err
}

// SaveAll writes the products through a BulkWriter.
func (r *ProductRepositoryFS) SaveAll(ctx context.Context, items []productdom.Product) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore client is nil")
	}
	if len(items) == 0 {
		return nil
	}

	bw := r.Client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(items))
	for _, p := range items {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			bw.End()
			return errors.New("product_repository_fs: SaveAll requires product.ID")
		}
		job, err := bw.Set(r.col().Doc(id), productFields(p))
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("product_repository_fs: bulk write: %w", err)
		}
	}
	return nil
}

func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ErrNotFound
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
