// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/application/state"
	productdom "storefront/internal/domain/product"
)

// ImageStore uploads a product image and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, productID, contentType string, body io.Reader) (string, error)
}

// ProductUsecase runs the catalog operations and keeps the catalog slice in sync.
type ProductUsecase struct {
	repo   productdom.Repository
	store  *state.Store
	images ImageStore
	log    *zap.Logger
}

func NewProductUsecase(repo productdom.Repository, store *state.Store, images ImageStore, logger *zap.Logger) *ProductUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductUsecase{repo: repo, store: store, images: images, log: logger.Named("product_uc")}
}

// InitializeProducts seeds the sample catalog when the remote collection is empty.
func (uc *ProductUsecase) InitializeProducts(ctx context.Context) ([]productdom.Product, error) {
	uc.store.Catalog.Begin()

	items, err := uc.repo.List(ctx)
	if err != nil {
		uc.store.Catalog.Reject(errMessage(err, "Failed to initialize products"))
		return nil, err
	}
	if len(items) == 0 {
		items = productdom.SampleCatalog()
		if err := uc.repo.SaveAll(ctx, items); err != nil {
			uc.store.Catalog.Reject(errMessage(err, "Failed to initialize products"))
			return nil, err
		}
		uc.log.Info("sample catalog written", zap.Int("count", len(items)))
	}

	uc.store.Catalog.ReplaceAll(items)
	return items, nil
}

// FetchProducts replaces the whole in-memory collection. Last response wins.
func (uc *ProductUsecase) FetchProducts(ctx context.Context) ([]productdom.Product, error) {
	uc.store.Catalog.Begin()

	items, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Warn("fetch products failed", zap.Error(err))
		uc.store.Catalog.Reject(errMessage(err, "Failed to fetch products"))
		return nil, err
	}

	uc.store.Catalog.ReplaceAll(items)
	return items, nil
}

// FetchProduct fills the selected-product slot.
func (uc *ProductUsecase) FetchProduct(ctx context.Context, id string) (productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, ErrInvalidArgument
	}

	uc.store.Catalog.Begin()
	p, err := uc.repo.Get(ctx, pid)
	if err != nil {
		uc.store.Catalog.Reject(errMessage(err, "Failed to fetch product"))
		return productdom.Product{}, err
	}

	uc.store.Catalog.Select(p)
	return p, nil
}

func (uc *ProductUsecase) CreateProduct(ctx context.Context, f productdom.Fields) (productdom.Product, error) {
	uid, err := uc.signedIn()
	if err != nil {
		return productdom.Product{}, err
	}

	uc.store.Catalog.Begin()
	p, err := uc.create(ctx, uid, f)
	if err != nil {
		uc.store.Catalog.Reject(errMessage(err, "Failed to create product"))
		return productdom.Product{}, err
	}

	uc.store.Catalog.Append(p)
	uc.log.Info("product created", zap.String("productId", p.ID), zap.String("owner", p.UserID))
	return p, nil
}

func (uc *ProductUsecase) create(ctx context.Context, uid string, f productdom.Fields) (productdom.Product, error) {
	p, err := productdom.New("", uid, f)
	if err != nil {
		return productdom.Product{}, err
	}
	return uc.repo.Create(ctx, p)
}

func (uc *ProductUsecase) UpdateProduct(ctx context.Context, id string, f productdom.Fields) (productdom.Product, error) {
	uc.store.Catalog.Begin()
	p, err := uc.ownedProduct(ctx, id)
	if err == nil {
		p, err = p.Apply(f)
	}
	if err == nil {
		err = uc.repo.Save(ctx, p)
	}
	if err != nil {
		uc.store.Catalog.Reject(errMessage(err, "Failed to update product"))
		return productdom.Product{}, err
	}

	uc.store.Catalog.Patch(p)
	return p, nil
}

func (uc *ProductUsecase) DeleteProduct(ctx context.Context, id string) error {
	uc.store.Catalog.Begin()
	p, err := uc.ownedProduct(ctx, id)
	if err == nil {
		err = uc.repo.Delete(ctx, p.ID)
	}
	if err != nil {
		uc.store.Catalog.Reject(errMessage(err, "Failed to delete product"))
		return err
	}

	uc.store.Catalog.Remove(p.ID)
	uc.log.Info("product deleted", zap.String("productId", p.ID))
	return nil
}

// UpdateProductStock reads the remote record and overwrites its stock (floored at 0).
func (uc *ProductUsecase) UpdateProductStock(ctx context.Context, id string, stock int) (productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, ErrInvalidArgument
	}

	uc.store.Catalog.Begin()
	p, err := uc.repo.Get(ctx, pid)
	if err == nil {
		p = p.WithStock(stock)
		err = uc.repo.Save(ctx, p)
	}
	if err != nil {
		uc.store.Catalog.Reject(errMessage(err, "Failed to update product stock"))
		return productdom.Product{}, err
	}

	uc.store.Catalog.Patch(p)
	return p, nil
}

// Like / Dislike are read-increment-write. Concurrent votes can be lost.
func (uc *ProductUsecase) Like(ctx context.Context, id string) (productdom.Product, error) {
	return uc.vote(ctx, id, func(p *productdom.Product) { p.Likes++ })
}

func (uc *ProductUsecase) Dislike(ctx context.Context, id string) (productdom.Product, error) {
	return uc.vote(ctx, id, func(p *productdom.Product) { p.Dislikes++ })
}

func (uc *ProductUsecase) vote(ctx context.Context, id string, apply func(*productdom.Product)) (productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, ErrInvalidArgument
	}

	uc.store.Catalog.Begin()
	p, err := uc.repo.Get(ctx, pid)
	if err == nil {
		apply(&p)
		err = uc.repo.Save(ctx, p)
	}
	if err != nil {
		uc.store.Catalog.Reject(errMessage(err, "Failed to update product"))
		return productdom.Product{}, err
	}

	uc.store.Catalog.Patch(p)
	return p, nil
}

// UploadImage stores the image and points imageUrl at it.
func (uc *ProductUsecase) UploadImage(ctx context.Context, id, contentType string, body io.Reader) (productdom.Product, error) {
	if uc.images == nil {
		return productdom.Product{}, fmt.Errorf("%w: image store", ErrUnavailable)
	}

	uc.store.Catalog.Begin()
	p, err := uc.ownedProduct(ctx, id)
	if err == nil {
		var url string
		url, err = uc.images.Upload(ctx, p.ID, contentType, body)
		p.ImageURL = url
	}
	if err == nil {
		err = uc.repo.Save(ctx, p)
	}
	if err != nil {
		uc.store.Catalog.Reject(errMessage(err, "Failed to upload product image"))
		return productdom.Product{}, err
	}

	uc.store.Catalog.Patch(p)
	return p, nil
}

// ---- views over the in-memory catalog ----

func (uc *ProductUsecase) View(q productdom.Query) []productdom.Product {
	return productdom.Filter(uc.store.Catalog.Items(), q)
}

func (uc *ProductUsecase) Categories() []string {
	return productdom.Categories(uc.store.Catalog.Items())
}

func (uc *ProductUsecase) MyProducts() ([]productdom.Product, error) {
	uid, err := uc.signedIn()
	if err != nil {
		return nil, err
	}
	return productdom.Owned(uc.store.Catalog.Items(), uid), nil
}

func (uc *ProductUsecase) Wishlist() ([]productdom.Product, error) {
	u := uc.store.Auth.User()
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return productdom.WithIDs(uc.store.Catalog.Items(), u.Favorites), nil
}

func (uc *ProductUsecase) signedIn() (string, error) {
	u := uc.store.Auth.User()
	if u == nil || strings.TrimSpace(u.UID) == "" {
		return "", ErrNotSignedIn
	}
	return u.UID, nil
}

func (uc *ProductUsecase) ownedProduct(ctx context.Context, id string) (productdom.Product, error) {
	uid, err := uc.signedIn()
	if err != nil {
		return productdom.Product{}, err
	}
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, ErrInvalidArgument
	}
	p, err := uc.repo.Get(ctx, pid)
	if err != nil {
		return productdom.Product{}, err
	}
	if !p.OwnedBy(uid) {
		return productdom.Product{}, ErrForbidden
	}
	return p, nil
}
