// internal/domain/product/entity.go
package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a product id does not resolve.
	// The message is shown to the UI as-is.
	ErrNotFound = errors.New("Product not found")

	ErrInvalid = errors.New("product: invalid")
)

// Product is one catalog record.
//
// - ID is the remote key (RTDB push key / Firestore docId). It is never stored inside the record.
// - UserID is the owner (the identity that created the product).
// - Stock never goes negative.
type Product struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
	Likes       int             `json:"likes"`
	Dislikes    int             `json:"dislikes"`
}

// Fields is the editable part of a product (create / update input).
type Fields struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
}

// Normalize trims text fields.
func (f Fields) Normalize() Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	return f
}

func (f Fields) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if f.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}
	if f.Price.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrInvalid)
	}
	if f.Stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrInvalid)
	}
	return nil
}

// New builds a product owned by userID. likes/dislikes start at 0.
func New(id, userID string, f Fields) (Product, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return Product{}, err
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return Product{}, fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	return Product{
		ID:          strings.TrimSpace(id),
		UserID:      uid,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		Stock:       f.Stock,
		ImageURL:    f.ImageURL,
	}, nil
}

// Apply overwrites the editable fields and keeps id / owner / counters.
func (p Product) Apply(f Fields) (Product, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return Product{}, err
	}
	p.Name = f.Name
	p.Description = f.Description
	p.Price = f.Price
	p.Category = f.Category
	p.Stock = f.Stock
	p.ImageURL = f.ImageURL
	return p, nil
}

func (p Product) InStock() bool { return p.Stock > 0 }

// WithStock returns a copy with stock set, floored at 0.
func (p Product) WithStock(stock int) Product {
	if stock < 0 {
		stock = 0
	}
	p.Stock = stock
	return p
}

func (p Product) OwnedBy(uid string) bool {
	uid = strings.TrimSpace(uid)
	return uid != "" && p.UserID == uid
}
