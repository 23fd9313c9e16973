// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdom "storefront/internal/domain/cart"
)

var (
	ErrNotFound = errors.New("Order not found")
	ErrInvalid  = errors.New("order: invalid")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalid, s)
	}
}

// Order is a placed cart.
// CreatedAt / UpdatedAt are unix milliseconds (same as the stored records).
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []cartdom.Line  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
}

// New builds a pending order. total is computed from items.
func New(id, uid string, items []cartdom.Line, now time.Time) (Order, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return Order{}, fmt.Errorf("%w: userId is required", ErrInvalid)
	}
	lines := cartdom.Normalize(items)
	if len(lines) == 0 {
		return Order{}, fmt.Errorf("%w: items are empty", ErrInvalid)
	}
	ms := now.UnixMilli()
	return Order{
		ID:        strings.TrimSpace(id),
		UserID:    uid,
		Items:     lines,
		Total:     cartdom.Total(lines),
		Status:    StatusPending,
		CreatedAt: ms,
		UpdatedAt: ms,
	}, nil
}

func (o Order) SetStatus(st Status, now time.Time) Order {
	o.Status = st
	o.UpdatedAt = now.UnixMilli()
	return o
}

// SortNewestFirst orders by createdAt desc (id asc as tie-break).
func SortNewestFirst(items []Order) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt > items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})
}
