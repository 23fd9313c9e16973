// internal/adapters/out/rtdb/records.go
package rtdb

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	cartdom "storefront/internal/domain/cart"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
)

// productRecord is products/{id}. price is stored as a JSON number.
type productRecord struct {
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Category    string      `json:"category"`
	Stock       int         `json:"stock"`
	ImageURL    string      `json:"imageUrl"`
	Likes       int         `json:"likes"`
	Dislikes    int         `json:"dislikes"`
}

// lineRecord is one element of carts/{uid}/items and orders/{uid}/{id}/items.
type lineRecord struct {
	ID string `json:"id"`
	productRecord
	Quantity int `json:"quantity"`
}

type cartRecord struct {
	Items []lineRecord `json:"items"`
}

type orderRecord struct {
	UserID    string          `json:"userId"`
	Items     json.RawMessage `json:"items"`
	Total     json.Number     `json:"total"`
	Status    string          `json:"status"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
}

func productToRecord(p productdom.Product) productRecord {
	return productRecord{
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Price:       json.Number(p.Price.String()),
		Category:    p.Category,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Likes:       p.Likes,
		Dislikes:    p.Dislikes,
	}
}

func recordToProduct(id string, r productRecord) productdom.Product {
	return productdom.Product{
		ID:          id,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		Price:       asDecimal(r.Price),
		Category:    r.Category,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		Likes:       r.Likes,
		Dislikes:    r.Dislikes,
	}
}

func linesToRecords(lines []cartdom.Line) []lineRecord {
	out := make([]lineRecord, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineRecord{ID: l.ID, productRecord: productToRecord(l.Product), Quantity: l.Quantity})
	}
	return out
}

// decodeLines accepts an array or an index-keyed object (sparse arrays come back as objects).
func decodeLines(raw json.RawMessage) ([]cartdom.Line, error) {
	recs, err := decodeKeyed[lineRecord](raw)
	if err != nil {
		return nil, err
	}
	out := make([]cartdom.Line, 0, len(recs))
	for _, kr := range recs {
		r := kr.value
		out = append(out, cartdom.Line{Product: recordToProduct(strings.TrimSpace(r.ID), r.productRecord), Quantity: r.Quantity})
	}
	return cartdom.Normalize(out), nil
}

func orderToRecord(o orderdom.Order) (orderRecord, error) {
	items, err := json.Marshal(linesToRecords(o.Items))
	if err != nil {
		return orderRecord{}, err
	}
	return orderRecord{
		UserID:    o.UserID,
		Items:     items,
		Total:     json.Number(o.Total.String()),
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}, nil
}

func recordToOrder(id string, r orderRecord) (orderdom.Order, error) {
	items, err := decodeLines(r.Items)
	if err != nil {
		return orderdom.Order{}, err
	}
	st, err := orderdom.ParseStatus(r.Status)
	if err != nil {
		st = orderdom.StatusPending
	}
	return orderdom.Order{
		ID:        id,
		UserID:    r.UserID,
		Items:     items,
		Total:     asDecimal(r.Total),
		Status:    st,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

type keyed[T any] struct {
	key   string
	value T
}

// decodeKeyed decodes a collection node. RTDB returns an array when the child keys look
// like indexes (holes are null) and an object otherwise. Result is sorted by key
// (numeric keys numerically).
func decodeKeyed[T any](raw json.RawMessage) ([]keyed[T], error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}

	if strings.HasPrefix(s, "[") {
		var arr []*T
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, fmt.Errorf("rtdb: decode list: %w", err)
		}
		out := make([]keyed[T], 0, len(arr))
		for i, v := range arr {
			if v != nil {
				out = append(out, keyed[T]{key: strconv.Itoa(i), value: *v})
			}
		}
		return out, nil
	}

	var m map[string]*T
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("rtdb: decode map: %w", err)
	}
	out := make([]keyed[T], 0, len(m))
	for k, v := range m {
		if v != nil {
			out = append(out, keyed[T]{key: k, value: *v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return keyLess(out[i].key, out[j].key) })
	return out, nil
}

func keyLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}

func asDecimal(n json.Number) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(n.String()))
	if err != nil {
		return decimal.Zero
	}
	return d
}
