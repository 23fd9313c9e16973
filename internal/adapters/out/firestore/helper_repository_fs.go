// internal/adapters/out/firestore/helper_repository_fs.go
package firestore

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdom "storefront/internal/domain/cart"
	productdom "storefront/internal/domain/product"
)

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case time.Time:
		return t.UnixMilli()
	default:
		return int64(asInt(v))
	}
}

// asDecimal accepts the string form we write and the number form older documents may carry.
func asDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(t)
	case int64:
		return decimal.NewFromInt(t)
	case int:
		return decimal.NewFromInt(int64(t))
	default:
		return decimal.Zero
	}
}

// ---- product fields (shared by products, carts, orders) ----

func productFields(p productdom.Product) map[string]any {
	return map[string]any{
		"userId":      p.UserID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"category":    p.Category,
		"stock":       p.Stock,
		"imageUrl":    p.ImageURL,
		"likes":       p.Likes,
		"dislikes":    p.Dislikes,
	}
}

func productFromFields(id string, m map[string]any) productdom.Product {
	return productdom.Product{
		ID:          strings.TrimSpace(id),
		UserID:      strings.TrimSpace(asString(m["userId"])),
		Name:        asString(m["name"]),
		Description: asString(m["description"]),
		Price:       asDecimal(m["price"]),
		Category:    asString(m["category"]),
		Stock:       asInt(m["stock"]),
		ImageURL:    asString(m["imageUrl"]),
		Likes:       asInt(m["likes"]),
		Dislikes:    asInt(m["dislikes"]),
	}
}

// ---- cart lines ----

func linesToFields(lines []cartdom.Line) []any {
	out := make([]any, 0, len(lines))
	for _, l := range lines {
		m := productFields(l.Product)
		m["id"] = l.ID
		m["quantity"] = l.Quantity
		out = append(out, m)
	}
	return out
}

// linesFromField parses an items field.
//
// Supported shapes:
// 1) items: [ {id, ...product, quantity} ]
// 2) items: map[productId] = {...product, quantity}   (legacy)
// 3) items: map[productId] = quantity                (legacy, no snapshot)
func linesFromField(v any) []cartdom.Line {
	out := make([]cartdom.Line, 0)
	switch t := v.(type) {
	case []any:
		for _, it := range t {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, lineFromMap(asString(m["id"]), m))
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if m, ok := t[k].(map[string]any); ok {
				id := asString(m["id"])
				if strings.TrimSpace(id) == "" {
					id = k
				}
				out = append(out, lineFromMap(id, m))
				continue
			}
			out = append(out, cartdom.Line{Product: productdom.Product{ID: k}, Quantity: asInt(t[k])})
		}
	}
	return cartdom.Normalize(out)
}

func lineFromMap(id string, m map[string]any) cartdom.Line {
	qty := asInt(m["quantity"])
	if qty == 0 {
		qty = asInt(m["qty"])
	}
	return cartdom.Line{Product: productFromFields(id, m), Quantity: qty}
}
