// internal/domain/product/query.go
package product

import "strings"

// Query is the catalog filter used by the product listing.
// Empty Search / Category match everything.
type Query struct {
	Search   string
	Category string
}

// Match: name OR description contains Search (case-insensitive) AND category equals Category.
func (q Query) Match(p Product) bool {
	if strings.TrimSpace(q.Search) != "" {
		s := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Description), s) {
			return false
		}
	}
	if c := strings.TrimSpace(q.Category); c != "" && p.Category != c {
		return false
	}
	return true
}

func Filter(items []Product, q Query) []Product {
	out := make([]Product, 0, len(items))
	for _, p := range items {
		if q.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns distinct categories in first-seen order.
func Categories(items []Product) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, p := range items {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Owned returns the products whose owner is uid ("My products").
func Owned(items []Product, uid string) []Product {
	out := make([]Product, 0)
	for _, p := range items {
		if p.OwnedBy(uid) {
			out = append(out, p)
		}
	}
	return out
}

// WithIDs keeps catalog order and returns the products whose id is in ids (wishlist).
func WithIDs(items []Product, ids []string) []Product {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]Product, 0, len(ids))
	for _, p := range items {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

func Find(items []Product, id string) (Product, bool) {
	for _, p := range items {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
