// internal/application/state/catalog_slice.go
package state

import (
	"sync"

	productdom "storefront/internal/domain/product"
)

// CatalogSlice is the in-memory mirror of the product collection
// plus a separate selected-product slot (product detail).
type CatalogSlice struct {
	mu       sync.RWMutex
	items    []productdom.Product
	selected *productdom.Product
	meta     Meta
}

type CatalogSnapshot struct {
	Items           []productdom.Product `json:"items"`
	SelectedProduct *productdom.Product  `json:"selectedProduct"`
	Meta
}

func (s *CatalogSlice) Items() []productdom.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.items)
}

func (s *CatalogSlice) Selected() (productdom.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return productdom.Product{}, false
	}
	return *s.selected, true
}

// Lookup checks the list first, then the selected slot.
func (s *CatalogSlice) Lookup(id string) (productdom.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := productdom.Find(s.items, id); ok {
		return p, true
	}
	if s.selected != nil && s.selected.ID == id {
		return *s.selected, true
	}
	return productdom.Product{}, false
}

func (s *CatalogSlice) Begin() {
	s.mu.Lock()
	s.meta.begin()
	s.mu.Unlock()
}

func (s *CatalogSlice) Reject(msg string) {
	s.mu.Lock()
	s.meta.reject(msg)
	s.mu.Unlock()
}

// Fulfil marks the operation done without touching data.
func (s *CatalogSlice) Fulfil() {
	s.mu.Lock()
	s.meta.fulfil()
	s.mu.Unlock()
}

// ReplaceAll replaces the whole collection (fetch / initialize).
func (s *CatalogSlice) ReplaceAll(items []productdom.Product) {
	s.mu.Lock()
	s.items = cloneProducts(items)
	s.meta.fulfil()
	s.mu.Unlock()
}

func (s *CatalogSlice) Select(p productdom.Product) {
	s.mu.Lock()
	s.selected = &p
	s.meta.fulfil()
	s.mu.Unlock()
}

func (s *CatalogSlice) Append(p productdom.Product) {
	s.mu.Lock()
	s.items = append(cloneProducts(s.items), p)
	s.meta.fulfil()
	s.mu.Unlock()
}

// Patch replaces the record with the same id in the list and the selected slot.
func (s *CatalogSlice) Patch(p productdom.Product) {
	s.mu.Lock()
	s.patchLocked(p)
	s.meta.fulfil()
	s.mu.Unlock()
}

func (s *CatalogSlice) Remove(id string) {
	s.mu.Lock()
	out := make([]productdom.Product, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	s.items = out
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.meta.fulfil()
	s.mu.Unlock()
}

func (s *CatalogSlice) Snapshot() CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sel *productdom.Product
	if s.selected != nil {
		c := *s.selected
		sel = &c
	}
	return CatalogSnapshot{Items: cloneProducts(s.items), SelectedProduct: sel, Meta: s.meta.copy()}
}

func (s *CatalogSlice) patchLocked(p productdom.Product) {
	next := cloneProducts(s.items)
	for i := range next {
		if next[i].ID == p.ID {
			next[i] = p
		}
	}
	s.items = next
	if s.selected != nil && s.selected.ID == p.ID {
		c := p
		s.selected = &c
	}
}

func cloneProducts(in []productdom.Product) []productdom.Product {
	out := make([]productdom.Product, len(in))
	copy(out, in)
	return out
}
