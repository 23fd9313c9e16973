// internal/application/state/cart_slice.go
package state

import (
	"sync"

	cartdom "storefront/internal/domain/cart"
)

// CartSlice mirrors the signed-in identity's cart.
// On rejection items keep the last fulfilled value.
type CartSlice struct {
	mu    sync.RWMutex
	items []cartdom.Line
	meta  Meta
}

type CartSnapshot struct {
	Items []cartdom.Line `json:"items"`
	Meta
}

func (s *CartSlice) Items() []cartdom.Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartdom.Clone(s.items)
}

func (s *CartSlice) Begin() {
	s.mu.Lock()
	s.meta.begin()
	s.mu.Unlock()
}

func (s *CartSlice) Fulfil(items []cartdom.Line) {
	s.mu.Lock()
	s.items = cartdom.Clone(items)
	s.meta.fulfil()
	s.mu.Unlock()
}

func (s *CartSlice) Reject(msg string) {
	s.mu.Lock()
	s.meta.reject(msg)
	s.mu.Unlock()
}

func (s *CartSlice) Meta() Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta.copy()
}

func (s *CartSlice) Snapshot() CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CartSnapshot{Items: cartdom.Clone(s.items), Meta: s.meta.copy()}
}
