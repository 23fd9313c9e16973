// internal/application/state/orders_slice.go
package state

import (
	"sync"

	orderdom "storefront/internal/domain/order"
)

type OrdersSlice struct {
	mu    sync.RWMutex
	items []orderdom.Order
	meta  Meta
}

type OrdersSnapshot struct {
	Items []orderdom.Order `json:"items"`
	Meta
}

func (s *OrdersSlice) Begin() {
	s.mu.Lock()
	s.meta.begin()
	s.mu.Unlock()
}

func (s *OrdersSlice) Reject(msg string) {
	s.mu.Lock()
	s.meta.reject(msg)
	s.mu.Unlock()
}

func (s *OrdersSlice) ReplaceAll(items []orderdom.Order) {
	s.mu.Lock()
	s.items = append([]orderdom.Order{}, items...)
	s.meta.fulfil()
	s.mu.Unlock()
}

// Prepend puts a new order first (newest first).
func (s *OrdersSlice) Prepend(o orderdom.Order) {
	s.mu.Lock()
	s.items = append([]orderdom.Order{o}, s.items...)
	s.meta.fulfil()
	s.mu.Unlock()
}

func (s *OrdersSlice) Patch(o orderdom.Order) {
	s.mu.Lock()
	next := append([]orderdom.Order{}, s.items...)
	for i := range next {
		if next[i].ID == o.ID {
			next[i] = o
		}
	}
	s.items = next
	s.meta.fulfil()
	s.mu.Unlock()
}

func (s *OrdersSlice) Items() []orderdom.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orderdom.Order{}, s.items...)
}

func (s *OrdersSlice) Snapshot() OrdersSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return OrdersSnapshot{Items: append([]orderdom.Order{}, s.items...), Meta: s.meta.copy()}
}
