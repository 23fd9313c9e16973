// internal/application/state/store.go
package state

// Store is the process-wide state container.
// It is built once by the composition root and passed to every usecase.
type Store struct {
	Auth    *AuthSlice
	Cart    *CartSlice
	Catalog *CatalogSlice
	Orders  *OrdersSlice
}

func NewStore() *Store {
	return &Store{
		Auth:    &AuthSlice{meta: idleMeta()},
		Cart:    &CartSlice{items: nil, meta: idleMeta()},
		Catalog: &CatalogSlice{meta: idleMeta()},
		Orders:  &OrdersSlice{meta: idleMeta()},
	}
}

// Snapshot is the read model served to the UI layer.
type Snapshot struct {
	Auth     AuthSnapshot    `json:"auth"`
	Cart     CartSnapshot    `json:"cart"`
	Products CatalogSnapshot `json:"products"`
	Orders   OrdersSnapshot  `json:"orders"`
}

// Snapshot copies each slice. Slices are read one after another (not atomically across slices).
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Auth:     s.Auth.Snapshot(),
		Cart:     s.Cart.Snapshot(),
		Products: s.Catalog.Snapshot(),
		Orders:   s.Orders.Snapshot(),
	}
}
