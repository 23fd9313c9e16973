// internal/adapters/in/http/storefront/handler/state_handler.go
package storefrontHandler

import (
	"net/http"

	"storefront/internal/application/state"
)

// StateHandler serves the whole process state (auth, cart, products, orders).
type StateHandler struct {
	store *state.Store
}

func NewStateHandler(store *state.Store) *StateHandler {
	return &StateHandler{store: store}
}

// GET /api/state
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeErr(w, http.StatusInternalServerError, "state is not configured")
		return
	}
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}
