// internal/adapters/in/http/storefront/handler/order_handler.go
package storefrontHandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/application/state"
	usecase "storefront/internal/application/usecase"
)

// OrderHandler serves /api/orders and /api/checkout. Every route runs behind RequireIdentity.
type OrderHandler struct {
	uc    *usecase.OrderUsecase
	store *state.Store
	log   *zap.Logger
}

func NewOrderHandler(uc *usecase.OrderUsecase, store *state.Store, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, store: store, log: nopIfNil(logger).Named("order_handler")}
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// GET /api/orders (orders slice as last fetched)
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.store.Orders.Items()})
}

// POST /api/orders/fetch
func (h *OrderHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.FetchUserOrders(r.Context(), currentUID(r))
	if err != nil {
		writeUsecaseErr(w, h.log, "fetch orders", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// POST /api/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	o, err := h.uc.Checkout(r.Context(), currentUID(r))
	if err != nil {
		writeUsecaseErr(w, h.log, "checkout", err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// PUT /api/orders/{id}/status {status}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "update order status", err)
		return
	}
	o, err := h.uc.UpdateOrderStatus(r.Context(), currentUID(r), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeUsecaseErr(w, h.log, "update order status", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
