// internal/adapters/in/http/storefront/handler/cart_handler.go
package storefrontHandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
)

// CartHandler serves /api/cart. Every route runs behind RequireIdentity.
type CartHandler struct {
	uc  *usecase.CartUsecase
	log *zap.Logger
}

func NewCartHandler(uc *usecase.CartUsecase, logger *zap.Logger) *CartHandler {
	return &CartHandler{uc: uc, log: nopIfNil(logger).Named("cart_handler")}
}

type updateCartRequest struct {
	Items []cartdom.Line `json:"items"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.uc.Summary())
}

// POST /api/cart/fetch
func (h *CartHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	if _, err := h.uc.FetchCart(r.Context(), currentUID(r)); err != nil {
		writeUsecaseErr(w, h.log, "fetch cart", err)
		return
	}
	writeJSON(w, http.StatusOK, h.uc.Summary())
}

// PUT /api/cart {items}
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "update cart", err)
		return
	}
	if _, err := h.uc.UpdateCart(r.Context(), currentUID(r), req.Items); err != nil {
		writeUsecaseErr(w, h.log, "update cart", err)
		return
	}
	writeJSON(w, http.StatusOK, h.uc.Summary())
}

// POST /api/cart/items {productId}
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "add to cart", err)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		writeErr(w, http.StatusBadRequest, "productId is required")
		return
	}
	change, err := h.uc.AddToCart(r.Context(), currentUID(r), req.ProductID)
	if err != nil {
		writeUsecaseErr(w, h.log, "add to cart", err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

// PUT /api/cart/items/{productId} {quantity}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "set quantity", err)
		return
	}
	if req.Quantity == nil {
		writeErr(w, http.StatusBadRequest, "quantity is required")
		return
	}
	change, err := h.uc.SetQuantity(r.Context(), currentUID(r), chi.URLParam(r, "productId"), *req.Quantity)
	if err != nil {
		writeUsecaseErr(w, h.log, "set quantity", err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

// DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if _, err := h.uc.RemoveItem(r.Context(), currentUID(r), chi.URLParam(r, "productId")); err != nil {
		writeUsecaseErr(w, h.log, "remove item", err)
		return
	}
	writeJSON(w, http.StatusOK, h.uc.Summary())
}

// DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.ClearCart(r.Context(), currentUID(r)); err != nil {
		writeUsecaseErr(w, h.log, "clear cart", err)
		return
	}
	writeJSON(w, http.StatusOK, h.uc.Summary())
}
