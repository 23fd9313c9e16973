// internal/adapters/in/http/storefront/handler/product_handler.go
package storefrontHandler

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	usecase "storefront/internal/application/usecase"
	productdom "storefront/internal/domain/product"
)

const maxImageUpload = 5 << 20

// ProductHandler serves /api/products and /api/wishlist.
type ProductHandler struct {
	uc  *usecase.ProductUsecase
	log *zap.Logger
}

func NewProductHandler(uc *usecase.ProductUsecase, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: nopIfNil(logger).Named("product_handler")}
}

type updateStockRequest struct {
	Stock *int `json:"stock"`
}

// GET /api/products?search=&category=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := productdom.Query{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": h.uc.View(q)})
}

// POST /api/products/fetch
func (h *ProductHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.FetchProducts(r.Context())
	if err != nil {
		writeUsecaseErr(w, h.log, "fetch products", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// POST /api/products/seed
func (h *ProductHandler) Seed(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.InitializeProducts(r.Context())
	if err != nil {
		writeUsecaseErr(w, h.log, "initialize products", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GET /api/products/categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": h.uc.Categories()})
}

// GET /api/products/mine
func (h *ProductHandler) Mine(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.MyProducts()
	if err != nil {
		writeUsecaseErr(w, h.log, "my products", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GET /api/wishlist
func (h *ProductHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.Wishlist()
	if err != nil {
		writeUsecaseErr(w, h.log, "wishlist", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.FetchProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseErr(w, h.log, "fetch product", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f productdom.Fields
	if err := readJSON(w, r, &f); err != nil {
		writeUsecaseErr(w, h.log, "create product", err)
		return
	}
	p, err := h.uc.CreateProduct(r.Context(), f)
	if err != nil {
		writeUsecaseErr(w, h.log, "create product", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var f productdom.Fields
	if err := readJSON(w, r, &f); err != nil {
		writeUsecaseErr(w, h.log, "update product", err)
		return
	}
	p, err := h.uc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), f)
	if err != nil {
		writeUsecaseErr(w, h.log, "update product", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUsecaseErr(w, h.log, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/products/{id}/stock {stock}
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if err := readJSON(w, r, &req); err != nil {
		writeUsecaseErr(w, h.log, "update stock", err)
		return
	}
	if req.Stock == nil {
		writeErr(w, http.StatusBadRequest, "stock is required")
		return
	}
	if *req.Stock < 0 {
		writeErr(w, http.StatusBadRequest, "stock must be >= 0")
		return
	}
	p, err := h.uc.UpdateProductStock(r.Context(), chi.URLParam(r, "id"), *req.Stock)
	if err != nil {
		writeUsecaseErr(w, h.log, "update stock", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// POST /api/products/{id}/like
func (h *ProductHandler) Like(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.Like(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseErr(w, h.log, "like", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// POST /api/products/{id}/dislike
func (h *ProductHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.Dislike(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseErr(w, h.log, "dislike", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// POST /api/products/{id}/image (multipart field "image")
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload+(1<<20))
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeErr(w, http.StatusBadRequest, "image is required")
			return
		}
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	body := bufio.NewReader(file)
	contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if contentType == "" || contentType == "application/octet-stream" {
		head, _ := body.Peek(512)
		contentType = http.DetectContentType(head)
	}
	if !strings.HasPrefix(contentType, "image/") {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("unsupported content type %q", contentType))
		return
	}

	p, err := h.uc.UploadImage(r.Context(), chi.URLParam(r, "id"), contentType, body)
	if err != nil {
		writeUsecaseErr(w, h.log, "upload image", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
