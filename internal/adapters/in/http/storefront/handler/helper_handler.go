// internal/adapters/in/http/storefront/handler/helper_handler.go
package storefrontHandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
	identitydom "storefront/internal/domain/identity"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
)

const maxJSONBody = 1 << 20

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

// readJSON decodes one JSON object (1MB max, unknown fields rejected).
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", usecase.ErrInvalidArgument)
		}
		return fmt.Errorf("%w: invalid json: %v", usecase.ErrInvalidArgument, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: request body must be a single JSON object", usecase.ErrInvalidArgument)
	}
	return nil
}

// currentUID is set by middleware.RequireIdentity.
func currentUID(r *http.Request) string {
	uid, _ := middleware.UIDFrom(r.Context())
	return uid
}

// statusOf maps usecase / domain errors to HTTP status codes.
func statusOf(err error) int {
	var stockErr *usecase.StockAdjustmentError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &stockErr):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrNotSignedIn),
		errors.Is(err, identitydom.ErrRejected):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, productdom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidArgument),
		errors.Is(err, productdom.ErrInvalid),
		errors.Is(err, orderdom.ErrInvalid),
		errors.Is(err, cartdom.ErrInvalidCart),
		errors.Is(err, identitydom.ErrInvalidCredentials),
		errors.Is(err, identitydom.ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeUsecaseErr writes {"error": message} with the mapped status.
// 5xx are logged; the message is still returned (UI shows it as-is).
func writeUsecaseErr(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		log.Warn(op+" failed", zap.Int("status", code), zap.Error(err))
	}

	var stockErr *usecase.StockAdjustmentError
	if errors.As(err, &stockErr) {
		writeJSON(w, code, map[string]any{
			"error":     err.Error(),
			"productId": stockErr.ProductID,
			"applied":   stockErr.Applied,
		})
		return
	}
	writeErr(w, code, err.Error())
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
