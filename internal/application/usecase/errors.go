// internal/application/usecase/errors.go
package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidArgument = errors.New("usecase: invalid argument")
	ErrNotSignedIn     = errors.New("No user is signed in")
	ErrForbidden       = errors.New("usecase: forbidden")
	ErrEmptyCart       = errors.New("Cart is empty")
	ErrUnavailable     = errors.New("usecase: backend not configured")
)

// StockAdjustmentError is returned when one of the per-product stock writes
// that follow a cart write fails. The cart itself has already been written.
// Applied lists the products whose stock was written before the failure.
type StockAdjustmentError struct {
	ProductID string
	Applied   []string
	Err       error
}

func (e *StockAdjustmentError) Error() string {
	return fmt.Sprintf("stock adjustment failed for product %s (%d applied): %v", e.ProductID, len(e.Applied), e.Err)
}

func (e *StockAdjustmentError) Unwrap() error { return e.Err }

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// errMessage is what a slice shows when an operation is rejected.
func errMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
