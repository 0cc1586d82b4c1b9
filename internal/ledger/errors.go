package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuantity: a positive quantity was required.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInsufficientStock: a decrement would drive a quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrLocationNotFound  = errors.New("location not found")
	ErrLocationInactive  = errors.New("location is not active")
	ErrTableNotFound     = errors.New("table not found")
	// ErrOutOfStock: the local warehouse cannot cover a single unit at
	// add-to-order time.
	ErrOutOfStock = errors.New("product out of stock at location")
	ErrOrderEmpty = errors.New("order has no items")
)

// StockShortage describes one line that could not be covered.
type StockShortage struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Requested float64 `json:"requested"`
	Available float64 `json:"available"`
}

// FinalizeError reports why an order commit was aborted. Finalize is
// all-or-nothing: a single shortage leaves the whole order untouched.
type FinalizeError struct {
	Table     int
	Shortages []StockShortage
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("order for table %d not committed: %d line(s) short on stock", e.Table, len(e.Shortages))
}

func (e *FinalizeError) Unwrap() error { return ErrInsufficientStock }
