package models

import "time"

type ProductCategory string

const (
	CategoryKitchen ProductCategory = "kitchen"
	CategoryCanteen ProductCategory = "canteen"
)

// Product is both the item master and the stock record: the same shape is
// used in the central warehouse and in every local warehouse.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Quantity    float64         `json:"quantity"` // never negative
	Unit        string          `json:"unit"`     // kg, litros, unidades... display only
	UnitPrice   float64         `json:"unit_price"`
	LastUpdated time.Time       `json:"last_updated"`
}

// Value is the stock valuation of this record.
func (p Product) Value() float64 {
	return p.Quantity * p.UnitPrice
}
