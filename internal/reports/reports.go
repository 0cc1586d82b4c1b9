// Package reports derives read-only aggregates from a loaded snapshot. No
// function here mutates state; the same input always yields the same output.
package reports

import (
	"time"

	"cantina-backend/internal/models"
)

// CategoryStock sums one category's product count and total units.
type CategoryStock struct {
	Category models.ProductCategory `json:"category"`
	Products int                    `json:"products"`
	Units    float64                `json:"units"`
}

// ReplenishmentLine is one product below the target level and what refilling
// it would cost.
type ReplenishmentLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Needed    float64 `json:"needed"`
	Cost      float64 `json:"cost"`
}

// StockByCategory partitions a product set into the two operational
// categories, kitchen first.
func StockByCategory(products []models.Product) []CategoryStock {
	rows := []CategoryStock{
		{Category: models.CategoryKitchen},
		{Category: models.CategoryCanteen},
	}
	for _, p := range products {
		for i := range rows {
			if rows[i].Category == p.Category {
				rows[i].Products++
				rows[i].Units += p.Quantity
			}
		}
	}
	return rows
}

// InventoryValue is the total valuation of a product set.
func InventoryValue(products []models.Product) float64 {
	total := 0.0
	for _, p := range products {
		total += p.Value()
	}
	return total
}

// TotalUnits sums quantities across a product set.
func TotalUnits(products []models.Product) float64 {
	total := 0.0
	for _, p := range products {
		total += p.Quantity
	}
	return total
}

// FilterByCategory keeps the products of one category.
func FilterByCategory(products []models.Product, category models.ProductCategory) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// LowStock returns the products under the threshold. Thresholds are
// call-site policy: 20 for the central warehouse, 10 for local views with 5
// as the critical cut.
func LowStock(products []models.Product, threshold float64) []models.Product {
	var out []models.Product
	for _, p := range products {
		if p.Quantity < threshold {
			out = append(out, p)
		}
	}
	return out
}

// ReplenishmentPlan lists every product below targetLevel with the quantity
// needed to reach it and the cost of buying that quantity. Needed is never
// negative, even against a (defensively) negative stored quantity.
func ReplenishmentPlan(products []models.Product, targetLevel float64) ([]ReplenishmentLine, float64) {
	var lines []ReplenishmentLine
	totalCost := 0.0
	for _, p := range products {
		if p.Quantity >= targetLevel {
			continue
		}
		needed := targetLevel - p.Quantity
		if needed < 0 {
			needed = 0
		}
		cost := needed * p.UnitPrice
		lines = append(lines, ReplenishmentLine{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Needed:    needed,
			Cost:      cost,
		})
		totalCost += cost
	}
	return lines, totalCost
}

// MovementsInWindow filters the ledger by kind, endpoint and time. The
// endpoint matches either origin or destination; empty strings match
// everything, zero since matches all of history.
func MovementsInWindow(movements []models.Movement, kind models.MovementKind, endpoint string, since time.Time) []models.Movement {
	var out []models.Movement
	for _, m := range movements {
		if kind != "" && m.Kind != kind {
			continue
		}
		if endpoint != "" && m.Origin != endpoint && m.Destination != endpoint {
			continue
		}
		if m.Timestamp.Before(since) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// MovementsForProducts keeps movements whose product belongs to the set.
func MovementsForProducts(movements []models.Movement, products []models.Product) []models.Movement {
	ids := make(map[string]struct{}, len(products))
	for _, p := range products {
		ids[p.ID] = struct{}{}
	}
	var out []models.Movement
	for _, m := range movements {
		if _, ok := ids[m.ProductID]; ok {
			out = append(out, m)
		}
	}
	return out
}

// TotalQuantity sums movement quantities.
func TotalQuantity(movements []models.Movement) float64 {
	total := 0.0
	for _, m := range movements {
		total += m.Quantity
	}
	return total
}

// QuantityByProduct breaks a movement set down per product.
func QuantityByProduct(movements []models.Movement) map[string]float64 {
	out := make(map[string]float64)
	for _, m := range movements {
		out[m.ProductID] += m.Quantity
	}
	return out
}
