package reports

import (
	"time"

	"cantina-backend/internal/models"
)

// Summary is the dashboard headline block.
type Summary struct {
	CentralUnits       float64 `json:"central_units"`
	CentralValue       float64 `json:"central_value"`
	LocationUnits      float64 `json:"location_units"`
	LowStockCount      int     `json:"low_stock_count"`
	MovementsToday     int     `json:"movements_today"`
	KitchenProducts    int     `json:"kitchen_products"`
	CanteenProducts    int     `json:"canteen_products"`
	ActiveLocationID   string  `json:"active_location_id,omitempty"`
	ActiveLocationName string  `json:"active_location_name,omitempty"`
}

// TrendPoint is one day of supply vs. consumption totals.
type TrendPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Supplied float64 `json:"supplied"`
	Consumed float64 `json:"consumed"`
}

// BuildSummary computes the dashboard block over the whole snapshot.
// lowStockThreshold is caller policy (20 for the central view).
func BuildSummary(state *models.AppState, now time.Time, lowStockThreshold float64) Summary {
	s := Summary{
		CentralUnits:  TotalUnits(state.Central),
		CentralValue:  InventoryValue(state.Central),
		LowStockCount: len(LowStock(state.Central, lowStockThreshold)),
	}

	for _, row := range StockByCategory(state.Central) {
		switch row.Category {
		case models.CategoryKitchen:
			s.KitchenProducts = row.Products
		case models.CategoryCanteen:
			s.CanteenProducts = row.Products
		}
	}

	for i := range state.Locations {
		if state.Locations[i].Active {
			s.ActiveLocationID = state.Locations[i].ID
			s.ActiveLocationName = state.Locations[i].Name
			s.LocationUnits = TotalUnits(state.Locations[i].Warehouse)
			break
		}
	}

	midnight, _ := WindowStart(PeriodToday, now)
	for _, m := range state.Movements {
		if !m.Timestamp.Before(midnight) {
			s.MovementsToday++
		}
	}
	return s
}

// DailyTrend builds a per-day series of supply and consumption totals for
// one location, restricted to the given product set, ending today.
func DailyTrend(state *models.AppState, locationID string, products []models.Product, days int, now time.Time) []TrendPoint {
	supplies := MovementsForProducts(
		MovementsInWindow(state.Movements, models.MovementSupply, locationID, time.Time{}), products)
	consumptions := MovementsForProducts(
		MovementsInWindow(state.Movements, models.MovementConsumption, locationID, time.Time{}), products)

	points := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		point := TrendPoint{Date: dayStart.Format("2006-01-02")}
		for _, m := range supplies {
			if !m.Timestamp.Before(dayStart) && m.Timestamp.Before(dayEnd) {
				point.Supplied += m.Quantity
			}
		}
		for _, m := range consumptions {
			if !m.Timestamp.Before(dayStart) && m.Timestamp.Before(dayEnd) {
				point.Consumed += m.Quantity
			}
		}
		points = append(points, point)
	}
	return points
}
