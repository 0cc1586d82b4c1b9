package dashboard

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"cantina-backend/internal/ledger"
	"cantina-backend/internal/models"
	"cantina-backend/internal/reports"
)

// Default thresholds: call-site policy, not report-engine constants. The
// central view alerts under 20 units; local views alert under 10 with 5 as
// the critical cut, and replenishment refills up to 20.
const (
	CentralLowStockThreshold = 20.0
	LocalLowStockThreshold   = 10.0
	LocalCriticalThreshold   = 5.0
	ReplenishTargetLevel     = 20.0
)

// GET /api/dashboard/summary
func SummaryHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := l.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load snapshot")
		}
		return c.JSON(reports.BuildSummary(state, time.Now(), CentralLowStockThreshold))
	}
}

// GET /api/reports/inventory?scope=central|<locationID>&category=&threshold=&target=
func InventoryReportHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := l.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load snapshot")
		}

		scope := c.Query("scope", "central")
		var products []models.Product
		threshold := CentralLowStockThreshold
		if scope == "central" {
			products = state.Central
		} else {
			location := state.FindLocation(scope)
			if location == nil {
				return fiber.NewError(fiber.StatusNotFound, "Location not found")
			}
			products = location.Warehouse
			threshold = LocalLowStockThreshold
		}

		if cat := c.Query("category"); cat != "" {
			products = reports.FilterByCategory(products, models.ProductCategory(cat))
		}
		threshold = queryFloat(c, "threshold", threshold)
		target := queryFloat(c, "target", ReplenishTargetLevel)

		plan, planCost := reports.ReplenishmentPlan(products, target)
		resp := fiber.Map{
			"scope":              scope,
			"stock_by_category":  reports.StockByCategory(products),
			"inventory_value":    reports.InventoryValue(products),
			"total_units":        reports.TotalUnits(products),
			"low_stock":          reports.LowStock(products, threshold),
			"replenishment":      plan,
			"replenishment_cost": planCost,
		}
		if scope != "central" {
			resp["critical_stock"] = reports.LowStock(products, LocalCriticalThreshold)
		}
		return c.JSON(resp)
	}
}

// GET /api/reports/movements?period=week&location_id=&category=
func MovementsReportHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := l.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load snapshot")
		}

		now := time.Now()
		period := c.Query("period", reports.PeriodWeek)
		since, err := reports.WindowStart(period, now)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Period must be 'today', 'week' or 'month'")
		}

		locationID := c.Query("location_id")
		if locationID == "" {
			for _, loc := range state.Locations {
				if loc.Active {
					locationID = loc.ID
					break
				}
			}
		}
		location := state.FindLocation(locationID)
		if location == nil {
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		}

		products := location.Warehouse
		if cat := c.Query("category"); cat != "" {
			products = reports.FilterByCategory(products, models.ProductCategory(cat))
		}

		supplies := reports.MovementsForProducts(
			reports.MovementsInWindow(state.Movements, models.MovementSupply, locationID, since), products)
		consumptions := reports.MovementsForProducts(
			reports.MovementsInWindow(state.Movements, models.MovementConsumption, locationID, since), products)

		return c.JSON(fiber.Map{
			"location_id":         locationID,
			"period":              period,
			"from":                since.Format(time.RFC3339),
			"total_supplied":      reports.TotalQuantity(supplies),
			"total_consumed":      reports.TotalQuantity(consumptions),
			"supplied_by_product": reports.QuantityByProduct(supplies),
			"consumed_by_product": reports.QuantityByProduct(consumptions),
			"current_stock":       reports.TotalUnits(products),
			"daily_trend":         reports.DailyTrend(state, locationID, products, reports.WindowDays(period), now),
		})
	}
}

func queryFloat(c *fiber.Ctx, key string, def float64) float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
