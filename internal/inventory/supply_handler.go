package inventory

import (
	"github.com/gofiber/fiber/v2"

	"cantina-backend/internal/ledger"
)

type SupplyRequest struct {
	// product id -> quantity to transfer
	Products map[string]float64 `json:"products"`
}

type LocationSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Active   bool    `json:"active"`
	Products int     `json:"products"`
	Units    float64 `json:"units"`
}

// GET /api/locations
func ListLocationsHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := l.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load locations")
		}

		out := make([]LocationSummary, 0, len(state.Locations))
		for _, loc := range state.Locations {
			units := 0.0
			for _, p := range loc.Warehouse {
				units += p.Quantity
			}
			out = append(out, LocationSummary{
				ID:       loc.ID,
				Name:     loc.Name,
				Active:   loc.Active,
				Products: len(loc.Warehouse),
				Units:    units,
			})
		}
		return c.JSON(fiber.Map{"locations": out})
	}
}

// GET /api/locations/:id/stock
func LocationStockHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := l.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load locations")
		}

		location := state.FindLocation(c.Params("id"))
		if location == nil {
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		}

		return c.JSON(fiber.Map{
			"location_id": location.ID,
			"name":        location.Name,
			"active":      location.Active,
			"warehouse":   location.Warehouse,
		})
	}
}

// POST /api/locations/:id/supply
func SupplyHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SupplyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.Products) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No products selected to supply")
		}

		result, err := l.SupplyToLocation(c.Context(), c.Params("id"), body.Products)
		if err != nil {
			return mapLedgerError(err)
		}

		// Per-line semantics: some lines may be rejected while others stick.
		// Nothing applied at all is a no-op failure.
		if result.Applied == 0 {
			return c.Status(fiber.StatusConflict).JSON(result)
		}
		return c.JSON(result)
	}
}
