package tables

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"cantina-backend/internal/ledger"
)

type AddItemRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"` // optional; defaults to the active location
}

// GET /api/tables
func ListTablesHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := l.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load orders")
		}
		return c.JSON(fiber.Map{"tables": state.TableOrders})
	}
}

// POST /api/tables/:n/items
func AddItemHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := tableNumber(c)
		if err != nil {
			return err
		}

		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ProductID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "product_id is required")
		}

		locationID, err := resolveLocation(c, l, body.LocationID)
		if err != nil {
			return err
		}

		order, err := l.AddItem(c.Context(), locationID, table, body.ProductID)
		if err != nil {
			return mapOrderError(err)
		}
		return c.JSON(order)
	}
}

// DELETE /api/tables/:n/items/:productId  (?all=true removes the whole line)
func RemoveItemHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := tableNumber(c)
		if err != nil {
			return err
		}

		locationID, err := resolveLocation(c, l, c.Query("location_id"))
		if err != nil {
			return err
		}

		productID := c.Params("productId")
		var order interface{}
		if c.Query("all") == "true" {
			order, err = l.RemoveLine(c.Context(), locationID, table, productID)
		} else {
			order, err = l.RemoveOneUnit(c.Context(), locationID, table, productID)
		}
		if err != nil {
			return mapOrderError(err)
		}
		return c.JSON(order)
	}
}

// POST /api/tables/:n/finalize
func FinalizeHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := tableNumber(c)
		if err != nil {
			return err
		}

		locationID, err := resolveLocation(c, l, c.Query("location_id"))
		if err != nil {
			return err
		}

		applied, err := l.Finalize(c.Context(), locationID, table)
		if err != nil {
			var finalizeErr *ledger.FinalizeError
			if errors.As(err, &finalizeErr) {
				// All-or-nothing: report every short line, commit nothing.
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"table":     finalizeErr.Table,
					"shortages": finalizeErr.Shortages,
				})
			}
			return mapOrderError(err)
		}

		return c.JSON(fiber.Map{"table": table, "lines_consumed": applied})
	}
}

// POST /api/tables/:n/cancel
func CancelHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := tableNumber(c)
		if err != nil {
			return err
		}

		locationID, err := resolveLocation(c, l, c.Query("location_id"))
		if err != nil {
			return err
		}

		if err := l.Cancel(c.Context(), locationID, table); err != nil {
			return mapOrderError(err)
		}
		return c.JSON(fiber.Map{"table": table, "cancelled": true})
	}
}

func tableNumber(c *fiber.Ctx) (int, error) {
	n, err := strconv.Atoi(c.Params("n"))
	if err != nil || n <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Table number is invalid")
	}
	return n, nil
}

// resolveLocation falls back to the first active location when the caller
// does not name one; the café runs a single open site day to day.
func resolveLocation(c *fiber.Ctx, l *ledger.Ledger, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}

	state, err := l.Snapshot(c.Context())
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Could not load locations")
	}
	for _, loc := range state.Locations {
		if loc.Active {
			return loc.ID, nil
		}
	}
	return "", fiber.NewError(fiber.StatusConflict, "No active location")
}

func mapOrderError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrTableNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Table not found")
	case errors.Is(err, ledger.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Location not found")
	case errors.Is(err, ledger.ErrLocationInactive):
		return fiber.NewError(fiber.StatusConflict, "Location is not active")
	case errors.Is(err, ledger.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Product is not on this order")
	case errors.Is(err, ledger.ErrOutOfStock):
		return fiber.NewError(fiber.StatusConflict, "Product is out of stock at this location")
	case errors.Is(err, ledger.ErrOrderEmpty):
		return fiber.NewError(fiber.StatusConflict, "Order has no items")
	default:
		return err
	}
}
