package inventory

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cantina-backend/internal/ledger"
	"cantina-backend/internal/models"
)

type CreateProductRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"` // kitchen | canteen
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
}

type UpdateProductRequest struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

type RestockRequest struct {
	Quantity float64 `json:"quantity"`
}

// GET /api/central/products
func ListCentralProductsHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := l.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load inventory")
		}

		products := state.Central
		if cat := c.Query("category"); cat != "" {
			filtered := products[:0:0]
			for _, p := range products {
				if string(p.Category) == cat {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}

		return c.JSON(fiber.Map{"products": products})
	}
}

// POST /api/central/products
func CreateProductHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
		}
		category := models.ProductCategory(body.Category)
		if category != models.CategoryKitchen && category != models.CategoryCanteen {
			return fiber.NewError(fiber.StatusBadRequest, "Category must be 'kitchen' or 'canteen'")
		}

		product, err := l.ReceiveIntoCentral(c.Context(), ledger.ProductDraft{
			Name:      body.Name,
			Category:  category,
			Quantity:  body.Quantity,
			Unit:      body.Unit,
			UnitPrice: body.UnitPrice,
		})
		if err != nil {
			return mapLedgerError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// PUT /api/central/products/:id
func UpdateProductHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		product, err := l.UpdateCentralProduct(c.Context(), c.Params("id"), body.Name, body.UnitPrice)
		if err != nil {
			return mapLedgerError(err)
		}
		return c.JSON(product)
	}
}

// POST /api/central/products/:id/restock
func RestockProductHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RestockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		product, err := l.RestockExisting(c.Context(), c.Params("id"), body.Quantity)
		if err != nil {
			return mapLedgerError(err)
		}
		return c.JSON(product)
	}
}

// mapLedgerError translates ledger failures to HTTP statuses. Validation
// failures never change state, so they are safe to surface directly.
func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidQuantity):
		return fiber.NewError(fiber.StatusBadRequest, "Quantity must be positive")
	case errors.Is(err, ledger.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	case errors.Is(err, ledger.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Location not found")
	case errors.Is(err, ledger.ErrLocationInactive):
		return fiber.NewError(fiber.StatusConflict, "Location is not active")
	case errors.Is(err, ledger.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusConflict, "Insufficient stock")
	default:
		return err
	}
}
