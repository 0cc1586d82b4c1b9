package ledger

import (
	"context"
	"sort"

	"cantina-backend/internal/models"
)

// ProductDraft carries caller-supplied fields for a new central product.
// Field validation is advisory and lives at the HTTP layer; the ledger only
// protects its own invariants.
type ProductDraft struct {
	Name      string                 `json:"name"`
	Category  models.ProductCategory `json:"category"`
	Quantity  float64                `json:"quantity"`
	Unit      string                 `json:"unit"`
	UnitPrice float64                `json:"unit_price"`
}

// SupplyFailure is one rejected line of a supply batch.
type SupplyFailure struct {
	ProductID string  `json:"product_id"`
	Requested float64 `json:"requested"`
	Available float64 `json:"available"`
	Reason    string  `json:"reason"`
}

// SupplyResult reports a supply batch. The batch is not atomic across
// lines: applied lines stick even when others are rejected.
type SupplyResult struct {
	LocationID string          `json:"location_id"`
	Applied    int             `json:"applied"`
	Rejected   []SupplyFailure `json:"rejected,omitempty"`
}

// ReceiveIntoCentral creates a new product in the central warehouse and
// records its initial quantity as an inbound movement.
func (l *Ledger) ReceiveIntoCentral(ctx context.Context, draft ProductDraft) (models.Product, error) {
	if draft.Quantity < 0 || draft.UnitPrice < 0 {
		return models.Product{}, ErrInvalidQuantity
	}

	var created models.Product
	err := l.update(ctx, func(state *models.AppState) error {
		created = models.Product{
			ID:          l.newID(),
			Name:        draft.Name,
			Category:    draft.Category,
			Quantity:    draft.Quantity,
			Unit:        draft.Unit,
			UnitPrice:   draft.UnitPrice,
			LastUpdated: l.now(),
		}
		state.Central = append(state.Central, created)

		// A zero-quantity draft registers the item without a ledger entry;
		// movements always carry a positive quantity.
		if draft.Quantity > 0 {
			l.appendMovement(state, models.Movement{
				Kind:        models.MovementInbound,
				ProductID:   created.ID,
				Quantity:    draft.Quantity,
				Destination: models.EndpointCentral,
			})
		}
		return nil
	})
	return created, err
}

// RestockExisting adds stock to a central product that already exists.
func (l *Ledger) RestockExisting(ctx context.Context, productID string, added float64) (models.Product, error) {
	if added <= 0 {
		return models.Product{}, ErrInvalidQuantity
	}

	var updated models.Product
	err := l.update(ctx, func(state *models.AppState) error {
		product := state.FindCentralProduct(productID)
		if product == nil {
			return ErrProductNotFound
		}
		product.Quantity += added
		product.LastUpdated = l.now()

		l.appendMovement(state, models.Movement{
			Kind:        models.MovementInbound,
			ProductID:   product.ID,
			Quantity:    added,
			Destination: models.EndpointCentral,
		})
		updated = *product
		return nil
	})
	return updated, err
}

// UpdateCentralProduct edits the display fields of a central product. Price
// and name changes are not ledger events; only lastUpdated moves.
func (l *Ledger) UpdateCentralProduct(ctx context.Context, productID, name string, unitPrice float64) (models.Product, error) {
	if unitPrice < 0 {
		return models.Product{}, ErrInvalidQuantity
	}

	var updated models.Product
	err := l.update(ctx, func(state *models.AppState) error {
		product := state.FindCentralProduct(productID)
		if product == nil {
			return ErrProductNotFound
		}
		if name != "" {
			product.Name = name
		}
		product.UnitPrice = unitPrice
		product.LastUpdated = l.now()
		updated = *product
		return nil
	})
	return updated, err
}

// SupplyToLocation moves stock from the central warehouse into a location's
// local warehouse. Each requested line is validated and applied on its own:
// lines with insufficient or unknown central stock are rejected while the
// rest of the batch goes through. One save covers all applied lines.
func (l *Ledger) SupplyToLocation(ctx context.Context, locationID string, request map[string]float64) (SupplyResult, error) {
	result := SupplyResult{LocationID: locationID}

	// Deterministic line order keeps the movement log stable.
	productIDs := make([]string, 0, len(request))
	for id := range request {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	state, err := l.store.Load(ctx)
	if err != nil {
		return result, err
	}

	location := state.FindLocation(locationID)
	if location == nil {
		return result, ErrLocationNotFound
	}
	if !location.Active {
		return result, ErrLocationInactive
	}

	for _, productID := range productIDs {
		quantity := request[productID]
		if quantity <= 0 {
			continue
		}

		central := state.FindCentralProduct(productID)
		if central == nil {
			result.Rejected = append(result.Rejected, SupplyFailure{
				ProductID: productID,
				Requested: quantity,
				Reason:    "product not found in central warehouse",
			})
			continue
		}
		if central.Quantity < quantity {
			result.Rejected = append(result.Rejected, SupplyFailure{
				ProductID: productID,
				Requested: quantity,
				Available: central.Quantity,
				Reason:    "insufficient central stock",
			})
			continue
		}

		central.Quantity -= quantity
		central.LastUpdated = l.now()

		if local := location.FindProduct(productID); local != nil {
			local.Quantity += quantity
			local.LastUpdated = l.now()
		} else {
			// First transfer of this product: the local record is born as a
			// copy of the central one, carrying its category, unit and price.
			location.Warehouse = append(location.Warehouse, models.Product{
				ID:          central.ID,
				Name:        central.Name,
				Category:    central.Category,
				Quantity:    quantity,
				Unit:        central.Unit,
				UnitPrice:   central.UnitPrice,
				LastUpdated: l.now(),
			})
		}

		l.appendMovement(state, models.Movement{
			Kind:        models.MovementSupply,
			ProductID:   productID,
			Quantity:    quantity,
			Origin:      models.EndpointCentral,
			Destination: locationID,
		})
		result.Applied++
	}

	if result.Applied == 0 {
		return result, nil
	}
	return result, l.store.Save(ctx, state)
}
