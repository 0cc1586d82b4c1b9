package ledger

import (
	"context"

	"cantina-backend/internal/models"
)

// Order sessions: one open tab per physical table. Adding an item only
// records the wish and checks that at least one unit exists right now;
// stock is decremented at finalize time, never earlier.

// AddItem puts one unit of a product on the table's order, or bumps the
// existing line by one.
func (l *Ledger) AddItem(ctx context.Context, locationID string, table int, productID string) (models.TableOrder, error) {
	var updated models.TableOrder
	err := l.update(ctx, func(state *models.AppState) error {
		order, location, err := l.resolveOrder(state, locationID, table)
		if err != nil {
			return err
		}

		product := location.FindProduct(productID)
		if product == nil || product.Quantity < 1 {
			return ErrOutOfStock
		}

		if item := order.FindItem(productID); item != nil {
			item.Quantity++
		} else {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: productID,
				Quantity:  1,
				Name:      product.Name,
			})
		}
		order.Active = true
		order.Total = orderTotal(order, location)
		updated = *order
		return nil
	})
	return updated, err
}

// RemoveOneUnit takes one unit off the matching line, dropping the line at
// zero. The order goes back to empty when its last line disappears.
func (l *Ledger) RemoveOneUnit(ctx context.Context, locationID string, table int, productID string) (models.TableOrder, error) {
	return l.removeFromOrder(ctx, locationID, table, productID, false)
}

// RemoveLine deletes the matching line outright regardless of quantity.
func (l *Ledger) RemoveLine(ctx context.Context, locationID string, table int, productID string) (models.TableOrder, error) {
	return l.removeFromOrder(ctx, locationID, table, productID, true)
}

func (l *Ledger) removeFromOrder(ctx context.Context, locationID string, table int, productID string, wholeLine bool) (models.TableOrder, error) {
	var updated models.TableOrder
	err := l.update(ctx, func(state *models.AppState) error {
		order, location, err := l.resolveOrder(state, locationID, table)
		if err != nil {
			return err
		}

		item := order.FindItem(productID)
		if item == nil {
			return ErrProductNotFound
		}

		if !wholeLine && item.Quantity > 1 {
			item.Quantity--
		} else {
			kept := order.Items[:0]
			for _, it := range order.Items {
				if it.ProductID != productID {
					kept = append(kept, it)
				}
			}
			order.Items = kept
		}

		if len(order.Items) == 0 {
			order.Clear()
		} else {
			order.Total = orderTotal(order, location)
		}
		updated = *order
		return nil
	})
	return updated, err
}

// Finalize commits the order as consumption. Every line is revalidated
// against the local warehouse first; a single shortage aborts the whole
// commit with nothing decremented and no movements appended. On success all
// lines are applied and the order is cleared.
func (l *Ledger) Finalize(ctx context.Context, locationID string, table int) (int, error) {
	applied := 0
	err := l.update(ctx, func(state *models.AppState) error {
		order, location, err := l.resolveOrder(state, locationID, table)
		if err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return ErrOrderEmpty
		}

		var shortages []StockShortage
		for _, item := range order.Items {
			product := location.FindProduct(item.ProductID)
			available := 0.0
			if product != nil {
				available = product.Quantity
			}
			if product == nil || available < item.Quantity {
				shortages = append(shortages, StockShortage{
					ProductID: item.ProductID,
					Name:      item.Name,
					Requested: item.Quantity,
					Available: available,
				})
			}
		}
		if len(shortages) > 0 {
			return &FinalizeError{Table: table, Shortages: shortages}
		}

		for _, item := range order.Items {
			product := location.FindProduct(item.ProductID)
			product.Quantity -= item.Quantity
			product.LastUpdated = l.now()

			l.appendMovement(state, models.Movement{
				Kind:        models.MovementConsumption,
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				Destination: locationID,
				TableNumber: table,
			})
			applied++
		}

		order.Clear()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// Cancel drops the order unconditionally. Cancellation is not a ledger
// event: no movement is recorded.
func (l *Ledger) Cancel(ctx context.Context, locationID string, table int) error {
	return l.update(ctx, func(state *models.AppState) error {
		order, _, err := l.resolveOrder(state, locationID, table)
		if err != nil {
			return err
		}
		order.Clear()
		return nil
	})
}

func (l *Ledger) resolveOrder(state *models.AppState, locationID string, table int) (*models.TableOrder, *models.Location, error) {
	location := state.FindLocation(locationID)
	if location == nil {
		return nil, nil, ErrLocationNotFound
	}
	if !location.Active {
		return nil, nil, ErrLocationInactive
	}
	order, ok := state.TableOrders[table]
	if !ok {
		return nil, nil, ErrTableNotFound
	}
	return order, location, nil
}

func orderTotal(order *models.TableOrder, location *models.Location) float64 {
	total := 0.0
	for _, item := range order.Items {
		if product := location.FindProduct(item.ProductID); product != nil {
			total += item.Quantity * product.UnitPrice
		}
	}
	return total
}
