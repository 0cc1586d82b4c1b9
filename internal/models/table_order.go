package models

// OrderItem is one desired line on a table order. Stock is not reserved when
// an item is added; the quantity is only a wish until the order finalizes.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"` // >= 1, integral in practice
	Name      string  `json:"name"`
}

// TableOrder is the in-progress tab for one physical table. Active iff the
// item list is non-empty.
type TableOrder struct {
	Items  []OrderItem `json:"items"`
	Total  float64     `json:"total"`
	Active bool        `json:"active"`
}

func (o *TableOrder) FindItem(productID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

// Clear resets the order to the empty state.
func (o *TableOrder) Clear() {
	o.Items = nil
	o.Total = 0
	o.Active = false
}
