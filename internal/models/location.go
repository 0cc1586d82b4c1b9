package models

// Location: one café/restaurant site. Each location owns exactly one local
// warehouse; products appear in it only after a supply transfer from the
// central warehouse. Inactive locations are placeholders and accept no
// warehouse operations.
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Warehouse []Product `json:"warehouse"`
}

// FindProduct returns a pointer into the local warehouse, or nil.
func (l *Location) FindProduct(productID string) *Product {
	for i := range l.Warehouse {
		if l.Warehouse[i].ID == productID {
			return &l.Warehouse[i]
		}
	}
	return nil
}
