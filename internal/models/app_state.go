package models

import "time"

// TableCount is the fixed number of physical tables per location.
const TableCount = 4

// AppState is the aggregate root: the whole system is one mutable snapshot
// that is loaded, mutated in place and persisted as a single document.
type AppState struct {
	Users        []User              `json:"users"`
	Central      []Product           `json:"central_warehouse"`
	Locations    []Location          `json:"locations"`
	Movements    []Movement          `json:"movements"`
	TableOrders  map[int]*TableOrder `json:"table_orders"`
	LastBackupAt time.Time           `json:"last_backup_at"`
}

// FindCentralProduct returns a pointer into the central warehouse, or nil.
func (s *AppState) FindCentralProduct(productID string) *Product {
	for i := range s.Central {
		if s.Central[i].ID == productID {
			return &s.Central[i]
		}
	}
	return nil
}

// FindLocation returns a pointer into the location list, or nil.
func (s *AppState) FindLocation(locationID string) *Location {
	for i := range s.Locations {
		if s.Locations[i].ID == locationID {
			return &s.Locations[i]
		}
	}
	return nil
}

// Seed builds the initial snapshot: the default catalog, four locations with
// only the first one open, empty table orders and the bootstrap manager
// account. managerHash is the bcrypt hash for the manager's password.
func Seed(now time.Time, managerHash string) *AppState {
	catalog := []struct {
		id, name  string
		category  ProductCategory
		quantity  float64
		unit      string
		unitPrice float64
	}{
		{"p001", "Harina", CategoryKitchen, 100, "kg", 2.5},
		{"p002", "Azucar", CategoryKitchen, 80, "kg", 3.0},
		{"p003", "Sal", CategoryKitchen, 50, "kg", 1.5},
		{"p004", "Aceite", CategoryKitchen, 60, "litros", 4.5},
		{"p005", "Arroz", CategoryKitchen, 90, "kg", 2.8},
		{"p006", "Pasta", CategoryKitchen, 70, "kg", 2.2},
		{"p007", "Tomate", CategoryKitchen, 40, "kg", 3.5},
		{"p008", "Cebolla", CategoryKitchen, 35, "kg", 2.0},
		{"p009", "Cafe", CategoryCanteen, 120, "kg", 8.5},
		{"p010", "Leche", CategoryCanteen, 150, "litros", 1.8},
		{"p011", "Te", CategoryCanteen, 40, "kg", 6.0},
		{"p012", "Chocolate", CategoryCanteen, 30, "kg", 12.0},
		{"p013", "Jugos", CategoryCanteen, 200, "litros", 3.5},
		{"p014", "Galletas", CategoryCanteen, 100, "paquetes", 2.5},
		{"p015", "Pan", CategoryCanteen, 80, "unidades", 0.5},
	}

	central := make([]Product, 0, len(catalog))
	for _, c := range catalog {
		central = append(central, Product{
			ID:          c.id,
			Name:        c.name,
			Category:    c.category,
			Quantity:    c.quantity,
			Unit:        c.unit,
			UnitPrice:   c.unitPrice,
			LastUpdated: now,
		})
	}

	orders := make(map[int]*TableOrder, TableCount)
	for n := 1; n <= TableCount; n++ {
		orders[n] = &TableOrder{}
	}

	return &AppState{
		Users: []User{
			{ID: "gerente-001", Name: "Gerente", Role: RoleSuperAdmin, PasswordHash: managerHash},
		},
		Central: central,
		Locations: []Location{
			{ID: "local-001", Name: "Cafe Avellaneda", Active: true},
			{ID: "local-002", Name: "Local 2", Active: false},
			{ID: "local-003", Name: "Local 3", Active: false},
			{ID: "local-004", Name: "Local 4", Active: false},
		},
		Movements:    []Movement{},
		TableOrders:  orders,
		LastBackupAt: now,
	}
}
