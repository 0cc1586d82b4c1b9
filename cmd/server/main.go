package main

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"golang.org/x/crypto/bcrypt"

	"cantina-backend/internal/auth"
	"cantina-backend/internal/backup"
	"cantina-backend/internal/config"
	"cantina-backend/internal/dashboard"
	"cantina-backend/internal/inventory"
	"cantina-backend/internal/ledger"
	"cantina-backend/internal/models"
	"cantina-backend/internal/store"
	"cantina-backend/internal/tables"
)

func main() {
	cfg := config.Load()

	seed := func() *models.AppState {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.ManagerPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Could not hash manager password: %v", err)
		}
		return models.Seed(time.Now(), string(hash))
	}

	var st store.Store
	switch cfg.StoreDriver {
	case "redis":
		rs, err := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, seed)
		if err != nil {
			log.Fatalf("Could not open redis store: %v", err)
		}
		defer rs.Close()
		st = rs
	default:
		fs, err := store.NewFileStore(cfg.DataDir, seed)
		if err != nil {
			log.Fatalf("Could not open file store: %v", err)
		}
		st = fs
	}

	ldg := ledger.New(st)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg, st))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(st))

	// Central warehouse (mutations are manager-only)
	protected.Get("/central/products", inventory.ListCentralProductsHandler(ldg))

	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))
	adminRoutes.Post("/central/products", inventory.CreateProductHandler(ldg))
	adminRoutes.Put("/central/products/:id", inventory.UpdateProductHandler(ldg))
	adminRoutes.Post("/central/products/:id/restock", inventory.RestockProductHandler(ldg))

	// Locations & supply
	protected.Get("/locations", inventory.ListLocationsHandler(ldg))
	protected.Get("/locations/:id/stock", inventory.LocationStockHandler(ldg))
	protected.Post("/locations/:id/supply", inventory.SupplyHandler(ldg))

	// Table orders
	protected.Get("/tables", tables.ListTablesHandler(ldg))
	protected.Post("/tables/:n/items", tables.AddItemHandler(ldg))
	protected.Delete("/tables/:n/items/:productId", tables.RemoveItemHandler(ldg))
	protected.Post("/tables/:n/finalize", tables.FinalizeHandler(ldg))
	protected.Post("/tables/:n/cancel", tables.CancelHandler(ldg))

	// Dashboard & reports
	protected.Get("/dashboard/summary", dashboard.SummaryHandler(ldg))
	protected.Get("/reports/inventory", dashboard.InventoryReportHandler(ldg))
	protected.Get("/reports/movements", dashboard.MovementsReportHandler(ldg))

	// Backup administration (manager-only)
	adminRoutes.Post("/backup", backup.CreateHandler(st))
	adminRoutes.Post("/backup/restore", backup.RestoreHandler(st))
	adminRoutes.Get("/backup/export", backup.ExportHandler(st))
	adminRoutes.Post("/backup/import", backup.ImportHandler(st))

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
