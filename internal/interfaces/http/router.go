package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	CustomerUC       *usecase.CustomerUseCase
	SettingsUC       *usecase.SettingsUseCase
	CatalogUC        *usecase.CatalogUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	LowStock         *inventory.LowStockUseCase
	CreateSale       *sales.CreateSaleUseCase
	SaleQuery        *sales.QueryUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	JWTSecret        string
	ServiceName      string
	// HealthCheck verifica dependencias (ej. pool.Ping). nil = solo liveness.
	HealthCheck func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", RequirePermission(entity.PermUsersManage), authHandler.Register)

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequirePermission(entity.PermUsersManage))
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementQuery)
	products := protected.Group("/products")
	products.Get("/", RequirePermission(entity.PermInventoryRead), productHandler.List)
	products.Get("/:id", RequirePermission(entity.PermInventoryRead), productHandler.GetByID)
	products.Get("/:id/movements", RequirePermission(entity.PermInventoryRead), productHandler.Movements)
	products.Post("/", RequirePermission(entity.PermProductsWrite), productHandler.Create)
	products.Put("/:id", RequirePermission(entity.PermProductsWrite), productHandler.Update)
	products.Delete("/:id", RequirePermission(entity.PermProductsWrite), productHandler.Delete)

	// Categories / Suppliers
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/categories", RequirePermission(entity.PermInventoryRead), catalogHandler.Categories)
	protected.Get("/suppliers", RequirePermission(entity.PermInventoryRead), catalogHandler.Suppliers)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementQuery, deps.LowStock)
	inv := protected.Group("/inventory")
	inv.Post("/movements", RequirePermission(entity.PermInventoryMove), inventoryHandler.RegisterMovement)
	inv.Get("/movements", RequirePermission(entity.PermInventoryRead), inventoryHandler.ListMovements)
	inv.Get("/low-stock", RequirePermission(entity.PermInventoryRead), inventoryHandler.LowStock)

	// Sales
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", RequirePermission(entity.PermSalesCreate), saleHandler.Create)
	salesGroup.Get("/", RequirePermission(entity.PermSalesRead), saleHandler.List)
	salesGroup.Get("/:id", RequirePermission(entity.PermSalesRead), saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", RequirePermission(entity.PermSalesRead), saleHandler.Receipt)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.SaleQuery)
	customers := protected.Group("/customers")
	customers.Get("/", RequirePermission(entity.PermSalesRead), customerHandler.List)
	customers.Get("/:id", RequirePermission(entity.PermSalesRead), customerHandler.GetByID)
	customers.Get("/:id/sales", RequirePermission(entity.PermSalesRead), customerHandler.Sales)
	customers.Post("/", RequirePermission(entity.PermCustomersWrite), customerHandler.Create)
	customers.Put("/:id", RequirePermission(entity.PermCustomersWrite), customerHandler.Update)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", RequirePermission(entity.PermReportsRead), dashboardHandler.GetStats)

	// Config
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/config", RequirePermission(entity.PermSettingsRead), settingsHandler.Get)
	protected.Post("/config", RequirePermission(entity.PermSettingsWrite), settingsHandler.Set)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.UserContext()); err != nil {
				c.Locals(localErr, err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
