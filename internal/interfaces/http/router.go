package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dataeasy/dataeasy-api/internal/application/analytics"
	"github.com/dataeasy/dataeasy-api/internal/application/auth"
	"github.com/dataeasy/dataeasy-api/internal/application/billing"
	"github.com/dataeasy/dataeasy-api/internal/application/bulkload"
	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/application/usecase"
	"github.com/dataeasy/dataeasy-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CatalogUC     *usecase.CatalogUseCase
	Ledger        *inventory.LedgerUseCase
	Importer      *bulkload.ImportUseCase
	Exporter      *bulkload.ExportUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	InvoicePDF    *billing.PDFUseCase
	AnalyticsUC   *analytics.UseCase
	AuthUC        *auth.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Solo el login es público; el resto exige
// Bearer token, y las operaciones destructivas además el rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth: login público, registro y listado solo admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)
	authGroup.Get("/users", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.ListUsers)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; eliminar solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Categorías y marcas (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", catalogHandler.CreateCategory)
	brands := protected.Group("/brands")
	brands.Get("/", catalogHandler.ListBrands)
	brands.Post("/", catalogHandler.CreateBrand)

	// Inventario: ledger de movimientos y carga/descarga masiva (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Importer, deps.Exporter)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Delete("/movements/:id", adminOnly, inventoryHandler.DeleteMovement)
	invGroup.Post("/import", adminOnly, inventoryHandler.Import)
	invGroup.Get("/export", inventoryHandler.Export)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Dashboard y estadísticas (protegido)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	protected.Get("/dashboard", analyticsHandler.Dashboard)
	protected.Get("/statistics", analyticsHandler.Statistics)
}
