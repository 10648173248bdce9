package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	appquotation "github.com/jhoicas/backoffice-api/internal/application/quotation"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	UserRepo       repository.UserRepository
	ProductUC      *usecase.ProductUseCase
	CatalogUC      *usecase.CatalogUseCase
	NotificationUC *usecase.NotificationUseCase
	PurchaseUC     *inventory.RegisterPurchaseUseCase
	SaleUC         *inventory.RegisterSaleUseCase
	TransferUC     *inventory.TransferUseCase
	StockUC        *inventory.StockUseCase
	TradeQueryUC   *inventory.TradeQueryUseCase
	QuotationUC    *appquotation.UseCase
	QuotationPDFUC *appquotation.PDFUseCase
	DashboardUC    *analytics.DashboardUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.QuotationPDFUC, deps.UserRepo)

	// Verificación pública de documentos (destino del QR del PDF)
	app.Get("/verify/quotation/:id", quotationHandler.Verify)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", managers, productHandler.Delete)

	// Catálogos de soporte
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Get("/:id", catalogHandler.GetSupplier)
	suppliers.Put("/:id", catalogHandler.UpdateSupplier)
	suppliers.Delete("/:id", managers, catalogHandler.DeleteSupplier)

	points := protected.Group("/inventory-points")
	points.Post("/", managers, catalogHandler.CreatePoint)
	points.Get("/", catalogHandler.ListPoints)
	points.Get("/:id", catalogHandler.GetPoint)
	points.Delete("/:id", adminOnly, catalogHandler.DeletePoint)

	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Delete("/:id", managers, catalogHandler.DeleteCategory)

	units := protected.Group("/units")
	units.Post("/", catalogHandler.CreateUnit)
	units.Get("/", catalogHandler.ListUnits)
	units.Delete("/:id", managers, catalogHandler.DeleteUnit)

	protected.Get("/currencies", catalogHandler.ListCurrencies)

	tags := protected.Group("/tags")
	tags.Post("/", catalogHandler.CreateTag)
	tags.Get("/", catalogHandler.ListTags)
	tags.Delete("/:id", managers, catalogHandler.DeleteTag)

	// Compras, ventas y traslados
	tradeHandler := NewTradeHandler(deps.PurchaseUC, deps.SaleUC, deps.TransferUC, deps.TradeQueryUC)
	purchases := protected.Group("/purchases")
	purchases.Post("/", tradeHandler.CreatePurchase)
	purchases.Get("/", tradeHandler.ListPurchases)
	purchases.Get("/:id", tradeHandler.GetPurchase)

	sales := protected.Group("/sales")
	sales.Post("/", tradeHandler.CreateSale)
	sales.Get("/", tradeHandler.ListSales)
	sales.Get("/:id", tradeHandler.GetSale)

	transfers := protected.Group("/transfers")
	transfers.Post("/", tradeHandler.CreateTransfer)
	transfers.Get("/", tradeHandler.ListTransfers)
	transfers.Get("/:id", tradeHandler.GetTransfer)
	transfers.Post("/:id/sign", tradeHandler.SignTransfer)
	transfers.Delete("/:id", tradeHandler.CancelTransfer)

	// Libro de stock
	stockHandler := NewStockHandler(deps.StockUC)
	stock := protected.Group("/stock")
	stock.Post("/adjustments", managers, stockHandler.RegisterAdjustment)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/balances", stockHandler.ListBalances)
	stock.Get("/products/:product_id", stockHandler.GetCurrentStock)
	stock.Get("/products/:product_id/points/:point_id", stockHandler.GetAvailableAtPoint)

	// Cotizaciones. Las rutas fijas van antes de /:id.
	quotations := protected.Group("/quotations")
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/summary", quotationHandler.Summary)
	quotations.Get("/tcs", quotationHandler.ListTcs)
	quotations.Post("/drafts", quotationHandler.SaveDraft)
	quotations.Get("/drafts", quotationHandler.ListDrafts)
	quotations.Delete("/drafts/auto", quotationHandler.DeleteAutoDraft)
	quotations.Delete("/drafts/:id", quotationHandler.DeleteDraft)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Patch("/:id/status", quotationHandler.UpdateStatus)
	quotations.Get("/:id/pdf", quotationHandler.DownloadPDF)
	quotations.Post("/:id/tags", quotationHandler.TagUsers)
	quotations.Get("/:id/tags", quotationHandler.ListTags)

	// Notificaciones
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)
}
