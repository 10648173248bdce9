package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	appquotation "github.com/jhoicas/backoffice-api/internal/application/quotation"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	infraemail "github.com/jhoicas/backoffice-api/internal/infrastructure/email"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	pointRepo := postgres.NewInventoryPointRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	stockRepo := postgres.NewInventoryStockRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	tcsRepo := postgres.NewQuotationTcsRepository(pool)
	draftRepo := postgres.NewQuotationDraftRepository(pool)
	quotationTagRepo := postgres.NewQuotationTagRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, movementRepo)
	catalogUC := usecase.NewCatalogUseCase(supplierRepo, pointRepo, categoryRepo, unitRepo, currencyRepo, tagRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	purchaseUC := inventory.NewRegisterPurchaseUseCase(txRunner, productRepo, supplierRepo, pointRepo)
	saleUC := inventory.NewRegisterSaleUseCase(txRunner, productRepo, pointRepo, userRepo)
	transferUC := inventory.NewTransferUseCase(txRunner, transferRepo, productRepo, pointRepo, userRepo)
	stockUC := inventory.NewStockUseCase(txRunner, productRepo, pointRepo, movementRepo, stockRepo)
	tradeQueryUC := inventory.NewTradeQueryUseCase(purchaseRepo, saleRepo, transferRepo)
	quotationUC := appquotation.NewUseCase(quotationRepo, tcsRepo, draftRepo, quotationTagRepo, userRepo, notificationRepo)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)

	// PDF de cotización con QR de verificación
	pdfGenerator := infrapdf.NewMarotoQuotationGenerator()
	quotationPDFUC := appquotation.NewPDFUseCase(quotationUC, currencyRepo, pdfGenerator, cfg.Docs.VerifyBaseURL)

	// Correo de seguimiento: deshabilitado si no hay SMTP configurado
	var sender appquotation.EmailSender
	if cfg.SMTP.Enabled() {
		sender = infraemail.NewGomailSender(cfg.SMTP)
	}
	followupSvc := appquotation.NewFollowupService(quotationUC, sender, log.Component("followup"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Backoffice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		UserRepo:       userRepo,
		ProductUC:      productUC,
		CatalogUC:      catalogUC,
		NotificationUC: notificationUC,
		PurchaseUC:     purchaseUC,
		SaleUC:         saleUC,
		TransferUC:     transferUC,
		StockUC:        stockUC,
		TradeQueryUC:   tradeQueryUC,
		QuotationUC:    quotationUC,
		QuotationPDFUC: quotationPDFUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	// Barrido diario: expira cotizaciones vencidas y genera recordatorios
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go func() {
		followupSvc.RunSweep(sweepCtx, time.Now())
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case now := <-ticker.C:
				followupSvc.RunSweep(sweepCtx, now)
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
