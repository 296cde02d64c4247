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

	appanalytics "github.com/dataeasy/dataeasy-api/internal/application/analytics"
	"github.com/dataeasy/dataeasy-api/internal/application/auth"
	"github.com/dataeasy/dataeasy-api/internal/application/billing"
	"github.com/dataeasy/dataeasy-api/internal/application/bulkload"
	"github.com/dataeasy/dataeasy-api/internal/application/inventory"
	"github.com/dataeasy/dataeasy-api/internal/application/usecase"
	infrapdf "github.com/dataeasy/dataeasy-api/internal/infrastructure/pdf"
	"github.com/dataeasy/dataeasy-api/internal/infrastructure/postgres"
	httpRouter "github.com/dataeasy/dataeasy-api/internal/interfaces/http"
	"github.com/dataeasy/dataeasy-api/pkg/config"
	"github.com/dataeasy/dataeasy-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El ledger es el único camino de mutación de stock; facturación y carga
	// masiva lo reutilizan dentro de sus propias transacciones.
	ledgerUC := inventory.NewLedgerUseCase(txRunner, movementRepo)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(txRunner, ledgerUC, invoiceRepo, categoryRepo, brandRepo)
	importUC := bulkload.NewImportUseCase(txRunner, ledgerUC)
	exportUC := bulkload.NewExportUseCase(productRepo, categoryRepo, brandRepo)

	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, brandRepo, ledgerUC)
	catalogUC := usecase.NewCatalogUseCase(categoryRepo, brandRepo)
	analyticsUC := appanalytics.NewUseCase(analyticsRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, pdfGenerator)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024, // cargas CSV grandes
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "DataEasy API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		CatalogUC:     catalogUC,
		Ledger:        ledgerUC,
		Importer:      importUC,
		Exporter:      exportUC,
		CreateInvoice: createInvoiceUC,
		InvoicePDF:    invoicePDFUC,
		AnalyticsUC:   analyticsUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
