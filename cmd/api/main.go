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
	"github.com/tu-usuario/almacen-wms/internal/application/catalog"
	"github.com/tu-usuario/almacen-wms/internal/application/ledger"
	"github.com/tu-usuario/almacen-wms/internal/application/locations"
	"github.com/tu-usuario/almacen-wms/internal/application/picklist"
	"github.com/tu-usuario/almacen-wms/internal/application/reports"
	"github.com/tu-usuario/almacen-wms/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-wms/internal/interfaces/http"
	"github.com/tu-usuario/almacen-wms/pkg/config"
	"github.com/tu-usuario/almacen-wms/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	itemRepo := postgres.NewItemRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	orderRepo := postgres.NewBuildOrderRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	pickLineRepo := postgres.NewPickLineRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	locationUC := locations.NewUseCase(locationRepo)
	catalogUC := catalog.NewUseCase(itemRepo, tagRepo)
	ledgerUC := ledger.NewUseCase(txRunner, itemRepo, locationRepo, movementRepo, snapshotRepo, log)
	scanOps := ledger.NewScanOps(ledgerUC, catalogUC, locationUC)
	pickListUC := picklist.NewUseCase(txRunner, orderRepo, bomRepo, pickLineRepo, itemRepo, reportRepo, catalogUC)
	reportUC := reports.NewUseCase(reportRepo)

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
		Title:    "Almacén WMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LocationUC: locationUC,
		CatalogUC:  catalogUC,
		LedgerUC:   ledgerUC,
		ScanOps:    scanOps,
		PickListUC: pickListUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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
