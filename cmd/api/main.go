package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/almacen-core/internal/application/ledger"
	"github.com/tu-usuario/almacen-core/internal/application/location"
	"github.com/tu-usuario/almacen-core/internal/application/report"
	"github.com/tu-usuario/almacen-core/internal/application/stock"
	"github.com/tu-usuario/almacen-core/internal/application/transfer"
	"github.com/tu-usuario/almacen-core/internal/application/warehouse"
	infrapdf "github.com/tu-usuario/almacen-core/internal/infrastructure/pdf"
	"github.com/tu-usuario/almacen-core/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/almacen-core/internal/interfaces/http"
	"github.com/tu-usuario/almacen-core/pkg/config"
	"github.com/tu-usuario/almacen-core/pkg/logger"
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

	// Repositorios (fuera de transacción: sobre el pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	structRepo := postgres.NewLocationStructureRepository(pool)
	locRepo := postgres.NewLocationRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	settingRepo := postgres.NewStockSettingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	warehouseUC := warehouse.NewWarehouseUseCase(txRunner, warehouseRepo)
	locationUC := location.NewLocationUseCase(structRepo, locRepo, txRunner)
	ledgerUC := ledger.NewLedgerUseCase(txRunner, movRepo)
	aggregator := stock.NewStockAggregator(itemRepo, settingRepo)
	alertEngine := stock.NewAlertEngine(alertRepo)
	settingsUC := stock.NewSettingsUseCase(settingRepo)
	transferUC := transfer.NewTransferCoordinator(txRunner, warehouseRepo, itemRepo, transferRepo)

	// PDF: kardex de movimientos por bodega
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewMovementReportUseCase(ledgerUC, warehouseRepo, reportGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: warehouseUC,
		LocationUC:  locationUC,
		LedgerUC:    ledgerUC,
		Aggregator:  aggregator,
		AlertEngine: alertEngine,
		SettingsUC:  settingsUC,
		TransferUC:  transferUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
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
