package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/ledger"
	"github.com/tu-usuario/almacen-core/internal/application/location"
	"github.com/tu-usuario/almacen-core/internal/application/report"
	"github.com/tu-usuario/almacen-core/internal/application/stock"
	"github.com/tu-usuario/almacen-core/internal/application/transfer"
	"github.com/tu-usuario/almacen-core/internal/application/warehouse"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *warehouse.WarehouseUseCase
	LocationUC  *location.LocationUseCase
	LedgerUC    *ledger.LedgerUseCase
	Aggregator  *stock.StockAggregator
	AlertEngine *stock.AlertEngine
	SettingsUC  *stock.SettingsUseCase
	TransferUC  *transfer.TransferCoordinator
	ReportUC    *report.MovementReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo el API es multi-tenant y va
// detrás del Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Post("/:id/default", warehouseHandler.SetDefault)
	warehouses.Post("/:id/decommission", warehouseHandler.Decommission)

	// Location structures y ubicaciones (por bodega)
	locationHandler := NewLocationHandler(deps.LocationUC)
	warehouses.Post("/:warehouseId/location-structure", locationHandler.CreateStructure)
	warehouses.Get("/:warehouseId/location-structure", locationHandler.GetStructure)
	warehouses.Put("/:warehouseId/location-structure", locationHandler.UpdateStructure)
	warehouses.Post("/:warehouseId/locations/generate", locationHandler.Generate)
	warehouses.Get("/:warehouseId/locations", locationHandler.List)
	warehouses.Get("/:warehouseId/locations/validate", locationHandler.ValidateCode)

	locations := protected.Group("/locations")
	locations.Post("/:id/occupancy", locationHandler.AdjustOccupancy)
	locations.Delete("/:id", locationHandler.Delete)

	// Libro de movimientos
	movements := protected.Group("/movements")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	movements.Post("/", ledgerHandler.Record)
	movements.Post("/batch", ledgerHandler.RecordBatch)
	movements.Get("/items/:itemId", ledgerHandler.History)
	warehouses.Get("/:warehouseId/movements", ledgerHandler.ListByWarehouse)
	warehouses.Get("/:warehouseId/movements/summary", ledgerHandler.Summarize)

	// Stock, alertas y umbrales
	stockHandler := NewStockHandler(deps.Aggregator, deps.AlertEngine, deps.SettingsUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Get("/products/:productId/summary", stockHandler.Summary)
	stockGroup.Get("/below-threshold", stockHandler.BelowThreshold)
	stockGroup.Post("/settings", stockHandler.CreateSetting)
	stockGroup.Get("/settings", stockHandler.ListSettings)
	stockGroup.Delete("/settings/:id", stockHandler.DeactivateSetting)

	alerts := protected.Group("/alerts")
	alerts.Get("/", stockHandler.ListAlerts)
	alerts.Post("/evaluate", stockHandler.EvaluateAlerts)
	alerts.Post("/resolve-by-product", stockHandler.ResolveAlertsByProduct)
	alerts.Post("/:id/acknowledge", stockHandler.AcknowledgeAlert)
	alerts.Post("/:id/snooze", stockHandler.SnoozeAlert)
	alerts.Post("/:id/resolve", stockHandler.ResolveAlert)

	// Traslados
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/start", transferHandler.Start)
	transfers.Post("/:id/complete", transferHandler.Complete)
	transfers.Post("/:id/cancel", transferHandler.Cancel)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	warehouses.Get("/:warehouseId/reports/movements", reportHandler.MovementReport)
}
