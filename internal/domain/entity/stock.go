package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación del nivel de stock contra el piso configurado.
const (
	StockLevelOK         = "OK"
	StockLevelLow        = "LOW"
	StockLevelCritical   = "CRITICAL"
	StockLevelOutOfStock = "OUT_OF_STOCK"
)

// lowStockFactor: LOW cubre desde el piso hasta piso × 1.5 (exclusivo).
var lowStockFactor = decimal.NewFromFloat(1.5)

// ClassifyStockLevel clasifica la cantidad disponible contra el piso mínimo.
// Disponible cero siempre es OUT_OF_STOCK, haya o no piso configurado;
// sin piso configurado cualquier disponibilidad positiva es OK.
func ClassifyStockLevel(available decimal.Decimal, minLevel *decimal.Decimal) string {
	if available.LessThanOrEqual(decimal.Zero) {
		return StockLevelOutOfStock
	}
	if minLevel == nil || minLevel.LessThanOrEqual(decimal.Zero) {
		return StockLevelOK
	}
	if available.LessThan(*minLevel) {
		return StockLevelCritical
	}
	if available.LessThan(minLevel.Mul(lowStockFactor)) {
		return StockLevelLow
	}
	return StockLevelOK
}

// StockLevelSetting define los umbrales de stock por producto, opcionalmente
// restringidos a una bodega (WarehouseID vacío = aplica a todas).
type StockLevelSetting struct {
	ID              string
	TenantID        string
	ProductID       string
	WarehouseID     string
	MinimumLevel    decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	MaximumLevel    *decimal.Decimal
	LeadTimeDays    int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StockSummary resume el stock de un producto por estado de ítem,
// con el piso efectivo y la clasificación derivada.
type StockSummary struct {
	TenantID       string
	ProductID      string
	WarehouseID    string
	Available      decimal.Decimal
	Reserved       decimal.Decimal
	InTransit      decimal.Decimal
	InService      decimal.Decimal
	Rented         decimal.Decimal
	Total          decimal.Decimal
	MinStockLevel  *decimal.Decimal
	Classification string
}
