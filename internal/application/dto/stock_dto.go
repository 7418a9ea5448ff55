package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSummaryResponse resumen de stock por producto.
type StockSummaryResponse struct {
	ProductID      string           `json:"product_id"`
	WarehouseID    string           `json:"warehouse_id,omitempty"`
	Available      decimal.Decimal  `json:"available"`
	Reserved       decimal.Decimal  `json:"reserved"`
	InTransit      decimal.Decimal  `json:"in_transit"`
	InService      decimal.Decimal  `json:"in_service"`
	Rented         decimal.Decimal  `json:"rented"`
	Total          decimal.Decimal  `json:"total"`
	MinStockLevel  *decimal.Decimal `json:"min_stock_level,omitempty"`
	Classification string           `json:"classification"`
}

// AlertResponse alerta de stock.
type AlertResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	WarehouseID     string           `json:"warehouse_id,omitempty"`
	Type            string           `json:"type"`
	Priority        string           `json:"priority"`
	Status          string           `json:"status"`
	CurrentQuantity decimal.Decimal  `json:"current_quantity"`
	MinimumLevel    decimal.Decimal  `json:"minimum_level"`
	Deficit         *decimal.Decimal `json:"deficit,omitempty"`
	SnoozedUntil    *time.Time       `json:"snoozed_until,omitempty"`
	AcknowledgedBy  string           `json:"acknowledged_by,omitempty"`
	AcknowledgedAt  *time.Time       `json:"acknowledged_at,omitempty"`
	Note            string           `json:"note,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// AlertListResponse listado paginado de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AcknowledgeAlertRequest nota opcional del reconocimiento.
type AcknowledgeAlertRequest struct {
	Note string `json:"note,omitempty"`
}

// SnoozeAlertRequest días de snooze (1 a 30) y nota opcional.
type SnoozeAlertRequest struct {
	Days int    `json:"days"`
	Note string `json:"note,omitempty"`
}

// ResolveAlertRequest nota opcional de la resolución.
type ResolveAlertRequest struct {
	Note string `json:"note,omitempty"`
}

// ResolveAlertsByProductRequest resolución en bloque por producto,
// opcionalmente acotada a una bodega.
type ResolveAlertsByProductRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id,omitempty"`
}

// CreateStockSettingRequest umbrales de stock por producto.
type CreateStockSettingRequest struct {
	ProductID       string           `json:"product_id"`
	WarehouseID     string           `json:"warehouse_id,omitempty"`
	MinimumLevel    decimal.Decimal  `json:"minimum_level"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	MaximumLevel    *decimal.Decimal `json:"maximum_level,omitempty"`
	LeadTimeDays    int              `json:"lead_time_days"`
}

// StockSettingResponse umbral configurado.
type StockSettingResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	WarehouseID     string           `json:"warehouse_id,omitempty"`
	MinimumLevel    decimal.Decimal  `json:"minimum_level"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	MaximumLevel    *decimal.Decimal `json:"maximum_level,omitempty"`
	LeadTimeDays    int              `json:"lead_time_days"`
	IsActive        bool             `json:"is_active"`
}
