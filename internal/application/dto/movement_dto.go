package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest entrada para registrar un movimiento en el libro.
// NewQuantity debe ser PreviousQuantity + QuantityChange; los decrementos
// (QuantityChange negativo) exigen Reason.
type RecordMovementRequest struct {
	InventoryItemID  string          `json:"inventory_item_id"`
	Type             string          `json:"type"`
	QuantityChange   decimal.Decimal `json:"quantity_change"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	LocationBefore   string          `json:"location_before,omitempty"`
	LocationAfter    string          `json:"location_after,omitempty"`
	Reason           string          `json:"reason,omitempty"`
	ReferenceID      string          `json:"reference_id,omitempty"`
	ReferenceType    string          `json:"reference_type,omitempty"`
	PerformedAt      *time.Time      `json:"performed_at,omitempty"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID               string          `json:"id"`
	InventoryItemID  string          `json:"inventory_item_id"`
	WarehouseID      string          `json:"warehouse_id"`
	ProductID        string          `json:"product_id"`
	Type             string          `json:"type"`
	QuantityChange   decimal.Decimal `json:"quantity_change"`
	PreviousQuantity decimal.Decimal `json:"previous_quantity"`
	NewQuantity      decimal.Decimal `json:"new_quantity"`
	LocationBefore   string          `json:"location_before,omitempty"`
	LocationAfter    string          `json:"location_after,omitempty"`
	Reason           string          `json:"reason,omitempty"`
	ReferenceID      string          `json:"reference_id,omitempty"`
	ReferenceType    string          `json:"reference_type,omitempty"`
	PerformedBy      string          `json:"performed_by"`
	PerformedAt      time.Time       `json:"performed_at"`
}

// MovementListResponse historial paginado (orden cronológico ascendente).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementSummaryResponse agregado del período por categoría física.
type MovementSummaryResponse struct {
	WarehouseID         string          `json:"warehouse_id,omitempty"`
	PeriodStart         time.Time       `json:"period_start"`
	PeriodEnd           time.Time       `json:"period_end"`
	Receipts            decimal.Decimal `json:"receipts"`
	Issues              decimal.Decimal `json:"issues"`
	TransfersOut        decimal.Decimal `json:"transfers_out"`
	TransfersIn         decimal.Decimal `json:"transfers_in"`
	PositiveAdjustments decimal.Decimal `json:"positive_adjustments"`
	NegativeAdjustments decimal.Decimal `json:"negative_adjustments"`
	Scrapped            decimal.Decimal `json:"scrapped"`
	NetChange           decimal.Decimal `json:"net_change"`
}
