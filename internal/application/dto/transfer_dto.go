package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea del traslado a crear.
type TransferItemRequest struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit,omitempty"`
	SerialNumber    string          `json:"serial_number,omitempty"`
	Note            string          `json:"note,omitempty"`
}

// CreateTransferRequest traslado entre dos bodegas distintas con al menos una línea.
type CreateTransferRequest struct {
	SourceWarehouseID string                `json:"source_warehouse_id"`
	TargetWarehouseID string                `json:"target_warehouse_id"`
	Items             []TransferItemRequest `json:"items"`
}

// CompleteTransferRequest cierre del traslado; ReceivedOverrides permite
// registrar cantidades recibidas distintas de las enviadas, por línea
// (clave: inventory_item_id de la línea).
type CompleteTransferRequest struct {
	ReceivedOverrides map[string]decimal.Decimal `json:"received_overrides,omitempty"`
}

// CancelTransferRequest motivo obligatorio de cancelación.
type CancelTransferRequest struct {
	Reason string `json:"reason"`
}

// TransferItemResponse línea del traslado.
type TransferItemResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit,omitempty"`
	SerialNumber    string          `json:"serial_number,omitempty"`
	Note            string          `json:"note,omitempty"`
}

// TransferResponse traslado con su ciclo de vida.
type TransferResponse struct {
	ID                 string                 `json:"id"`
	TransferCode       string                 `json:"transfer_code"`
	SourceWarehouseID  string                 `json:"source_warehouse_id"`
	TargetWarehouseID  string                 `json:"target_warehouse_id"`
	Status             string                 `json:"status"`
	Items              []TransferItemResponse `json:"items"`
	InitiatedBy        string                 `json:"initiated_by"`
	InitiatedAt        time.Time              `json:"initiated_at"`
	CompletedBy        string                 `json:"completed_by,omitempty"`
	CompletedAt        *time.Time             `json:"completed_at,omitempty"`
	CancellationReason string                 `json:"cancellation_reason,omitempty"`
}

// TransferListResponse listado paginado de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
