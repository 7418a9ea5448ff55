package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre bodegas. El grafo es monótono:
// PENDING → {IN_TRANSIT, CANCELLED}; IN_TRANSIT → {COMPLETED};
// COMPLETED y CANCELLED son terminales.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"
)

// CanTransferTransition indica si la transición de estado es legal.
func CanTransferTransition(from, to string) bool {
	switch from {
	case TransferStatusPending:
		return to == TransferStatusInTransit || to == TransferStatusCancelled
	case TransferStatusInTransit:
		return to == TransferStatusCompleted
	}
	return false
}

// TransferItem es una línea del traslado. La lista de líneas queda fija al
// crear el traslado.
type TransferItem struct {
	ID              string
	TransferID      string
	InventoryItemID string
	Quantity        decimal.Decimal
	Unit            string
	SerialNumber    string
	Note            string
}

// Transfer representa un traslado de inventario entre dos bodegas,
// con su ciclo de vida completo y las líneas trasladadas.
type Transfer struct {
	ID                 string
	TenantID           string
	TransferCode       string
	SourceWarehouseID  string
	TargetWarehouseID  string
	Status             string
	Items              []TransferItem
	InitiatedBy        string
	InitiatedAt        time.Time
	CompletedBy        string
	CompletedAt        *time.Time
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
