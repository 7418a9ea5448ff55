package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario. El tipo siempre lo aporta el
// caso de negocio que origina el movimiento: el libro nunca lo infiere del
// signo de la cantidad.
const (
	MovementTypeReceipt      = "RECEIPT"
	MovementTypeIssue        = "ISSUE"
	MovementTypeTransferOut  = "TRANSFER_OUT"
	MovementTypeTransferIn   = "TRANSFER_IN"
	MovementTypeAdjustment   = "ADJUSTMENT"
	MovementTypeReturn       = "RETURN"
	MovementTypeScrap        = "SCRAP"
	MovementTypeReservation  = "RESERVATION"
	MovementTypeRelease      = "RELEASE"
	MovementTypeStatusChange = "STATUS_CHANGE"
)

// IsMovementType valida que el tipo pertenezca al catálogo.
func IsMovementType(t string) bool {
	switch t {
	case MovementTypeReceipt, MovementTypeIssue, MovementTypeTransferOut,
		MovementTypeTransferIn, MovementTypeAdjustment, MovementTypeReturn,
		MovementTypeScrap, MovementTypeReservation, MovementTypeRelease,
		MovementTypeStatusChange:
		return true
	}
	return false
}

// Movement es una entrada inmutable del libro de movimientos (append-only).
// Invariantes: NewQuantity = PreviousQuantity + QuantityChange, y entre
// entradas consecutivas del mismo ítem ordenadas por PerformedAt la
// PreviousQuantity de cada entrada coincide con la NewQuantity de la anterior.
type Movement struct {
	ID               string
	TenantID         string
	InventoryItemID  string
	WarehouseID      string
	ProductID        string
	Type             string
	QuantityChange   decimal.Decimal
	PreviousQuantity decimal.Decimal
	NewQuantity      decimal.Decimal
	LocationBefore   string
	LocationAfter    string
	Reason           string
	ReferenceID      string
	ReferenceType    string
	PerformedBy      string
	PerformedAt      time.Time
	CreatedAt        time.Time
}
