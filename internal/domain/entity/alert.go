package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de alerta de stock.
const (
	AlertTypeLowStock         = "LOW_STOCK"
	AlertTypeOutOfStock       = "OUT_OF_STOCK"
	AlertTypeOverstock        = "OVERSTOCK"
	AlertTypeExpiringSoon     = "EXPIRING_SOON"
	AlertTypeWarrantyExpiring = "WARRANTY_EXPIRING"
)

// Prioridades de alerta.
const (
	AlertPriorityLow      = "LOW"
	AlertPriorityMedium   = "MEDIUM"
	AlertPriorityHigh     = "HIGH"
	AlertPriorityCritical = "CRITICAL"
)

// Estados del ciclo de vida de una alerta. RESOLVED es terminal.
// La expiración del snooze la evalúa el caller releyendo SnoozedUntil;
// este núcleo no corre relojes de fondo.
const (
	AlertStatusActive       = "ACTIVE"
	AlertStatusAcknowledged = "ACKNOWLEDGED"
	AlertStatusSnoozed      = "SNOOZED"
	AlertStatusResolved     = "RESOLVED"
)

// CanAlertTransition indica si la transición de estado es legal:
// ACTIVE → {ACKNOWLEDGED, SNOOZED, RESOLVED}; ACKNOWLEDGED → {SNOOZED, RESOLVED};
// SNOOZED → {ACKNOWLEDGED, RESOLVED}.
func CanAlertTransition(from, to string) bool {
	switch from {
	case AlertStatusActive:
		return to == AlertStatusAcknowledged || to == AlertStatusSnoozed || to == AlertStatusResolved
	case AlertStatusAcknowledged:
		return to == AlertStatusSnoozed || to == AlertStatusResolved
	case AlertStatusSnoozed:
		return to == AlertStatusAcknowledged || to == AlertStatusResolved
	}
	return false
}

// StockAlert es una alerta derivada de los umbrales de stock.
// Invariante: a lo sumo una alerta ACTIVE por (producto, bodega, tipo).
type StockAlert struct {
	ID              string
	TenantID        string
	ProductID       string
	WarehouseID     string
	Type            string
	Priority        string
	Status          string
	CurrentQuantity decimal.Decimal
	MinimumLevel    decimal.Decimal
	Deficit         *decimal.Decimal
	SnoozedUntil    *time.Time
	AcknowledgedBy  string
	AcknowledgedAt  *time.Time
	ResolvedAt      *time.Time
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
