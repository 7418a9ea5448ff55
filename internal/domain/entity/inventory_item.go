package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ítem de inventario.
const (
	ItemStatusAvailable = "AVAILABLE"
	ItemStatusReserved  = "RESERVED"
	ItemStatusInTransit = "IN_TRANSIT"
	ItemStatusInService = "IN_SERVICE"
	ItemStatusRented    = "RENTED"
)

// InventoryItem es la fila de estado actual de un producto en una bodega.
// El libro de movimientos es la historia append-only que explica cómo llegó
// a ese estado; la cantidad de esta fila debe poder reconstruirse desde él.
type InventoryItem struct {
	ID            string
	TenantID      string
	WarehouseID   string
	ProductID     string
	ProductName   string
	Quantity      decimal.Decimal
	Status        string
	LocationCode  string
	MinStockLevel *decimal.Decimal
	MaxStockLevel *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
