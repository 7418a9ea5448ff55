package entity

import "time"

// Estados de una bodega.
const (
	WarehouseStatusActive   = "ACTIVE"
	WarehouseStatusInactive = "INACTIVE"
)

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// El código es único por tenant y a lo sumo una bodega por tenant es default
// (invariante mantenido transaccionalmente por el repositorio en SetDefault).
type Warehouse struct {
	ID        string
	TenantID  string
	Code      string
	Name      string
	Type      string
	Status    string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
