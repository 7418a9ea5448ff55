package entity

import (
	"time"

	"github.com/tu-usuario/almacen-core/internal/domain"
)

// Estados de una ubicación física.
// INACTIVE es un override manual; ACTIVE y FULL se derivan de la ocupación.
const (
	LocationStatusActive   = "ACTIVE"
	LocationStatusInactive = "INACTIVE"
	LocationStatusFull     = "FULL"
)

// LocationStructure define la codificación de ubicaciones de una bodega:
// prefijos y separador de los tres segmentos (zona/estante/casilla) y el
// máximo de valores por segmento. A lo sumo una estructura por (tenant, bodega);
// los prefijos son inmutables una vez existen ubicaciones generadas con ellos.
type LocationStructure struct {
	ID          string
	TenantID    string
	WarehouseID string
	Prefix1     string
	Prefix2     string
	Prefix3     string
	Separator   string
	MaxSegment1 int
	MaxSegment2 int
	MaxSegment3 int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Location representa una ubicación física dentro de una bodega,
// identificada por su código y los tres valores de segmento.
type Location struct {
	ID               string
	TenantID         string
	WarehouseID      string
	Code             string
	Segment1         int
	Segment2         int
	Segment3         int
	Status           string
	Capacity         *int
	CurrentOccupancy int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// IsDeleted indica si la ubicación fue eliminada lógicamente.
func (l *Location) IsDeleted() bool { return l.DeletedAt != nil }

// RecomputeStatus deriva el estado a partir de ocupación y capacidad.
// INACTIVE nunca se limpia automáticamente: es una decisión manual del
// operario y los cambios de ocupación no deben pisarla.
func (l *Location) RecomputeStatus() {
	if l.Status == LocationStatusInactive {
		return
	}
	if l.Capacity != nil && l.CurrentOccupancy >= *l.Capacity {
		l.Status = LocationStatusFull
		return
	}
	l.Status = LocationStatusActive
}

// ApplyOccupancyDelta aplica un delta de ocupación validando que el resultado
// no sea negativo ni exceda la capacidad, y recalcula el estado derivado.
func (l *Location) ApplyOccupancyDelta(delta int) error {
	next := l.CurrentOccupancy + delta
	if next < 0 {
		return domain.ErrNegativeOccupancy
	}
	if l.Capacity != nil && next > *l.Capacity {
		return domain.ErrCapacityExceeded
	}
	l.CurrentOccupancy = next
	l.RecomputeStatus()
	return nil
}
