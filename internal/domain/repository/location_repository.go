package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// LocationStructureRepository define el puerto de persistencia para la
// estructura de codificación de ubicaciones (una por tenant y bodega).
type LocationStructureRepository interface {
	Create(ctx context.Context, s *entity.LocationStructure) error
	GetByWarehouse(ctx context.Context, tenantID, warehouseID string) (*entity.LocationStructure, error)
	Update(ctx context.Context, s *entity.LocationStructure) error
}

// LocationRepository define el puerto de persistencia para ubicaciones (DIP).
// Todas las consultas están acotadas por tenant; las ubicaciones eliminadas
// lógicamente nunca se devuelven en listados ni búsquedas por código.
type LocationRepository interface {
	CreateBatch(ctx context.Context, locations []*entity.Location) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Location, error)
	GetByCode(ctx context.Context, tenantID, warehouseID, code string) (*entity.Location, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para read-modify-write de ocupación.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Location, error)
	GetByCodeForUpdate(ctx context.Context, tenantID, warehouseID, code string) (*entity.Location, error)
	ListByWarehouse(ctx context.Context, tenantID, warehouseID string, limit, offset int) ([]*entity.Location, int, error)
	// ListCodesByWarehouse devuelve todos los códigos vigentes (para generación idempotente).
	ListCodesByWarehouse(ctx context.Context, tenantID, warehouseID string) ([]string, error)
	HasLocations(ctx context.Context, tenantID, warehouseID string) (bool, error)
	Update(ctx context.Context, l *entity.Location) error
	SoftDelete(ctx context.Context, tenantID, id string, at time.Time) error
	// SoftDeleteByWarehouse marca todas las ubicaciones de la bodega como
	// eliminadas (decomiso de bodega); devuelve cuántas afectó.
	SoftDeleteByWarehouse(ctx context.Context, tenantID, warehouseID string, at time.Time) (int, error)
}
