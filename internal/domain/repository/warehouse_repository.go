package repository

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Warehouse, error)
	GetByCode(ctx context.Context, tenantID, code string) (*entity.Warehouse, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Warehouse, int, error)
	// SetDefault limpia el flag default de las demás bodegas del tenant y lo
	// fija en la indicada, en una sola transacción (nunca scan-and-fix).
	SetDefault(ctx context.Context, tenantID, id string) error
	Delete(ctx context.Context, tenantID, id string) error
}
