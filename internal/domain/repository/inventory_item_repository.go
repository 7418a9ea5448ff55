package repository

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// InventoryItemRepository define el puerto para la fila de estado actual de
// inventario. La cantidad solo se muta junto con una entrada del libro de
// movimientos, dentro de la misma transacción.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar
	// los read-modify-write de cantidad entre llamadores concurrentes.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error)
	// GetByProductAndWarehouseForUpdate devuelve nil (sin error) si no existe.
	GetByProductAndWarehouseForUpdate(ctx context.Context, tenantID, warehouseID, productID string) (*entity.InventoryItem, error)
	ListByProduct(ctx context.Context, tenantID, productID, warehouseID string) ([]*entity.InventoryItem, error)
	// ListProductIDs devuelve los productos con ítems en la bodega
	// (o en todo el tenant si warehouseID es vacío).
	ListProductIDs(ctx context.Context, tenantID, warehouseID string) ([]string, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
}
