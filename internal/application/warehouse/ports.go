package warehouse

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El decomiso marca la bodega INACTIVE y
// elimina sus ubicaciones como una sola unidad: o ambas cosas o ninguna.
type TxRunner interface {
	RunWarehouse(ctx context.Context, fn func(
		warehouseRepo repository.WarehouseRepository,
		locRepo repository.LocationRepository,
	) error) error
}
