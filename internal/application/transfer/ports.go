package transfer

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El cierre de un traslado escribe pares de
// entradas del libro, cantidades de ítems y ocupaciones de ubicación:
// o se aplican todas o ninguna.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		locRepo repository.LocationRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
