package ledger

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La entrada del libro y la actualización de
// la fila de estado actual del ítem deben confirmar o revertir juntas.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
	) error) error
}
