package repository

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para traslados.
// Create inserta cabecera y líneas; la lista de líneas es fija después.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Transfer, error)
	// GetForUpdate obtiene el traslado bloqueando la fila de cabecera; toda
	// transición de estado debe decidirse sobre esta lectura, nunca sobre
	// una lectura previa sin bloqueo.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Transfer, error)
	List(ctx context.Context, tenantID, status string, limit, offset int) ([]*entity.Transfer, int, error)
	// Update persiste los campos de cabecera (estado, completado, cancelación).
	Update(ctx context.Context, t *entity.Transfer) error
	// HasActiveForItems indica si alguno de los ítems participa ya en un
	// traslado no terminal (PENDING o IN_TRANSIT).
	HasActiveForItems(ctx context.Context, tenantID string, itemIDs []string) (bool, error)
}
