package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// MovementSummaryRow resultado crudo de la agregación por tipo de movimiento:
// suma de cambios positivos y suma (en valor absoluto) de cambios negativos.
type MovementSummaryRow struct {
	Type     string
	Positive decimal.Decimal
	Negative decimal.Decimal
}

// MovementRepository define el puerto de persistencia del libro de
// movimientos. El libro es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// CreateBatch inserta todas las entradas o ninguna (misma transacción).
	CreateBatch(ctx context.Context, ms []*entity.Movement) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Movement, error)
	// ListByItem devuelve el historial de un ítem en orden cronológico
	// ascendente por performed_at; ese orden es contractual para replay.
	ListByItem(ctx context.Context, tenantID, itemID string, limit, offset int) ([]*entity.Movement, int, error)
	ListByWarehouse(ctx context.Context, tenantID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, int, error)
	// SummarizeByPeriod agrega cantidades por tipo dentro del período;
	// warehouseID vacío agrega sobre todas las bodegas del tenant.
	SummarizeByPeriod(ctx context.Context, tenantID, warehouseID string, from, to time.Time) ([]MovementSummaryRow, error)
}
