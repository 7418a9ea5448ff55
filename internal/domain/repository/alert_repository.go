package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas de stock.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.StockAlert) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.StockAlert, error)
	// GetActive devuelve la alerta ACTIVE para (producto, bodega, tipo),
	// o nil si no hay ninguna.
	GetActive(ctx context.Context, tenantID, productID, warehouseID, alertType string) (*entity.StockAlert, error)
	List(ctx context.Context, tenantID, status, warehouseID string, limit, offset int) ([]*entity.StockAlert, int, error)
	Update(ctx context.Context, a *entity.StockAlert) error
	// ResolveActiveByProduct resuelve en bloque las alertas ACTIVE del
	// producto (opcionalmente por bodega) y devuelve cuántas afectó.
	ResolveActiveByProduct(ctx context.Context, tenantID, productID, warehouseID string, at time.Time) (int, error)
}
