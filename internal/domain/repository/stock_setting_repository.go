package repository

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// StockLevelSettingRepository define el puerto para los umbrales de stock
// por producto (opcionalmente por bodega).
type StockLevelSettingRepository interface {
	Create(ctx context.Context, s *entity.StockLevelSetting) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.StockLevelSetting, error)
	// GetByProduct busca primero el umbral específico de la bodega y si no
	// existe devuelve el global del producto; nil si no hay ninguno activo.
	GetByProduct(ctx context.Context, tenantID, productID, warehouseID string) (*entity.StockLevelSetting, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.StockLevelSetting, int, error)
	Update(ctx context.Context, s *entity.StockLevelSetting) error
	Delete(ctx context.Context, tenantID, id string) error
}
