package stock

import (
	"context"

	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// StockAggregator calcula resúmenes de stock por producto a partir del
// estado actual de los ítems y clasifica el nivel contra los umbrales.
type StockAggregator struct {
	itemRepo    repository.InventoryItemRepository
	settingRepo repository.StockLevelSettingRepository
}

// NewStockAggregator construye el agregador.
func NewStockAggregator(
	itemRepo repository.InventoryItemRepository,
	settingRepo repository.StockLevelSettingRepository,
) *StockAggregator {
	return &StockAggregator{itemRepo: itemRepo, settingRepo: settingRepo}
}

// Summarize suma cantidades por estado de ítem para el producto (y bodega
// opcional). El piso efectivo es el mínimo MinStockLevel configurado entre
// los ítems; si ninguno lo trae, se consulta el umbral configurado por
// producto como respaldo.
func (uc *StockAggregator) Summarize(ctx context.Context, tenantID, productID, warehouseID string) (*entity.StockSummary, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.itemRepo.ListByProduct(ctx, tenantID, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	sum := &entity.StockSummary{
		TenantID:    tenantID,
		ProductID:   productID,
		WarehouseID: warehouseID,
	}
	for _, it := range items {
		sum.Total = sum.Total.Add(it.Quantity)
		switch it.Status {
		case entity.ItemStatusAvailable:
			sum.Available = sum.Available.Add(it.Quantity)
		case entity.ItemStatusReserved:
			sum.Reserved = sum.Reserved.Add(it.Quantity)
		case entity.ItemStatusInTransit:
			sum.InTransit = sum.InTransit.Add(it.Quantity)
		case entity.ItemStatusInService:
			sum.InService = sum.InService.Add(it.Quantity)
		case entity.ItemStatusRented:
			sum.Rented = sum.Rented.Add(it.Quantity)
		}
		if it.MinStockLevel != nil {
			if sum.MinStockLevel == nil || it.MinStockLevel.LessThan(*sum.MinStockLevel) {
				sum.MinStockLevel = it.MinStockLevel
			}
		}
	}

	if sum.MinStockLevel == nil {
		setting, err := uc.settingRepo.GetByProduct(ctx, tenantID, productID, warehouseID)
		if err != nil {
			return nil, err
		}
		if setting != nil && setting.IsActive {
			min := setting.MinimumLevel
			sum.MinStockLevel = &min
		}
	}

	sum.Classification = entity.ClassifyStockLevel(sum.Available, sum.MinStockLevel)
	return sum, nil
}

// BelowThreshold devuelve los resúmenes clasificados LOW, CRITICAL u
// OUT_OF_STOCK para la bodega (o todo el tenant). Alimenta directamente al
// motor de alertas.
func (uc *StockAggregator) BelowThreshold(ctx context.Context, tenantID, warehouseID string) ([]*entity.StockSummary, error) {
	productIDs, err := uc.itemRepo.ListProductIDs(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	var out []*entity.StockSummary
	for _, pid := range productIDs {
		sum, err := uc.Summarize(ctx, tenantID, pid, warehouseID)
		if err != nil {
			return nil, err
		}
		if sum.Classification != entity.StockLevelOK {
			out = append(out, sum)
		}
	}
	return out, nil
}

// ToSummaryResponse convierte el resumen de dominio al DTO de respuesta.
func ToSummaryResponse(s *entity.StockSummary) *dto.StockSummaryResponse {
	return &dto.StockSummaryResponse{
		ProductID:      s.ProductID,
		WarehouseID:    s.WarehouseID,
		Available:      s.Available,
		Reserved:       s.Reserved,
		InTransit:      s.InTransit,
		InService:      s.InService,
		Rented:         s.Rented,
		Total:          s.Total,
		MinStockLevel:  s.MinStockLevel,
		Classification: s.Classification,
	}
}
