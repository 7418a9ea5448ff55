package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// SettingsUseCase gestiona los umbrales de stock por producto.
// Invariantes: reorderPoint ≥ minimumLevel y maximumLevel > reorderPoint.
type SettingsUseCase struct {
	repo repository.StockLevelSettingRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.StockLevelSettingRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

func validateThresholds(s *entity.StockLevelSetting) error {
	if s.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if s.MinimumLevel.IsNegative() || s.ReorderQuantity.IsNegative() || s.LeadTimeDays < 0 {
		return domain.ErrInvalidInput
	}
	if s.ReorderPoint.LessThan(s.MinimumLevel) {
		return domain.ErrInvalidInput
	}
	if s.MaximumLevel != nil && !s.MaximumLevel.GreaterThan(s.ReorderPoint) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create registra los umbrales de un producto.
func (uc *SettingsUseCase) Create(ctx context.Context, tenantID string, in dto.CreateStockSettingRequest) (*dto.StockSettingResponse, error) {
	now := time.Now()
	s := &entity.StockLevelSetting{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		MinimumLevel:    in.MinimumLevel,
		ReorderPoint:    in.ReorderPoint,
		ReorderQuantity: in.ReorderQuantity,
		MaximumLevel:    in.MaximumLevel,
		LeadTimeDays:    in.LeadTimeDays,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := validateThresholds(s); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByProduct(ctx, tenantID, in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.WarehouseID == in.WarehouseID {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSettingResponse(s), nil
}

// Deactivate desactiva un umbral sin borrarlo.
func (uc *SettingsUseCase) Deactivate(ctx context.Context, tenantID, id string) error {
	s, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	s.IsActive = false
	s.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, s)
}

// List lista los umbrales del tenant con paginación.
func (uc *SettingsUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]dto.StockSettingResponse, dto.PageResponse, error) {
	page.Normalize(dto.MaxPageLimit)
	list, total, err := uc.repo.List(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.StockSettingResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSettingResponse(s))
	}
	return items, dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}, nil
}

func toSettingResponse(s *entity.StockLevelSetting) *dto.StockSettingResponse {
	return &dto.StockSettingResponse{
		ID:              s.ID,
		ProductID:       s.ProductID,
		WarehouseID:     s.WarehouseID,
		MinimumLevel:    s.MinimumLevel,
		ReorderPoint:    s.ReorderPoint,
		ReorderQuantity: s.ReorderQuantity,
		MaximumLevel:    s.MaximumLevel,
		LeadTimeDays:    s.LeadTimeDays,
		IsActive:        s.IsActive,
	}
}
