package warehouse

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// WarehouseUseCase casos de uso de bodegas: CRUD, bodega default y decomiso.
type WarehouseUseCase struct {
	txRunner TxRunner
	repo     repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(txRunner TxRunner, repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{txRunner: txRunner, repo: repo}
}

// Create crea una bodega. El código es único por tenant.
func (uc *WarehouseUseCase) Create(ctx context.Context, tenantID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, tenantID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		Status:    entity.WarehouseStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(w), nil
}

// Update actualiza nombre, tipo o estado.
func (uc *WarehouseUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Type != nil {
		w.Type = *in.Type
	}
	if in.Status != nil {
		if *in.Status != entity.WarehouseStatusActive && *in.Status != entity.WarehouseStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		w.Status = *in.Status
	}
	w.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// SetDefault marca la bodega como default del tenant. La limpieza de las
// demás y el marcado ocurren en una sola transacción del repositorio,
// nunca como scan-and-fix en aplicación.
func (uc *WarehouseUseCase) SetDefault(ctx context.Context, tenantID, id string) error {
	w, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetDefault(ctx, tenantID, id)
}

// List lista bodegas del tenant con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.Normalize(dto.MaxPageLimit)
	list, total, err := uc.repo.List(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Decommission marca la bodega INACTIVE y elimina lógicamente todas sus
// ubicaciones en una sola transacción; devuelve cuántas ubicaciones
// afectó. Si la eliminación falla, la bodega no queda INACTIVE a medias.
func (uc *WarehouseUseCase) Decommission(ctx context.Context, tenantID, id string) (int, error) {
	var count int
	now := time.Now()
	err := uc.txRunner.RunWarehouse(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		locRepo repository.LocationRepository,
	) error {
		w, err := warehouseRepo.GetByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		w.Status = entity.WarehouseStatusInactive
		w.UpdatedAt = now
		if err := warehouseRepo.Update(ctx, w); err != nil {
			return err
		}
		count, err = locRepo.SoftDeleteByWarehouse(ctx, tenantID, id, now)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Type:      w.Type,
		Status:    w.Status,
		IsDefault: w.IsDefault,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
