package location

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// MaxGeneratedLocations tope duro del sistema para la generación masiva:
// se rechaza con ErrLimitExceeded antes de cualquier escritura.
const MaxGeneratedLocations = 50_000

// LocationUseCase gestiona estructuras de codificación, generación masiva,
// validación de códigos, ocupación y eliminación lógica de ubicaciones.
type LocationUseCase struct {
	structRepo repository.LocationStructureRepository
	locRepo    repository.LocationRepository
	txRunner   TxRunner
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	structRepo repository.LocationStructureRepository,
	locRepo repository.LocationRepository,
	txRunner TxRunner,
) *LocationUseCase {
	return &LocationUseCase{structRepo: structRepo, locRepo: locRepo, txRunner: txRunner}
}

// CreateStructure crea la estructura de codificación de la bodega.
// A lo sumo una por (tenant, bodega).
func (uc *LocationUseCase) CreateStructure(ctx context.Context, tenantID string, in dto.CreateLocationStructureRequest) (*dto.LocationStructureResponse, error) {
	if in.WarehouseID == "" || in.Prefix1 == "" || in.Prefix2 == "" || in.Prefix3 == "" || in.Separator == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MaxSegment1 < 1 || in.MaxSegment2 < 1 || in.MaxSegment3 < 1 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.structRepo.GetByWarehouse(ctx, tenantID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	s := &entity.LocationStructure{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		WarehouseID: in.WarehouseID,
		Prefix1:     in.Prefix1,
		Prefix2:     in.Prefix2,
		Prefix3:     in.Prefix3,
		Separator:   in.Separator,
		MaxSegment1: in.MaxSegment1,
		MaxSegment2: in.MaxSegment2,
		MaxSegment3: in.MaxSegment3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.structRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toStructureResponse(s), nil
}

// UpdateStructure actualiza la estructura. Prefijos y separador son
// inmutables una vez existen ubicaciones generadas bajo ellos: cambiarlos
// dejaría códigos huérfanos.
func (uc *LocationUseCase) UpdateStructure(ctx context.Context, tenantID, warehouseID string, in dto.UpdateLocationStructureRequest) (*dto.LocationStructureResponse, error) {
	s, err := uc.structRepo.GetByWarehouse(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	changesCoding := (in.Prefix1 != nil && *in.Prefix1 != s.Prefix1) ||
		(in.Prefix2 != nil && *in.Prefix2 != s.Prefix2) ||
		(in.Prefix3 != nil && *in.Prefix3 != s.Prefix3) ||
		(in.Separator != nil && *in.Separator != s.Separator)
	if changesCoding {
		has, err := uc.locRepo.HasLocations(ctx, tenantID, warehouseID)
		if err != nil {
			return nil, err
		}
		if has {
			return nil, domain.ErrConflict
		}
	}
	if in.Prefix1 != nil {
		s.Prefix1 = *in.Prefix1
	}
	if in.Prefix2 != nil {
		s.Prefix2 = *in.Prefix2
	}
	if in.Prefix3 != nil {
		s.Prefix3 = *in.Prefix3
	}
	if in.Separator != nil {
		s.Separator = *in.Separator
	}
	if in.MaxSegment1 != nil {
		s.MaxSegment1 = *in.MaxSegment1
	}
	if in.MaxSegment2 != nil {
		s.MaxSegment2 = *in.MaxSegment2
	}
	if in.MaxSegment3 != nil {
		s.MaxSegment3 = *in.MaxSegment3
	}
	if s.MaxSegment1 < 1 || s.MaxSegment2 < 1 || s.MaxSegment3 < 1 {
		return nil, domain.ErrInvalidInput
	}
	s.UpdatedAt = time.Now()
	if err := uc.structRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStructureResponse(s), nil
}

// GetStructure devuelve la estructura de la bodega.
func (uc *LocationUseCase) GetStructure(ctx context.Context, tenantID, warehouseID string) (*dto.LocationStructureResponse, error) {
	s, err := uc.structRepo.GetByWarehouse(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toStructureResponse(s), nil
}

// Generate enumera segment1 × segment2 × segment3 dentro de los conteos
// pedidos y crea las ubicaciones que falten (idempotente: los códigos ya
// existentes se saltan). El tope duro de 50.000 se verifica sobre el
// producto de los conteos pedidos antes de cualquier otra validación o
// escritura.
func (uc *LocationUseCase) Generate(ctx context.Context, tenantID, warehouseID string, in dto.GenerateLocationsRequest) (*dto.GenerateLocationsResponse, error) {
	if in.Count1 < 1 || in.Count2 < 1 || in.Count3 < 1 {
		return nil, domain.ErrInvalidInput
	}
	requested := in.Count1 * in.Count2 * in.Count3
	if requested > MaxGeneratedLocations {
		return nil, domain.ErrLimitExceeded
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}

	s, err := uc.structRepo.GetByWarehouse(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Count1 > s.MaxSegment1 || in.Count2 > s.MaxSegment2 || in.Count3 > s.MaxSegment3 {
		return nil, domain.ErrInvalidInput
	}

	existingCodes, err := uc.locRepo.ListCodesByWarehouse(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]struct{}, len(existingCodes))
	for _, c := range existingCodes {
		existing[c] = struct{}{}
	}

	now := time.Now()
	var batch []*entity.Location
	for v1 := 1; v1 <= in.Count1; v1++ {
		for v2 := 1; v2 <= in.Count2; v2++ {
			for v3 := 1; v3 <= in.Count3; v3++ {
				code := buildCode(s, v1, v2, v3)
				if _, ok := existing[code]; ok {
					continue
				}
				batch = append(batch, &entity.Location{
					ID:               uuid.New().String(),
					TenantID:         tenantID,
					WarehouseID:      warehouseID,
					Code:             code,
					Segment1:         v1,
					Segment2:         v2,
					Segment3:         v3,
					Status:           entity.LocationStatusActive,
					Capacity:         in.Capacity,
					CurrentOccupancy: 0,
					CreatedAt:        now,
					UpdatedAt:        now,
				})
			}
		}
	}

	if len(batch) > 0 {
		err = uc.txRunner.RunLocations(ctx, func(locRepo repository.LocationRepository) error {
			return locRepo.CreateBatch(ctx, batch)
		})
		if err != nil {
			return nil, err
		}
	}
	return &dto.GenerateLocationsResponse{
		Requested: requested,
		Created:   len(batch),
		Skipped:   requested - len(batch),
	}, nil
}

// ValidateCode valida un código crudo contra la estructura de la bodega.
// Las entradas malformadas no son errores: se devuelven como razón tipada.
func (uc *LocationUseCase) ValidateCode(ctx context.Context, tenantID, warehouseID, raw string) (*dto.CodeValidationResponse, error) {
	s, err := uc.structRepo.GetByWarehouse(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.CodeValidationResponse{Valid: false, Reason: ReasonUnknownStructure}, nil
	}
	v1, v2, v3, reason := parseCode(s, raw)
	if reason != "" {
		return &dto.CodeValidationResponse{Valid: false, Reason: reason}, nil
	}
	return &dto.CodeValidationResponse{Valid: true, Segment1: v1, Segment2: v2, Segment3: v3}, nil
}

// AdjustOccupancy suma el delta a la ocupación con bloqueo de fila.
// El resultado no puede ser negativo ni exceder la capacidad; INACTIVE
// nunca se pisa por transiciones derivadas de ocupación.
func (uc *LocationUseCase) AdjustOccupancy(ctx context.Context, tenantID, locationID string, delta int) (*dto.LocationResponse, error) {
	var resp *dto.LocationResponse
	err := uc.txRunner.RunLocations(ctx, func(locRepo repository.LocationRepository) error {
		loc, err := locRepo.GetForUpdate(ctx, tenantID, locationID)
		if err != nil {
			return err
		}
		if loc == nil || loc.IsDeleted() {
			return domain.ErrNotFound
		}
		if err := loc.ApplyOccupancyDelta(delta); err != nil {
			return err
		}
		loc.UpdatedAt = time.Now()
		if err := locRepo.Update(ctx, loc); err != nil {
			return err
		}
		resp = toLocationResponse(loc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete elimina lógicamente la ubicación y fuerza su estado fuera de
// ACTIVE: una ubicación eliminada no debe aparecer en consultas de
// disponibilidad.
func (uc *LocationUseCase) Delete(ctx context.Context, tenantID, locationID string) error {
	loc, err := uc.locRepo.GetByID(ctx, tenantID, locationID)
	if err != nil {
		return err
	}
	if loc == nil || loc.IsDeleted() {
		return domain.ErrNotFound
	}
	return uc.locRepo.SoftDelete(ctx, tenantID, locationID, time.Now())
}

// DeleteByWarehouse elimina lógicamente todas las ubicaciones de la bodega
// (decomiso); devuelve cuántas afectó.
func (uc *LocationUseCase) DeleteByWarehouse(ctx context.Context, tenantID, warehouseID string) (int, error) {
	var count int
	err := uc.txRunner.RunLocations(ctx, func(locRepo repository.LocationRepository) error {
		n, err := locRepo.SoftDeleteByWarehouse(ctx, tenantID, warehouseID, time.Now())
		if err != nil {
			return err
		}
		count = n
		return nil
	})
	return count, err
}

// List lista ubicaciones vigentes de la bodega con paginación.
func (uc *LocationUseCase) List(ctx context.Context, tenantID, warehouseID string, page dto.PageRequest) (*dto.LocationListResponse, error) {
	page.Normalize(dto.MaxPageLimit)
	list, total, err := uc.locRepo.ListByWarehouse(ctx, tenantID, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toStructureResponse(s *entity.LocationStructure) *dto.LocationStructureResponse {
	return &dto.LocationStructureResponse{
		ID:          s.ID,
		WarehouseID: s.WarehouseID,
		Prefix1:     s.Prefix1,
		Prefix2:     s.Prefix2,
		Prefix3:     s.Prefix3,
		Separator:   s.Separator,
		MaxSegment1: s.MaxSegment1,
		MaxSegment2: s.MaxSegment2,
		MaxSegment3: s.MaxSegment3,
		CreatedAt:   s.CreatedAt,
	}
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:               l.ID,
		WarehouseID:      l.WarehouseID,
		Code:             l.Code,
		Segment1:         l.Segment1,
		Segment2:         l.Segment2,
		Segment3:         l.Segment3,
		Status:           l.Status,
		Capacity:         l.Capacity,
		CurrentOccupancy: l.CurrentOccupancy,
		DeletedAt:        l.DeletedAt,
	}
}
