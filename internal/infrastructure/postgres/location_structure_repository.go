package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

var _ repository.LocationStructureRepository = (*LocationStructureRepo)(nil)

// LocationStructureRepo implementación sobre PostgreSQL (usable con pool o tx).
type LocationStructureRepo struct {
	q Querier
}

// NewLocationStructureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationStructureRepository(q Querier) *LocationStructureRepo {
	return &LocationStructureRepo{q: q}
}

// Create persiste la estructura de codificación de una bodega.
func (r *LocationStructureRepo) Create(ctx context.Context, s *entity.LocationStructure) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO location_structures (id, tenant_id, warehouse_id, prefix1, prefix2, prefix3, separator, max_segment1, max_segment2, max_segment3, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.WarehouseID, s.Prefix1, s.Prefix2, s.Prefix3,
		s.Separator, s.MaxSegment1, s.MaxSegment2, s.MaxSegment3, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location structure: %w", err)
	}
	return nil
}

// GetByWarehouse obtiene la estructura de una bodega, o nil si no existe.
func (r *LocationStructureRepo) GetByWarehouse(ctx context.Context, tenantID, warehouseID string) (*entity.LocationStructure, error) {
	query := `
		SELECT id, tenant_id, warehouse_id, prefix1, prefix2, prefix3, separator, max_segment1, max_segment2, max_segment3, created_at, updated_at
		FROM location_structures WHERE tenant_id = $1 AND warehouse_id = $2`
	var s entity.LocationStructure
	err := r.q.QueryRow(ctx, query, tenantID, warehouseID).Scan(
		&s.ID, &s.TenantID, &s.WarehouseID, &s.Prefix1, &s.Prefix2, &s.Prefix3,
		&s.Separator, &s.MaxSegment1, &s.MaxSegment2, &s.MaxSegment3, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location structure: %w", err)
	}
	return &s, nil
}

// Update persiste los cambios de la estructura (separador y máximos).
func (r *LocationStructureRepo) Update(ctx context.Context, s *entity.LocationStructure) error {
	query := `
		UPDATE location_structures
		SET prefix1 = $1, prefix2 = $2, prefix3 = $3, separator = $4,
			max_segment1 = $5, max_segment2 = $6, max_segment3 = $7, updated_at = $8
		WHERE tenant_id = $9 AND id = $10`
	tag, err := r.q.Exec(ctx, query,
		s.Prefix1, s.Prefix2, s.Prefix3, s.Separator,
		s.MaxSegment1, s.MaxSegment2, s.MaxSegment3, s.UpdatedAt,
		s.TenantID, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update location structure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
