package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, tenant_id, warehouse_id, code, segment1, segment2, segment3, status, capacity, current_occupancy, created_at, updated_at, deleted_at`

// LocationRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las eliminadas lógicamente (deleted_at no nulo) nunca salen de aquí.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(
		&l.ID, &l.TenantID, &l.WarehouseID, &l.Code,
		&l.Segment1, &l.Segment2, &l.Segment3, &l.Status,
		&l.Capacity, &l.CurrentOccupancy, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateBatch inserta las ubicaciones en lote. La unicidad del código por
// bodega la garantiza el índice único parcial sobre filas vigentes.
func (r *LocationRepo) CreateBatch(ctx context.Context, locations []*entity.Location) error {
	if len(locations) == 0 {
		return nil
	}
	query := `
		INSERT INTO locations (id, tenant_id, warehouse_id, code, segment1, segment2, segment3, status, capacity, current_occupancy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	batch := &pgx.Batch{}
	for _, l := range locations {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		batch.Queue(query,
			l.ID, l.TenantID, l.WarehouseID, l.Code,
			l.Segment1, l.Segment2, l.Segment3, l.Status,
			l.Capacity, l.CurrentOccupancy, l.CreatedAt, l.UpdatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range locations {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("create locations batch: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una ubicación vigente por ID, o nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`
	l, err := scanLocation(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// GetByCode obtiene una ubicación vigente por código dentro de la bodega.
func (r *LocationRepo) GetByCode(ctx context.Context, tenantID, warehouseID, code string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE tenant_id = $1 AND warehouse_id = $2 AND code = $3 AND deleted_at IS NULL`
	l, err := scanLocation(r.q.QueryRow(ctx, query, tenantID, warehouseID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	return l, nil
}

// GetForUpdate obtiene la ubicación y bloquea la fila (SELECT FOR UPDATE).
func (r *LocationRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL FOR UPDATE`
	l, err := scanLocation(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location for update: %w", err)
	}
	return l, nil
}

// GetByCodeForUpdate obtiene por código y bloquea la fila (SELECT FOR UPDATE).
func (r *LocationRepo) GetByCodeForUpdate(ctx context.Context, tenantID, warehouseID, code string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE tenant_id = $1 AND warehouse_id = $2 AND code = $3 AND deleted_at IS NULL FOR UPDATE`
	l, err := scanLocation(r.q.QueryRow(ctx, query, tenantID, warehouseID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code for update: %w", err)
	}
	return l, nil
}

// ListByWarehouse lista ubicaciones vigentes de la bodega con paginación,
// ordenadas por código.
func (r *LocationRepo) ListByWarehouse(ctx context.Context, tenantID, warehouseID string, limit, offset int) ([]*entity.Location, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM locations WHERE tenant_id = $1 AND warehouse_id = $2 AND deleted_at IS NULL`
	if err := r.q.QueryRow(ctx, countQuery, tenantID, warehouseID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}

	query := `SELECT ` + locationColumns + `
		FROM locations WHERE tenant_id = $1 AND warehouse_id = $2 AND deleted_at IS NULL
		ORDER BY code LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, warehouseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// ListCodesByWarehouse devuelve todos los códigos vigentes de la bodega.
func (r *LocationRepo) ListCodesByWarehouse(ctx context.Context, tenantID, warehouseID string) ([]string, error) {
	query := `SELECT code FROM locations WHERE tenant_id = $1 AND warehouse_id = $2 AND deleted_at IS NULL`
	rows, err := r.q.Query(ctx, query, tenantID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list location codes: %w", err)
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan location code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// HasLocations indica si la bodega tiene alguna ubicación vigente.
func (r *LocationRepo) HasLocations(ctx context.Context, tenantID, warehouseID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM locations WHERE tenant_id = $1 AND warehouse_id = $2 AND deleted_at IS NULL)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, tenantID, warehouseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has locations: %w", err)
	}
	return exists, nil
}

// Update persiste estado, capacidad y ocupación de la ubicación.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `
		UPDATE locations
		SET status = $1, capacity = $2, current_occupancy = $3, updated_at = $4
		WHERE tenant_id = $5 AND id = $6 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query, l.Status, l.Capacity, l.CurrentOccupancy, l.UpdatedAt, l.TenantID, l.ID)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la ubicación como eliminada lógicamente. También la saca
// de ACTIVE para que ninguna consulta de disponibilidad la seleccione.
func (r *LocationRepo) SoftDelete(ctx context.Context, tenantID, id string, at time.Time) error {
	query := `UPDATE locations SET deleted_at = $1, updated_at = $1, status = 'INACTIVE' WHERE tenant_id = $2 AND id = $3 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query, at, tenantID, id)
	if err != nil {
		return fmt.Errorf("soft delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDeleteByWarehouse marca como eliminadas todas las ubicaciones vigentes
// de la bodega y devuelve cuántas afectó.
func (r *LocationRepo) SoftDeleteByWarehouse(ctx context.Context, tenantID, warehouseID string, at time.Time) (int, error) {
	query := `UPDATE locations SET deleted_at = $1, updated_at = $1, status = 'INACTIVE' WHERE tenant_id = $2 AND warehouse_id = $3 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query, at, tenantID, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("soft delete locations by warehouse: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
