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

var _ repository.StockLevelSettingRepository = (*StockSettingRepo)(nil)

const stockSettingColumns = `id, tenant_id, product_id, warehouse_id, minimum_level, reorder_point, reorder_quantity, maximum_level, lead_time_days, is_active, created_at, updated_at`

// StockSettingRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockSettingRepo struct {
	q Querier
}

// NewStockSettingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockSettingRepository(q Querier) *StockSettingRepo {
	return &StockSettingRepo{q: q}
}

func scanStockSetting(row pgx.Row) (*entity.StockLevelSetting, error) {
	var s entity.StockLevelSetting
	var warehouseID *string
	err := row.Scan(
		&s.ID, &s.TenantID, &s.ProductID, &warehouseID,
		&s.MinimumLevel, &s.ReorderPoint, &s.ReorderQuantity, &s.MaximumLevel,
		&s.LeadTimeDays, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if warehouseID != nil {
		s.WarehouseID = *warehouseID
	}
	return &s, nil
}

// Create persiste un umbral de stock.
func (r *StockSettingRepo) Create(ctx context.Context, s *entity.StockLevelSetting) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_level_settings (id, tenant_id, product_id, warehouse_id, minimum_level, reorder_point, reorder_quantity, maximum_level, lead_time_days, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	var warehouseID *string
	if s.WarehouseID != "" {
		warehouseID = &s.WarehouseID
	}
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.ProductID, warehouseID,
		s.MinimumLevel, s.ReorderPoint, s.ReorderQuantity, s.MaximumLevel,
		s.LeadTimeDays, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock setting: %w", err)
	}
	return nil
}

// GetByID obtiene un umbral por ID, o nil si no existe.
func (r *StockSettingRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.StockLevelSetting, error) {
	query := `SELECT ` + stockSettingColumns + ` FROM stock_level_settings WHERE tenant_id = $1 AND id = $2`
	s, err := scanStockSetting(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock setting: %w", err)
	}
	return s, nil
}

// GetByProduct busca el umbral activo del producto: primero el específico de
// la bodega, si no el global (warehouse_id nulo). Una sola consulta ordenando
// los específicos antes que el global.
func (r *StockSettingRepo) GetByProduct(ctx context.Context, tenantID, productID, warehouseID string) (*entity.StockLevelSetting, error) {
	query := `SELECT ` + stockSettingColumns + `
		FROM stock_level_settings
		WHERE tenant_id = $1 AND product_id = $2 AND is_active
			AND (warehouse_id = $3 OR warehouse_id IS NULL)
		ORDER BY warehouse_id NULLS LAST
		LIMIT 1`
	s, err := scanStockSetting(r.q.QueryRow(ctx, query, tenantID, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock setting by product: %w", err)
	}
	return s, nil
}

// List lista umbrales del tenant con paginación.
func (r *StockSettingRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.StockLevelSetting, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_level_settings WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock settings: %w", err)
	}

	query := `SELECT ` + stockSettingColumns + `
		FROM stock_level_settings WHERE tenant_id = $1
		ORDER BY product_id, warehouse_id NULLS LAST LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevelSetting
	for rows.Next() {
		s, err := scanStockSetting(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock setting: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Update persiste los umbrales y el flag de actividad.
func (r *StockSettingRepo) Update(ctx context.Context, s *entity.StockLevelSetting) error {
	query := `
		UPDATE stock_level_settings
		SET minimum_level = $1, reorder_point = $2, reorder_quantity = $3, maximum_level = $4,
			lead_time_days = $5, is_active = $6, updated_at = $7
		WHERE tenant_id = $8 AND id = $9`
	tag, err := r.q.Exec(ctx, query,
		s.MinimumLevel, s.ReorderPoint, s.ReorderQuantity, s.MaximumLevel,
		s.LeadTimeDays, s.IsActive, s.UpdatedAt, s.TenantID, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update stock setting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un umbral.
func (r *StockSettingRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_level_settings WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete stock setting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
