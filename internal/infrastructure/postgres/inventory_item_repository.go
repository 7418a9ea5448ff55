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

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `id, tenant_id, warehouse_id, product_id, product_name, quantity, status, location_code, min_stock_level, max_stock_level, created_at, updated_at`

// InventoryItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.TenantID, &it.WarehouseID, &it.ProductID, &it.ProductName,
		&it.Quantity, &it.Status, &it.LocationCode,
		&it.MinStockLevel, &it.MaxStockLevel, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un ítem de inventario.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_items (id, tenant_id, warehouse_id, product_id, product_name, quantity, status, location_code, min_stock_level, max_stock_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TenantID, item.WarehouseID, item.ProductID, item.ProductName,
		item.Quantity, item.Status, item.LocationCode,
		item.MinStockLevel, item.MaxStockLevel, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID, o nil si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND id = $2`
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return it, nil
}

// GetByProductAndWarehouseForUpdate bloquea el ítem del producto en la
// bodega, o devuelve nil (sin error) si no existe todavía.
func (r *InventoryItemRepo) GetByProductAndWarehouseForUpdate(ctx context.Context, tenantID, warehouseID, productID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE tenant_id = $1 AND warehouse_id = $2 AND product_id = $3
		FOR UPDATE`
	it, err := scanInventoryItem(r.q.QueryRow(ctx, query, tenantID, warehouseID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item by product for update: %w", err)
	}
	return it, nil
}

// ListByProduct lista los ítems de un producto; warehouseID vacío lista en
// todas las bodegas del tenant.
func (r *InventoryItemRepo) ListByProduct(ctx context.Context, tenantID, productID, warehouseID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND product_id = $2`
	args := []any{tenantID, productID}
	if warehouseID != "" {
		query += " AND warehouse_id = $3"
		args = append(args, warehouseID)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListProductIDs devuelve los productos con ítems en la bodega (o en todo el
// tenant si warehouseID es vacío).
func (r *InventoryItemRepo) ListProductIDs(ctx context.Context, tenantID, warehouseID string) ([]string, error) {
	query := `SELECT DISTINCT product_id FROM inventory_items WHERE tenant_id = $1`
	args := []any{tenantID}
	if warehouseID != "" {
		query += " AND warehouse_id = $2"
		args = append(args, warehouseID)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update persiste cantidad, estado, ubicación y umbrales del ítem.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET quantity = $1, status = $2, location_code = $3, min_stock_level = $4, max_stock_level = $5, updated_at = $6
		WHERE tenant_id = $7 AND id = $8`
	tag, err := r.q.Exec(ctx, query,
		item.Quantity, item.Status, item.LocationCode,
		item.MinStockLevel, item.MaxStockLevel, item.UpdatedAt,
		item.TenantID, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
