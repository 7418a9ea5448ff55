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

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, tenant_id, product_id, warehouse_id, type, priority, status, current_quantity, minimum_level, deficit, snoozed_until, acknowledged_by, acknowledged_at, resolved_at, note, created_at, updated_at`

// AlertRepo implementación sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func scanAlert(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	var acknowledgedBy, note *string
	err := row.Scan(
		&a.ID, &a.TenantID, &a.ProductID, &a.WarehouseID, &a.Type, &a.Priority, &a.Status,
		&a.CurrentQuantity, &a.MinimumLevel, &a.Deficit, &a.SnoozedUntil,
		&acknowledgedBy, &a.AcknowledgedAt, &a.ResolvedAt, &note, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if acknowledgedBy != nil {
		a.AcknowledgedBy = *acknowledgedBy
	}
	if note != nil {
		a.Note = *note
	}
	return &a, nil
}

// Create persiste una alerta. El índice único parcial sobre alertas ACTIVE
// respalda el invariante de una por (producto, bodega, tipo).
func (r *AlertRepo) Create(ctx context.Context, a *entity.StockAlert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_alerts (id, tenant_id, product_id, warehouse_id, type, priority, status, current_quantity, minimum_level, deficit, snoozed_until, acknowledged_by, acknowledged_at, resolved_at, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	var acknowledgedBy *string
	if a.AcknowledgedBy != "" {
		acknowledgedBy = &a.AcknowledgedBy
	}
	var note *string
	if a.Note != "" {
		note = &a.Note
	}
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TenantID, a.ProductID, a.WarehouseID, a.Type, a.Priority, a.Status,
		a.CurrentQuantity, a.MinimumLevel, a.Deficit, a.SnoozedUntil,
		acknowledgedBy, a.AcknowledgedAt, a.ResolvedAt, note, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID, o nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE tenant_id = $1 AND id = $2`
	a, err := scanAlert(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// GetActive devuelve la alerta ACTIVE para (producto, bodega, tipo), o nil.
func (r *AlertRepo) GetActive(ctx context.Context, tenantID, productID, warehouseID, alertType string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + `
		FROM stock_alerts
		WHERE tenant_id = $1 AND product_id = $2 AND warehouse_id = $3 AND type = $4 AND status = $5`
	a, err := scanAlert(r.q.QueryRow(ctx, query, tenantID, productID, warehouseID, alertType, entity.AlertStatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active alert: %w", err)
	}
	return a, nil
}

// List lista alertas con filtros opcionales de estado y bodega, las más
// recientes primero.
func (r *AlertRepo) List(ctx context.Context, tenantID, status, warehouseID string, limit, offset int) ([]*entity.StockAlert, int, error) {
	where := ` WHERE tenant_id = $1`
	args := []any{tenantID}
	pos := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	if warehouseID != "" {
		where += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_alerts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count alerts: %w", err)
	}

	query := `SELECT ` + alertColumns + ` FROM stock_alerts` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

// Update persiste el estado y los campos de ciclo de vida de la alerta.
func (r *AlertRepo) Update(ctx context.Context, a *entity.StockAlert) error {
	query := `
		UPDATE stock_alerts
		SET priority = $1, status = $2, current_quantity = $3, minimum_level = $4, deficit = $5,
			snoozed_until = $6, acknowledged_by = $7, acknowledged_at = $8, resolved_at = $9, note = $10, updated_at = $11
		WHERE tenant_id = $12 AND id = $13`
	var acknowledgedBy *string
	if a.AcknowledgedBy != "" {
		acknowledgedBy = &a.AcknowledgedBy
	}
	var note *string
	if a.Note != "" {
		note = &a.Note
	}
	tag, err := r.q.Exec(ctx, query,
		a.Priority, a.Status, a.CurrentQuantity, a.MinimumLevel, a.Deficit,
		a.SnoozedUntil, acknowledgedBy, a.AcknowledgedAt, a.ResolvedAt, note, a.UpdatedAt,
		a.TenantID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ResolveActiveByProduct resuelve en bloque las alertas ACTIVE del producto
// (opcionalmente por bodega) y devuelve cuántas afectó.
func (r *AlertRepo) ResolveActiveByProduct(ctx context.Context, tenantID, productID, warehouseID string, at time.Time) (int, error) {
	query := `
		UPDATE stock_alerts SET status = $1, resolved_at = $2, updated_at = $2
		WHERE tenant_id = $3 AND product_id = $4 AND status = $5`
	args := []any{entity.AlertStatusResolved, at, tenantID, productID, entity.AlertStatusActive}
	if warehouseID != "" {
		query += " AND warehouse_id = $6"
		args = append(args, warehouseID)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("resolve alerts by product: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
