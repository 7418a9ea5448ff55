package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, tenant_id, inventory_item_id, warehouse_id, product_id, type, quantity_change, previous_quantity, new_quantity, location_before, location_after, reason, reference_id, reference_type, performed_by, performed_at, created_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro no se edita.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.TenantID, &m.InventoryItemID, &m.WarehouseID, &m.ProductID, &m.Type,
		&m.QuantityChange, &m.PreviousQuantity, &m.NewQuantity,
		&m.LocationBefore, &m.LocationAfter, &m.Reason,
		&m.ReferenceID, &m.ReferenceType, &m.PerformedBy, &m.PerformedAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const insertMovementQuery = `
	INSERT INTO inventory_movements (id, tenant_id, inventory_item_id, warehouse_id, product_id, type, quantity_change, previous_quantity, new_quantity, location_before, location_after, reason, reference_id, reference_type, performed_by, performed_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

// Create anexa una entrada al libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, insertMovementQuery,
		m.ID, m.TenantID, m.InventoryItemID, m.WarehouseID, m.ProductID, m.Type,
		m.QuantityChange, m.PreviousQuantity, m.NewQuantity,
		m.LocationBefore, m.LocationAfter, m.Reason,
		m.ReferenceID, m.ReferenceType, m.PerformedBy, m.PerformedAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// CreateBatch anexa varias entradas en lote (misma transacción).
func (r *MovementRepo) CreateBatch(ctx context.Context, ms []*entity.Movement) error {
	if len(ms) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, m := range ms {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		batch.Queue(insertMovementQuery,
			m.ID, m.TenantID, m.InventoryItemID, m.WarehouseID, m.ProductID, m.Type,
			m.QuantityChange, m.PreviousQuantity, m.NewQuantity,
			m.LocationBefore, m.LocationAfter, m.Reason,
			m.ReferenceID, m.ReferenceType, m.PerformedBy, m.PerformedAt, m.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range ms {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("create movements batch: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una entrada por ID, o nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE tenant_id = $1 AND id = $2`
	m, err := scanMovement(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByItem devuelve el historial del ítem en orden cronológico ascendente.
// El desempate por created_at cubre entradas con el mismo performed_at.
func (r *MovementRepo) ListByItem(ctx context.Context, tenantID, itemID string, limit, offset int) ([]*entity.Movement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM inventory_movements WHERE tenant_id = $1 AND inventory_item_id = $2`
	if err := r.q.QueryRow(ctx, countQuery, tenantID, itemID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `SELECT ` + movementColumns + `
		FROM inventory_movements WHERE tenant_id = $1 AND inventory_item_id = $2
		ORDER BY performed_at ASC, created_at ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, itemID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ListByWarehouse lista movimientos de una bodega en un rango de fechas,
// los más recientes primero.
func (r *MovementRepo) ListByWarehouse(ctx context.Context, tenantID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, int, error) {
	where := ` WHERE tenant_id = $1 AND warehouse_id = $2`
	args := []any{tenantID, warehouseID}
	pos := 3
	if from != nil {
		where += fmt.Sprintf(" AND performed_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		where += fmt.Sprintf(" AND performed_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `SELECT ` + movementColumns + ` FROM inventory_movements` + where +
		fmt.Sprintf(" ORDER BY performed_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements by warehouse: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// SummarizeByPeriod agrega por tipo las sumas de cambios positivos y el valor
// absoluto de los negativos dentro del período. warehouseID vacío agrega
// sobre todas las bodegas del tenant.
func (r *MovementRepo) SummarizeByPeriod(ctx context.Context, tenantID, warehouseID string, from, to time.Time) ([]repository.MovementSummaryRow, error) {
	query := `
		SELECT type,
			COALESCE(SUM(quantity_change) FILTER (WHERE quantity_change > 0), 0),
			COALESCE(SUM(-quantity_change) FILTER (WHERE quantity_change < 0), 0)
		FROM inventory_movements
		WHERE tenant_id = $1 AND performed_at >= $2 AND performed_at <= $3`
	args := []any{tenantID, from, to}
	if warehouseID != "" {
		query += " AND warehouse_id = $4"
		args = append(args, warehouseID)
	}
	query += " GROUP BY type"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize movements: %w", err)
	}
	defer rows.Close()
	var result []repository.MovementSummaryRow
	for rows.Next() {
		var row repository.MovementSummaryRow
		if err := rows.Scan(&row.Type, &row.Positive, &row.Negative); err != nil {
			return nil, fmt.Errorf("scan movement summary: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
