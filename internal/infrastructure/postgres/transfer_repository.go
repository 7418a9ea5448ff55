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

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `id, tenant_id, transfer_code, source_warehouse_id, target_warehouse_id, status, initiated_by, initiated_at, completed_by, completed_at, cancellation_reason, created_at, updated_at`

// TransferRepo implementación sobre PostgreSQL (usable con pool o tx).
// La cabecera va en transfers y las líneas en transfer_items; las líneas
// quedan fijas al crear.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var completedBy, cancellationReason *string
	err := row.Scan(
		&t.ID, &t.TenantID, &t.TransferCode, &t.SourceWarehouseID, &t.TargetWarehouseID,
		&t.Status, &t.InitiatedBy, &t.InitiatedAt, &completedBy, &t.CompletedAt,
		&cancellationReason, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if completedBy != nil {
		t.CompletedBy = *completedBy
	}
	if cancellationReason != nil {
		t.CancellationReason = *cancellationReason
	}
	return &t, nil
}

// Create inserta la cabecera y las líneas del traslado.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	headerQuery := `
		INSERT INTO transfers (id, tenant_id, transfer_code, source_warehouse_id, target_warehouse_id, status, initiated_by, initiated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, headerQuery,
		t.ID, t.TenantID, t.TransferCode, t.SourceWarehouseID, t.TargetWarehouseID,
		t.Status, t.InitiatedBy, t.InitiatedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transfer: %w", err)
	}

	itemQuery := `
		INSERT INTO transfer_items (id, transfer_id, inventory_item_id, quantity, unit, serial_number, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	batch := &pgx.Batch{}
	for i := range t.Items {
		it := &t.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.TransferID = t.ID
		batch.Queue(itemQuery, it.ID, it.TransferID, it.InventoryItemID, it.Quantity, it.Unit, it.SerialNumber, it.Note)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range t.Items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("create transfer items: %w", err)
		}
	}
	return nil
}

func (r *TransferRepo) loadItems(ctx context.Context, transferID string) ([]entity.TransferItem, error) {
	query := `
		SELECT id, transfer_id, inventory_item_id, quantity, unit, serial_number, note
		FROM transfer_items WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	var items []entity.TransferItem
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.InventoryItemID, &it.Quantity, &it.Unit, &it.SerialNumber, &it.Note); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID obtiene el traslado con sus líneas, o nil si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE tenant_id = $1 AND id = $2`
	t, err := scanTransfer(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	items, err := r.loadItems(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return t, nil
}

// GetForUpdate obtiene el traslado con sus líneas bloqueando la fila de
// cabecera (SELECT FOR UPDATE). Dos cierres concurrentes se serializan
// aquí: el segundo ve el estado que dejó el primero.
func (r *TransferRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	t, err := scanTransfer(r.q.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer for update: %w", err)
	}
	items, err := r.loadItems(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return t, nil
}

// List lista traslados del tenant, opcionalmente por estado, los más
// recientes primero. Incluye las líneas de cada traslado.
func (r *TransferRepo) List(ctx context.Context, tenantID, status string, limit, offset int) ([]*entity.Transfer, int, error) {
	where := ` WHERE tenant_id = $1`
	args := []any{tenantID}
	pos := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transfers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transfers: %w", err)
	}

	query := `SELECT ` + transferColumns + ` FROM transfers` + where +
		fmt.Sprintf(" ORDER BY initiated_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, t := range list {
		items, err := r.loadItems(ctx, t.ID)
		if err != nil {
			return nil, 0, err
		}
		t.Items = items
	}
	return list, total, nil
}

// Update persiste los campos mutables de la cabecera.
func (r *TransferRepo) Update(ctx context.Context, t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $1, completed_by = $2, completed_at = $3, cancellation_reason = $4, updated_at = $5
		WHERE tenant_id = $6 AND id = $7`
	var completedBy *string
	if t.CompletedBy != "" {
		completedBy = &t.CompletedBy
	}
	var cancellationReason *string
	if t.CancellationReason != "" {
		cancellationReason = &t.CancellationReason
	}
	tag, err := r.q.Exec(ctx, query,
		t.Status, completedBy, t.CompletedAt, cancellationReason, t.UpdatedAt, t.TenantID, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasActiveForItems indica si algún ítem participa ya en un traslado
// PENDING o IN_TRANSIT.
func (r *TransferRepo) HasActiveForItems(ctx context.Context, tenantID string, itemIDs []string) (bool, error) {
	if len(itemIDs) == 0 {
		return false, nil
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transfer_items ti
			JOIN transfers t ON t.id = ti.transfer_id
			WHERE t.tenant_id = $1 AND t.status IN ($2, $3) AND ti.inventory_item_id = ANY($4)
		)`
	var exists bool
	err := r.q.QueryRow(ctx, query, tenantID, entity.TransferStatusPending, entity.TransferStatusInTransit, itemIDs).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has active transfers for items: %w", err)
	}
	return exists, nil
}
