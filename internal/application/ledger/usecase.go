package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// LedgerUseCase registra y consulta el libro de movimientos, la única
// autoridad sobre la procedencia de cantidades. Cada registro bloquea la
// fila del ítem (SELECT FOR UPDATE), verifica la continuidad contra la
// cantidad vigente y actualiza el estado actual en la misma transacción.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo}
}

// validateInput verifica tipo, aritmética de cantidades y la política de
// que todo decremento de stock lleve motivo.
func validateInput(in dto.RecordMovementRequest) error {
	if in.InventoryItemID == "" || !entity.IsMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if !in.PreviousQuantity.Add(in.QuantityChange).Equal(in.NewQuantity) {
		return domain.ErrInvalidInput
	}
	if in.QuantityChange.IsNegative() && in.Reason == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// Record valida y anexa una entrada al libro, actualizando la cantidad del
// ítem en la misma transacción. PerformedAt se asigna si viene vacío.
func (uc *LedgerUseCase) Record(ctx context.Context, tenantID, userID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var resp *dto.MovementResponse
	err := uc.txRunner.RunLedger(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
	) error {
		m, err := applyMovement(ctx, movRepo, itemRepo, tenantID, userID, in)
		if err != nil {
			return err
		}
		resp = toMovementResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RecordBatch anexa todas las entradas o ninguna. Lo usa el cierre de
// traslados para escribir juntos los pares TRANSFER_OUT/TRANSFER_IN.
func (uc *LedgerUseCase) RecordBatch(ctx context.Context, tenantID, userID string, ins []dto.RecordMovementRequest) ([]dto.MovementResponse, error) {
	if len(ins) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, in := range ins {
		if err := validateInput(in); err != nil {
			return nil, err
		}
	}
	var resps []dto.MovementResponse
	err := uc.txRunner.RunLedger(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
	) error {
		for _, in := range ins {
			m, err := applyMovement(ctx, movRepo, itemRepo, tenantID, userID, in)
			if err != nil {
				return err
			}
			resps = append(resps, *toMovementResponse(m))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resps, nil
}

// applyMovement bloquea el ítem, exige que PreviousQuantity coincida con la
// cantidad vigente (continuidad del libro), inserta la entrada y actualiza
// la fila de estado actual.
func applyMovement(
	ctx context.Context,
	movRepo repository.MovementRepository,
	itemRepo repository.InventoryItemRepository,
	tenantID, userID string,
	in dto.RecordMovementRequest,
) (*entity.Movement, error) {
	item, err := itemRepo.GetForUpdate(ctx, tenantID, in.InventoryItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !item.Quantity.Equal(in.PreviousQuantity) {
		return nil, domain.ErrConflict
	}
	if in.NewQuantity.IsNegative() {
		return nil, domain.ErrInsufficientQuantity
	}

	now := time.Now()
	performedAt := now
	if in.PerformedAt != nil && !in.PerformedAt.IsZero() {
		performedAt = *in.PerformedAt
	}
	m := &entity.Movement{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		InventoryItemID:  item.ID,
		WarehouseID:      item.WarehouseID,
		ProductID:        item.ProductID,
		Type:             in.Type,
		QuantityChange:   in.QuantityChange,
		PreviousQuantity: in.PreviousQuantity,
		NewQuantity:      in.NewQuantity,
		LocationBefore:   in.LocationBefore,
		LocationAfter:    in.LocationAfter,
		Reason:           in.Reason,
		ReferenceID:      in.ReferenceID,
		ReferenceType:    in.ReferenceType,
		PerformedBy:      userID,
		PerformedAt:      performedAt,
		CreatedAt:        now,
	}
	if err := movRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	item.Quantity = in.NewQuantity
	item.UpdatedAt = now
	if err := itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return m, nil
}

// History devuelve el historial del ítem en orden cronológico ascendente.
// Ese orden es contractual: quien reconstruya la cantidad por replay
// depende de él.
func (uc *LedgerUseCase) History(ctx context.Context, tenantID, itemID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.Normalize(dto.MaxHistoryLimit)
	list, total, err := uc.movRepo.ListByItem(ctx, tenantID, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListByWarehouse lista movimientos de una bodega en un rango de fechas.
func (uc *LedgerUseCase) ListByWarehouse(ctx context.Context, tenantID, warehouseID string, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.Normalize(dto.MaxPageLimit)
	list, total, err := uc.movRepo.ListByWarehouse(ctx, tenantID, warehouseID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Summarize agrega las cantidades del período por categoría física. El tipo
// de negocio lo aporta siempre el caller al registrar: aquí solo ADJUSTMENT
// se divide por signo, porque un ajuste es genuinamente bidireccional.
func (uc *LedgerUseCase) Summarize(ctx context.Context, tenantID, warehouseID string, from, to time.Time) (*dto.MovementSummaryResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.movRepo.SummarizeByPeriod(ctx, tenantID, warehouseID, from, to)
	if err != nil {
		return nil, err
	}
	sum := &dto.MovementSummaryResponse{
		WarehouseID: warehouseID,
		PeriodStart: from,
		PeriodEnd:   to,
	}
	for _, r := range rows {
		switch r.Type {
		case entity.MovementTypeReceipt, entity.MovementTypeReturn:
			sum.Receipts = sum.Receipts.Add(r.Positive)
		case entity.MovementTypeIssue:
			sum.Issues = sum.Issues.Add(r.Negative)
		case entity.MovementTypeTransferOut:
			sum.TransfersOut = sum.TransfersOut.Add(r.Negative)
		case entity.MovementTypeTransferIn:
			sum.TransfersIn = sum.TransfersIn.Add(r.Positive)
		case entity.MovementTypeAdjustment:
			sum.PositiveAdjustments = sum.PositiveAdjustments.Add(r.Positive)
			sum.NegativeAdjustments = sum.NegativeAdjustments.Add(r.Negative)
		case entity.MovementTypeScrap:
			sum.Scrapped = sum.Scrapped.Add(r.Negative)
		}
	}
	sum.NetChange = sum.Receipts.
		Add(sum.TransfersIn).
		Add(sum.PositiveAdjustments).
		Sub(sum.Issues).
		Sub(sum.TransfersOut).
		Sub(sum.NegativeAdjustments).
		Sub(sum.Scrapped)
	return sum, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:               m.ID,
		InventoryItemID:  m.InventoryItemID,
		WarehouseID:      m.WarehouseID,
		ProductID:        m.ProductID,
		Type:             m.Type,
		QuantityChange:   m.QuantityChange,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		LocationBefore:   m.LocationBefore,
		LocationAfter:    m.LocationAfter,
		Reason:           m.Reason,
		ReferenceID:      m.ReferenceID,
		ReferenceType:    m.ReferenceType,
		PerformedBy:      m.PerformedBy,
		PerformedAt:      m.PerformedAt,
	}
}
