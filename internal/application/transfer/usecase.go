package transfer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// TransferCoordinator es dueño de la máquina de estados del traslado entre
// bodegas y el único componente autorizado a emitir los pares
// TRANSFER_OUT/TRANSFER_IN del libro y los ajustes de ocupación asociados.
type TransferCoordinator struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	itemRepo      repository.InventoryItemRepository
	transferRepo  repository.TransferRepository
}

// NewTransferCoordinator construye el coordinador.
func NewTransferCoordinator(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	itemRepo repository.InventoryItemRepository,
	transferRepo repository.TransferRepository,
) *TransferCoordinator {
	return &TransferCoordinator{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		transferRepo:  transferRepo,
	}
}

// newTransferCode genera un código legible: TRF-YYYYMMDD-XXXXXX.
func newTransferCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("TRF-%s-%s", now.Format("20060102"), suffix)
}

// Create valida y registra un traslado en estado PENDING. La lista de
// líneas queda fija aquí. Un ítem no puede participar en dos traslados no
// terminales a la vez.
func (uc *TransferCoordinator) Create(ctx context.Context, tenantID, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.SourceWarehouseID == "" || in.TargetWarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceWarehouseID == in.TargetWarehouseID {
		return nil, domain.ErrInvalidInput
	}

	source, err := uc.warehouseRepo.GetByID(ctx, tenantID, in.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	target, err := uc.warehouseRepo.GetByID(ctx, tenantID, in.TargetWarehouseID)
	if err != nil {
		return nil, err
	}
	if source == nil || target == nil {
		return nil, domain.ErrNotFound
	}

	itemIDs := make([]string, 0, len(in.Items))
	for _, ti := range in.Items {
		if ti.InventoryItemID == "" || !ti.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(ctx, tenantID, ti.InventoryItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if item.WarehouseID != in.SourceWarehouseID {
			return nil, domain.ErrInvalidInput
		}
		if item.Quantity.LessThan(ti.Quantity) {
			return nil, domain.ErrInsufficientQuantity
		}
		itemIDs = append(itemIDs, ti.InventoryItemID)
	}

	busy, err := uc.transferRepo.HasActiveForItems(ctx, tenantID, itemIDs)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:                uuid.New().String(),
		TenantID:          tenantID,
		TransferCode:      newTransferCode(now),
		SourceWarehouseID: in.SourceWarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Status:            entity.TransferStatusPending,
		InitiatedBy:       userID,
		InitiatedAt:       now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, ti := range in.Items {
		t.Items = append(t.Items, entity.TransferItem{
			ID:              uuid.New().String(),
			TransferID:      t.ID,
			InventoryItemID: ti.InventoryItemID,
			Quantity:        ti.Quantity,
			Unit:            ti.Unit,
			SerialNumber:    ti.SerialNumber,
			Note:            ti.Note,
		})
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		_ repository.MovementRepository,
		_ repository.InventoryItemRepository,
		_ repository.LocationRepository,
		transferRepo repository.TransferRepository,
	) error {
		return transferRepo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// Start mueve el traslado de PENDING a IN_TRANSIT. La transición se decide
// sobre la fila bloqueada dentro de la transacción: dos llamadas
// concurrentes se serializan y solo la primera avanza.
func (uc *TransferCoordinator) Start(ctx context.Context, tenantID, transferID string) (*dto.TransferResponse, error) {
	var t *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.MovementRepository,
		_ repository.InventoryItemRepository,
		_ repository.LocationRepository,
		transferRepo repository.TransferRepository,
	) error {
		var err error
		t, err = transferRepo.GetForUpdate(ctx, tenantID, transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransferTransition(t.Status, entity.TransferStatusInTransit) {
			return domain.NewTransitionError("traslado", t.Status, entity.TransferStatusInTransit)
		}
		t.Status = entity.TransferStatusInTransit
		t.UpdatedAt = time.Now()
		return transferRepo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// Cancel cancela un traslado PENDING con motivo obligatorio. Un traslado
// IN_TRANSIT no se cancela: la mercancía ya va en camino. Igual que Start,
// la transición se decide sobre la fila bloqueada.
func (uc *TransferCoordinator) Cancel(ctx context.Context, tenantID, transferID, reason string) (*dto.TransferResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var t *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.MovementRepository,
		_ repository.InventoryItemRepository,
		_ repository.LocationRepository,
		transferRepo repository.TransferRepository,
	) error {
		var err error
		t, err = transferRepo.GetForUpdate(ctx, tenantID, transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransferTransition(t.Status, entity.TransferStatusCancelled) {
			return domain.NewTransitionError("traslado", t.Status, entity.TransferStatusCancelled)
		}
		t.Status = entity.TransferStatusCancelled
		t.CancellationReason = reason
		t.UpdatedAt = time.Now()
		return transferRepo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// Complete cierra el traslado (solo desde IN_TRANSIT) en una sola
// transacción: por cada línea bloquea el ítem origen, verifica cantidad,
// escribe el par TRANSFER_OUT/TRANSFER_IN, mueve la cantidad al ítem
// destino (creándolo si no existe) y ajusta la ocupación en ambos extremos
// cuando hay códigos de ubicación. Si la cantidad recibida difiere de la
// enviada, la discrepancia queda registrada en el motivo de la entrada,
// nunca conciliada en silencio. El chequeo IN_TRANSIT se hace sobre la
// cabecera bloqueada: un segundo Complete concurrente ve COMPLETED y
// falla sin duplicar el par del libro ni descontar dos veces.
func (uc *TransferCoordinator) Complete(ctx context.Context, tenantID, transferID, completer string, overrides map[string]decimal.Decimal) (*dto.TransferResponse, error) {
	for _, ov := range overrides {
		if ov.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var t *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.InventoryItemRepository,
		locRepo repository.LocationRepository,
		transferRepo repository.TransferRepository,
	) error {
		var err error
		t, err = transferRepo.GetForUpdate(ctx, tenantID, transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransferTransition(t.Status, entity.TransferStatusCompleted) {
			return domain.NewTransitionError("traslado", t.Status, entity.TransferStatusCompleted)
		}

		var movements []*entity.Movement
		for _, ti := range t.Items {
			src, err := itemRepo.GetForUpdate(ctx, tenantID, ti.InventoryItemID)
			if err != nil {
				return err
			}
			if src == nil {
				return domain.ErrNotFound
			}
			shipped := ti.Quantity
			if src.Quantity.LessThan(shipped) {
				return domain.ErrInsufficientQuantity
			}

			received := shipped
			reason := fmt.Sprintf("traslado %s", t.TransferCode)
			if ov, ok := overrides[ti.InventoryItemID]; ok {
				received = ov
				if !received.Equal(shipped) {
					reason = fmt.Sprintf("traslado %s: enviadas %s, recibidas %s",
						t.TransferCode, shipped.String(), received.String())
				}
			}

			dst, err := itemRepo.GetByProductAndWarehouseForUpdate(ctx, tenantID, t.TargetWarehouseID, src.ProductID)
			if err != nil {
				return err
			}

			// La ocupación cuenta unidades enteras: un ítem ubicado no se
			// traslada en cantidades fraccionarias, se rechaza en vez de
			// truncar y dejar la ocupación desfasada de la cantidad.
			if src.LocationCode != "" && !shipped.IsInteger() {
				return domain.ErrInvalidInput
			}
			if dst != nil && dst.LocationCode != "" && !received.IsInteger() {
				return domain.ErrInvalidInput
			}

			outPrev := src.Quantity
			outNew := outPrev.Sub(shipped)
			movements = append(movements, &entity.Movement{
				ID:               uuid.New().String(),
				TenantID:         tenantID,
				InventoryItemID:  src.ID,
				WarehouseID:      src.WarehouseID,
				ProductID:        src.ProductID,
				Type:             entity.MovementTypeTransferOut,
				QuantityChange:   shipped.Neg(),
				PreviousQuantity: outPrev,
				NewQuantity:      outNew,
				LocationBefore:   src.LocationCode,
				Reason:           reason,
				ReferenceID:      t.ID,
				ReferenceType:    "TRANSFER",
				PerformedBy:      completer,
				PerformedAt:      now,
				CreatedAt:        now,
			})
			src.Quantity = outNew
			src.UpdatedAt = now
			if err := itemRepo.Update(ctx, src); err != nil {
				return err
			}

			if dst == nil {
				dst = &entity.InventoryItem{
					ID:          uuid.New().String(),
					TenantID:    tenantID,
					WarehouseID: t.TargetWarehouseID,
					ProductID:   src.ProductID,
					ProductName: src.ProductName,
					Quantity:    decimal.Zero,
					Status:      entity.ItemStatusAvailable,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := itemRepo.Create(ctx, dst); err != nil {
					return err
				}
			}
			inPrev := dst.Quantity
			inNew := inPrev.Add(received)
			movements = append(movements, &entity.Movement{
				ID:               uuid.New().String(),
				TenantID:         tenantID,
				InventoryItemID:  dst.ID,
				WarehouseID:      dst.WarehouseID,
				ProductID:        dst.ProductID,
				Type:             entity.MovementTypeTransferIn,
				QuantityChange:   received,
				PreviousQuantity: inPrev,
				NewQuantity:      inNew,
				LocationAfter:    dst.LocationCode,
				Reason:           reason,
				ReferenceID:      t.ID,
				ReferenceType:    "TRANSFER",
				PerformedBy:      completer,
				PerformedAt:      now,
				CreatedAt:        now,
			})
			dst.Quantity = inNew
			dst.UpdatedAt = now
			if err := itemRepo.Update(ctx, dst); err != nil {
				return err
			}

			if src.LocationCode != "" {
				if err := adjustLocationOccupancy(ctx, locRepo, tenantID, src.WarehouseID, src.LocationCode, -int(shipped.IntPart()), now); err != nil {
					return err
				}
			}
			if dst.LocationCode != "" {
				if err := adjustLocationOccupancy(ctx, locRepo, tenantID, dst.WarehouseID, dst.LocationCode, int(received.IntPart()), now); err != nil {
					return err
				}
			}
		}

		if err := movRepo.CreateBatch(ctx, movements); err != nil {
			return err
		}

		t.Status = entity.TransferStatusCompleted
		t.CompletedBy = completer
		t.CompletedAt = &now
		t.UpdatedAt = now
		return transferRepo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// adjustLocationOccupancy aplica el delta con bloqueo de fila dentro de la
// transacción del traslado.
func adjustLocationOccupancy(ctx context.Context, locRepo repository.LocationRepository, tenantID, warehouseID, code string, delta int, now time.Time) error {
	loc, err := locRepo.GetByCodeForUpdate(ctx, tenantID, warehouseID, code)
	if err != nil {
		return err
	}
	if loc == nil || loc.IsDeleted() {
		return domain.ErrNotFound
	}
	if err := loc.ApplyOccupancyDelta(delta); err != nil {
		return err
	}
	loc.UpdatedAt = now
	return locRepo.Update(ctx, loc)
}

// GetByID devuelve el traslado con sus líneas.
func (uc *TransferCoordinator) GetByID(ctx context.Context, tenantID, transferID string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(ctx, tenantID, transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(t), nil
}

// List lista traslados con filtro opcional de estado.
func (uc *TransferCoordinator) List(ctx context.Context, tenantID, status string, page dto.PageRequest) (*dto.TransferListResponse, error) {
	page.Normalize(dto.MaxPageLimit)
	list, total, err := uc.transferRepo.List(ctx, tenantID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:                 t.ID,
		TransferCode:       t.TransferCode,
		SourceWarehouseID:  t.SourceWarehouseID,
		TargetWarehouseID:  t.TargetWarehouseID,
		Status:             t.Status,
		InitiatedBy:        t.InitiatedBy,
		InitiatedAt:        t.InitiatedAt,
		CompletedBy:        t.CompletedBy,
		CompletedAt:        t.CompletedAt,
		CancellationReason: t.CancellationReason,
	}
	for _, ti := range t.Items {
		resp.Items = append(resp.Items, dto.TransferItemResponse{
			ID:              ti.ID,
			InventoryItemID: ti.InventoryItemID,
			Quantity:        ti.Quantity,
			Unit:            ti.Unit,
			SerialNumber:    ti.SerialNumber,
			Note:            ti.Note,
		})
	}
	return resp
}
