package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// Rango permitido de snooze en días. El borde del API ya lo valida, pero el
// motor lo revalida porque el invariante es suyo.
const (
	minSnoozeDays = 1
	maxSnoozeDays = 30
)

// AlertEngine deriva y mantiene alertas de stock a partir de los resúmenes
// del agregador, y es dueño del ciclo de vida ACTIVE → ACKNOWLEDGED/SNOOZED
// → RESOLVED. No corre relojes: la reevaluación la dispara un scheduler
// externo llamando Evaluate periódicamente.
type AlertEngine struct {
	alertRepo repository.AlertRepository
}

// NewAlertEngine construye el motor de alertas.
func NewAlertEngine(alertRepo repository.AlertRepository) *AlertEngine {
	return &AlertEngine{alertRepo: alertRepo}
}

// alertTypeFor mapea clasificación → tipo de alerta.
func alertTypeFor(classification string) string {
	if classification == entity.StockLevelOutOfStock {
		return entity.AlertTypeOutOfStock
	}
	return entity.AlertTypeLowStock
}

// priorityFor mapea clasificación → prioridad.
func priorityFor(classification string) string {
	switch classification {
	case entity.StockLevelOutOfStock:
		return entity.AlertPriorityCritical
	case entity.StockLevelCritical:
		return entity.AlertPriorityHigh
	default:
		return entity.AlertPriorityMedium
	}
}

// Evaluate crea o actualiza la alerta derivada del resumen. A lo sumo una
// alerta ACTIVE por (producto, bodega, tipo): si ya existe se actualizan
// cantidad y déficit en sitio, nunca se duplica. Clasificación OK no
// produce alerta.
func (uc *AlertEngine) Evaluate(ctx context.Context, tenantID string, sum *entity.StockSummary) (*dto.AlertResponse, error) {
	if sum == nil {
		return nil, domain.ErrInvalidInput
	}
	if sum.Classification == entity.StockLevelOK {
		return nil, nil
	}
	alertType := alertTypeFor(sum.Classification)
	priority := priorityFor(sum.Classification)

	var minLevel decimal.Decimal
	var deficit *decimal.Decimal
	if sum.MinStockLevel != nil {
		minLevel = *sum.MinStockLevel
		d := minLevel.Sub(sum.Available)
		if d.IsPositive() {
			deficit = &d
		}
	}

	now := time.Now()
	existing, err := uc.alertRepo.GetActive(ctx, tenantID, sum.ProductID, sum.WarehouseID, alertType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.CurrentQuantity = sum.Available
		existing.MinimumLevel = minLevel
		existing.Deficit = deficit
		existing.Priority = priority
		existing.UpdatedAt = now
		if err := uc.alertRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return toAlertResponse(existing), nil
	}

	a := &entity.StockAlert{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		ProductID:       sum.ProductID,
		WarehouseID:     sum.WarehouseID,
		Type:            alertType,
		Priority:        priority,
		Status:          entity.AlertStatusActive,
		CurrentQuantity: sum.Available,
		MinimumLevel:    minLevel,
		Deficit:         deficit,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.alertRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAlertResponse(a), nil
}

// EvaluateAll evalúa todos los resúmenes bajo umbral y devuelve las alertas
// vigentes tras la pasada.
func (uc *AlertEngine) EvaluateAll(ctx context.Context, tenantID string, sums []*entity.StockSummary) ([]dto.AlertResponse, error) {
	var out []dto.AlertResponse
	for _, s := range sums {
		r, err := uc.Evaluate(ctx, tenantID, s)
		if err != nil {
			return nil, err
		}
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// Acknowledge marca la alerta como reconocida. Solo desde ACTIVE o SNOOZED.
func (uc *AlertEngine) Acknowledge(ctx context.Context, tenantID, alertID, userID, note string) (*dto.AlertResponse, error) {
	a, err := uc.alertRepo.GetByID(ctx, tenantID, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanAlertTransition(a.Status, entity.AlertStatusAcknowledged) {
		return nil, domain.NewTransitionError("alerta", a.Status, entity.AlertStatusAcknowledged)
	}
	now := time.Now()
	a.Status = entity.AlertStatusAcknowledged
	a.AcknowledgedBy = userID
	a.AcknowledgedAt = &now
	if note != "" {
		a.Note = note
	}
	a.UpdatedAt = now
	if err := uc.alertRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAlertResponse(a), nil
}

// Snooze pospone la alerta entre 1 y 30 días. Solo desde ACTIVE o
// ACKNOWLEDGED. La expiración la evalúa el caller releyendo SnoozedUntil.
func (uc *AlertEngine) Snooze(ctx context.Context, tenantID, alertID string, days int, note string) (*dto.AlertResponse, error) {
	if days < minSnoozeDays || days > maxSnoozeDays {
		return nil, domain.ErrInvalidInput
	}
	a, err := uc.alertRepo.GetByID(ctx, tenantID, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanAlertTransition(a.Status, entity.AlertStatusSnoozed) {
		return nil, domain.NewTransitionError("alerta", a.Status, entity.AlertStatusSnoozed)
	}
	now := time.Now()
	until := now.AddDate(0, 0, days)
	a.Status = entity.AlertStatusSnoozed
	a.SnoozedUntil = &until
	if note != "" {
		a.Note = note
	}
	a.UpdatedAt = now
	if err := uc.alertRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAlertResponse(a), nil
}

// Resolve cierra la alerta desde cualquier estado no terminal (override
// manual, p. ej. stock repuesto).
func (uc *AlertEngine) Resolve(ctx context.Context, tenantID, alertID, note string) (*dto.AlertResponse, error) {
	a, err := uc.alertRepo.GetByID(ctx, tenantID, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanAlertTransition(a.Status, entity.AlertStatusResolved) {
		return nil, domain.NewTransitionError("alerta", a.Status, entity.AlertStatusResolved)
	}
	now := time.Now()
	a.Status = entity.AlertStatusResolved
	a.ResolvedAt = &now
	if note != "" {
		a.Note = note
	}
	a.UpdatedAt = now
	if err := uc.alertRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAlertResponse(a), nil
}

// ResolveByProduct resuelve en bloque las alertas ACTIVE del producto
// (opcionalmente por bodega) y devuelve cuántas resolvió.
func (uc *AlertEngine) ResolveByProduct(ctx context.Context, tenantID, productID, warehouseID string) (int, error) {
	if productID == "" {
		return 0, domain.ErrInvalidInput
	}
	return uc.alertRepo.ResolveActiveByProduct(ctx, tenantID, productID, warehouseID, time.Now())
}

// List lista alertas con filtros de estado y bodega.
func (uc *AlertEngine) List(ctx context.Context, tenantID, status, warehouseID string, page dto.PageRequest) (*dto.AlertListResponse, error) {
	page.Normalize(dto.MaxPageLimit)
	list, total, err := uc.alertRepo.List(ctx, tenantID, status, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toAlertResponse(a *entity.StockAlert) *dto.AlertResponse {
	return &dto.AlertResponse{
		ID:              a.ID,
		ProductID:       a.ProductID,
		WarehouseID:     a.WarehouseID,
		Type:            a.Type,
		Priority:        a.Priority,
		Status:          a.Status,
		CurrentQuantity: a.CurrentQuantity,
		MinimumLevel:    a.MinimumLevel,
		Deficit:         a.Deficit,
		SnoozedUntil:    a.SnoozedUntil,
		AcknowledgedBy:  a.AcknowledgedBy,
		AcknowledgedAt:  a.AcknowledgedAt,
		Note:            a.Note,
		CreatedAt:       a.CreatedAt,
	}
}
