package report

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/ledger"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// MovementReportData datos para renderizar el kardex del período.
type MovementReportData struct {
	WarehouseName string
	WarehouseCode string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Summary       dto.MovementSummaryResponse
	Movements     []dto.MovementResponse
}

// ReportGenerator puerto de renderizado del kardex (PDF).
type ReportGenerator interface {
	GenerateMovementReport(data MovementReportData) ([]byte, error)
}

// MovementReportUseCase arma el kardex de una bodega: resumen del período
// más los movimientos recientes, renderizado por el generador inyectado.
type MovementReportUseCase struct {
	ledgerUC      *ledger.LedgerUseCase
	warehouseRepo repository.WarehouseRepository
	generator     ReportGenerator
}

// NewMovementReportUseCase construye el caso de uso.
func NewMovementReportUseCase(
	ledgerUC *ledger.LedgerUseCase,
	warehouseRepo repository.WarehouseRepository,
	generator ReportGenerator,
) *MovementReportUseCase {
	return &MovementReportUseCase{ledgerUC: ledgerUC, warehouseRepo: warehouseRepo, generator: generator}
}

// Generate produce el PDF del kardex para la bodega y el período.
func (uc *MovementReportUseCase) Generate(ctx context.Context, tenantID, warehouseID string, from, to time.Time) ([]byte, error) {
	if warehouseID == "" || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.warehouseRepo.GetByID(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	summary, err := uc.ledgerUC.Summarize(ctx, tenantID, warehouseID, from, to)
	if err != nil {
		return nil, err
	}
	movements, err := uc.ledgerUC.ListByWarehouse(ctx, tenantID, warehouseID, &from, &to, dto.PageRequest{Limit: dto.MaxHistoryLimit})
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateMovementReport(MovementReportData{
		WarehouseName: w.Name,
		WarehouseCode: w.Code,
		PeriodStart:   from,
		PeriodEnd:     to,
		Summary:       *summary,
		Movements:     movements.Items,
	})
}
