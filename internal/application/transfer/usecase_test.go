package transfer_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/transfer"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, _, id string) (*entity.Warehouse, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) GetByCode(_ context.Context, _, code string) (*entity.Warehouse, error) {
	for _, w := range r.byID {
		if w.Code == code {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Warehouse, int, error) {
	var out []*entity.Warehouse
	for _, w := range r.byID {
		cp := *w
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeWarehouseRepo) SetDefault(_ context.Context, _, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	for _, w := range r.byID {
		w.IsDefault = w.ID == id
	}
	return nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, _, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeItemRepo struct {
	byID map[string]*entity.InventoryItem
}

var _ repository.InventoryItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.byID[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, _, id string) (*entity.InventoryItem, error) {
	it, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *fakeItemRepo) GetByProductAndWarehouseForUpdate(_ context.Context, _, warehouseID, productID string) (*entity.InventoryItem, error) {
	for _, it := range r.byID {
		if it.WarehouseID == warehouseID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) ListByProduct(_ context.Context, _, productID, warehouseID string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.byID {
		if it.ProductID != productID {
			continue
		}
		if warehouseID != "" && it.WarehouseID != warehouseID {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) ListProductIDs(_ context.Context, _, _ string) ([]string, error) {
	return nil, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.byID[item.ID] = &cp
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) CreateBatch(ctx context.Context, ms []*entity.Movement) error {
	for _, m := range ms {
		if err := r.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, _, _ string) (*entity.Movement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByItem(_ context.Context, _, _ string, _, _ int) ([]*entity.Movement, int, error) {
	return nil, 0, nil
}

func (r *fakeMovementRepo) ListByWarehouse(_ context.Context, _, _ string, _, _ *time.Time, _, _ int) ([]*entity.Movement, int, error) {
	return nil, 0, nil
}

func (r *fakeMovementRepo) SummarizeByPeriod(_ context.Context, _, _ string, _, _ time.Time) ([]repository.MovementSummaryRow, error) {
	return nil, nil
}

type fakeLocationRepo struct {
	byCode map[string]*entity.Location // clave: warehouseID + "/" + code
}

var _ repository.LocationRepository = (*fakeLocationRepo)(nil)

func locKey(warehouseID, code string) string { return warehouseID + "/" + code }

func (r *fakeLocationRepo) CreateBatch(_ context.Context, locations []*entity.Location) error {
	for _, l := range locations {
		cp := *l
		r.byCode[locKey(l.WarehouseID, l.Code)] = &cp
	}
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, _, id string) (*entity.Location, error) {
	for _, l := range r.byCode {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetByCode(_ context.Context, _, warehouseID, code string) (*entity.Location, error) {
	l, ok := r.byCode[locKey(warehouseID, code)]
	if !ok || l.IsDeleted() {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLocationRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Location, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *fakeLocationRepo) GetByCodeForUpdate(ctx context.Context, tenantID, warehouseID, code string) (*entity.Location, error) {
	return r.GetByCode(ctx, tenantID, warehouseID, code)
}

func (r *fakeLocationRepo) ListByWarehouse(_ context.Context, _, _ string, _, _ int) ([]*entity.Location, int, error) {
	return nil, 0, nil
}

func (r *fakeLocationRepo) ListCodesByWarehouse(_ context.Context, _, _ string) ([]string, error) {
	return nil, nil
}

func (r *fakeLocationRepo) HasLocations(_ context.Context, _, _ string) (bool, error) {
	return len(r.byCode) > 0, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, l *entity.Location) error {
	cp := *l
	r.byCode[locKey(l.WarehouseID, l.Code)] = &cp
	return nil
}

func (r *fakeLocationRepo) SoftDelete(_ context.Context, _, _ string, _ time.Time) error {
	return nil
}

func (r *fakeLocationRepo) SoftDeleteByWarehouse(_ context.Context, _, _ string, _ time.Time) (int, error) {
	return 0, nil
}

type fakeTransferRepo struct {
	byID map[string]*entity.Transfer
}

var _ repository.TransferRepository = (*fakeTransferRepo)(nil)

func (r *fakeTransferRepo) Create(_ context.Context, t *entity.Transfer) error {
	cp := *t
	cp.Items = append([]entity.TransferItem(nil), t.Items...)
	r.byID[t.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(_ context.Context, _, id string) (*entity.Transfer, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Items = append([]entity.TransferItem(nil), t.Items...)
	return &cp, nil
}

func (r *fakeTransferRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *fakeTransferRepo) List(_ context.Context, _, status string, _, _ int) ([]*entity.Transfer, int, error) {
	var out []*entity.Transfer
	for _, t := range r.byID {
		if status != "" && t.Status != status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeTransferRepo) Update(_ context.Context, t *entity.Transfer) error {
	cur, ok := r.byID[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *t
	cp.Items = cur.Items
	r.byID[t.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) HasActiveForItems(_ context.Context, _ string, itemIDs []string) (bool, error) {
	wanted := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}
	for _, t := range r.byID {
		if t.Status != entity.TransferStatusPending && t.Status != entity.TransferStatusInTransit {
			continue
		}
		for _, ti := range t.Items {
			if _, ok := wanted[ti.InventoryItemID]; ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// fakeTxRunner serializa las transacciones con un mutex, igual que lo hace
// el bloqueo de fila de la cabecera en la base real: la segunda transacción
// no arranca hasta que la primera confirmó.
type fakeTxRunner struct {
	mu           sync.Mutex
	movRepo      *fakeMovementRepo
	itemRepo     *fakeItemRepo
	locRepo      *fakeLocationRepo
	transferRepo *fakeTransferRepo
}

var _ transfer.TxRunner = (*fakeTxRunner)(nil)

func (tx *fakeTxRunner) RunTransfer(ctx context.Context, fn func(
	repository.MovementRepository,
	repository.InventoryItemRepository,
	repository.LocationRepository,
	repository.TransferRepository,
) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(tx.movRepo, tx.itemRepo, tx.locRepo, tx.transferRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenant = "tenant-1"
	testUser   = "user-1"
	sourceWH   = "wh-origen"
	targetWH   = "wh-destino"
	srcItemID  = "item-src"
	productID  = "prod-1"
)

type harness struct {
	uc            *transfer.TransferCoordinator
	warehouseRepo *fakeWarehouseRepo
	itemRepo      *fakeItemRepo
	movRepo       *fakeMovementRepo
	locRepo       *fakeLocationRepo
	transferRepo  *fakeTransferRepo
}

func newHarness() *harness {
	h := &harness{
		warehouseRepo: &fakeWarehouseRepo{byID: make(map[string]*entity.Warehouse)},
		itemRepo:      &fakeItemRepo{byID: make(map[string]*entity.InventoryItem)},
		movRepo:       &fakeMovementRepo{},
		locRepo:       &fakeLocationRepo{byCode: make(map[string]*entity.Location)},
		transferRepo:  &fakeTransferRepo{byID: make(map[string]*entity.Transfer)},
	}
	h.warehouseRepo.byID[sourceWH] = &entity.Warehouse{ID: sourceWH, TenantID: testTenant, Code: "BOG", Status: entity.WarehouseStatusActive}
	h.warehouseRepo.byID[targetWH] = &entity.Warehouse{ID: targetWH, TenantID: testTenant, Code: "MED", Status: entity.WarehouseStatusActive}
	h.itemRepo.byID[srcItemID] = &entity.InventoryItem{
		ID:          srcItemID,
		TenantID:    testTenant,
		WarehouseID: sourceWH,
		ProductID:   productID,
		ProductName: "Taladro",
		Quantity:    decimal.NewFromInt(10),
		Status:      entity.ItemStatusAvailable,
	}
	txRunner := &fakeTxRunner{
		movRepo:      h.movRepo,
		itemRepo:     h.itemRepo,
		locRepo:      h.locRepo,
		transferRepo: h.transferRepo,
	}
	h.uc = transfer.NewTransferCoordinator(txRunner, h.warehouseRepo, h.itemRepo, h.transferRepo)
	return h
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func createRequest(qty int64) dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		SourceWarehouseID: sourceWH,
		TargetWarehouseID: targetWH,
		Items: []dto.TransferItemRequest{
			{InventoryItemID: srcItemID, Quantity: dec(qty), Unit: "und"},
		},
	}
}

func createTransfer(t *testing.T, h *harness, qty int64) *dto.TransferResponse {
	t.Helper()
	resp, err := h.uc.Create(context.Background(), testTenant, testUser, createRequest(qty))
	require.NoError(t, err)
	return resp
}

func startTransfer(t *testing.T, h *harness, id string) {
	t.Helper()
	_, err := h.uc.Start(context.Background(), testTenant, id)
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_QuedaPendingConCodigo(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 4)

	assert.Equal(t, entity.TransferStatusPending, resp.Status)
	assert.Regexp(t, `^TRF-\d{8}-[0-9A-F]{6}$`, resp.TransferCode)
	assert.Equal(t, testUser, resp.InitiatedBy)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Quantity.Equal(dec(4)))
}

func TestCreate_MismaBodega(t *testing.T) {
	h := newHarness()
	in := createRequest(4)
	in.TargetWarehouseID = sourceWH
	_, err := h.uc.Create(context.Background(), testTenant, testUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_SinLineas(t *testing.T) {
	h := newHarness()
	in := createRequest(4)
	in.Items = nil
	_, err := h.uc.Create(context.Background(), testTenant, testUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CantidadNoPositiva(t *testing.T) {
	h := newHarness()
	_, err := h.uc.Create(context.Background(), testTenant, testUser, createRequest(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_BodegaInexistente(t *testing.T) {
	h := newHarness()
	in := createRequest(4)
	in.TargetWarehouseID = "nope"
	_, err := h.uc.Create(context.Background(), testTenant, testUser, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ItemEnOtraBodega(t *testing.T) {
	h := newHarness()
	h.itemRepo.byID[srcItemID].WarehouseID = targetWH
	_, err := h.uc.Create(context.Background(), testTenant, testUser, createRequest(4))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CantidadInsuficiente(t *testing.T) {
	h := newHarness()
	_, err := h.uc.Create(context.Background(), testTenant, testUser, createRequest(11))
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
}

// Un ítem no puede participar en dos traslados no terminales a la vez.
func TestCreate_ItemOcupadoEnOtroTraslado(t *testing.T) {
	h := newHarness()
	createTransfer(t, h, 3)

	_, err := h.uc.Create(context.Background(), testTenant, testUser, createRequest(2))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreate_TrasCancelarElItemQuedaLibre(t *testing.T) {
	h := newHarness()
	first := createTransfer(t, h, 3)

	_, err := h.uc.Cancel(context.Background(), testTenant, first.ID, "ya no se necesita")
	require.NoError(t, err)

	_, err = h.uc.Create(context.Background(), testTenant, testUser, createRequest(2))
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_SoloDesdePending(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 4)
	ctx := context.Background()

	started, err := h.uc.Start(ctx, testTenant, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusInTransit, started.Status)

	_, err = h.uc.Start(ctx, testTenant, resp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_ExigeMotivo(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 4)

	_, err := h.uc.Cancel(context.Background(), testTenant, resp.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un traslado IN_TRANSIT no se cancela: la mercancía ya va en camino.
func TestCancel_InTransitNoSeCancela(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 4)
	startTransfer(t, h, resp.ID)

	_, err := h.uc.Cancel(context.Background(), testTenant, resp.ID, "me arrepentí")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestComplete_SoloDesdeInTransit(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 4)

	_, err := h.uc.Complete(context.Background(), testTenant, resp.ID, testUser, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_MueveCantidadesYEscribeElPar(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 4)
	startTransfer(t, h, resp.ID)
	ctx := context.Background()

	completed, err := h.uc.Complete(ctx, testTenant, resp.ID, "receptor-1", nil)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, completed.Status)
	assert.Equal(t, "receptor-1", completed.CompletedBy)
	assert.NotNil(t, completed.CompletedAt)

	// El ítem origen baja y aparece (o crece) el ítem destino.
	assert.True(t, h.itemRepo.byID[srcItemID].Quantity.Equal(dec(6)))
	dst, err := h.itemRepo.GetByProductAndWarehouseForUpdate(ctx, testTenant, targetWH, productID)
	require.NoError(t, err)
	require.NotNil(t, dst, "el ítem destino se crea si no existe")
	assert.True(t, dst.Quantity.Equal(dec(4)))
	assert.Equal(t, "Taladro", dst.ProductName)

	// El libro recibe el par TRANSFER_OUT / TRANSFER_IN con la misma referencia.
	require.Len(t, h.movRepo.movements, 2)
	out, in := h.movRepo.movements[0], h.movRepo.movements[1]
	assert.Equal(t, entity.MovementTypeTransferOut, out.Type)
	assert.True(t, out.QuantityChange.Equal(dec(-4)))
	assert.True(t, out.NewQuantity.Equal(dec(6)))
	assert.Equal(t, entity.MovementTypeTransferIn, in.Type)
	assert.True(t, in.QuantityChange.Equal(dec(4)))
	assert.Equal(t, resp.ID, out.ReferenceID)
	assert.Equal(t, resp.ID, in.ReferenceID)
	assert.Equal(t, "TRANSFER", out.ReferenceType)
}

// Si la cantidad recibida difiere de la enviada, la discrepancia queda
// registrada en el motivo de ambas entradas, nunca conciliada en silencio.
func TestComplete_DiscrepanciaQuedaEnElMotivo(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 10)
	startTransfer(t, h, resp.ID)

	_, err := h.uc.Complete(context.Background(), testTenant, resp.ID, testUser,
		map[string]decimal.Decimal{srcItemID: dec(9)})
	require.NoError(t, err)

	// El origen descuenta lo enviado; el destino recibe lo declarado.
	assert.True(t, h.itemRepo.byID[srcItemID].Quantity.Equal(dec(0)))
	dst, _ := h.itemRepo.GetByProductAndWarehouseForUpdate(context.Background(), testTenant, targetWH, productID)
	require.NotNil(t, dst)
	assert.True(t, dst.Quantity.Equal(dec(9)))

	require.Len(t, h.movRepo.movements, 2)
	for _, m := range h.movRepo.movements {
		assert.Contains(t, m.Reason, "enviadas 10, recibidas 9")
	}
}

func TestComplete_OverrideNegativo(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 4)
	startTransfer(t, h, resp.ID)

	_, err := h.uc.Complete(context.Background(), testTenant, resp.ID, testUser,
		map[string]decimal.Decimal{srcItemID: dec(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Si el stock del origen bajó entre el Start y el Complete, el cierre falla
// en vez de dejar el libro en negativo.
func TestComplete_StockOrigenInsuficienteAlCierre(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 8)
	startTransfer(t, h, resp.ID)

	h.itemRepo.byID[srcItemID].Quantity = dec(5)
	_, err := h.uc.Complete(context.Background(), testTenant, resp.ID, testUser, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
}

func TestComplete_AjustaOcupacionEnAmbosExtremos(t *testing.T) {
	h := newHarness()
	capacidad := 100

	// Ubicaciones con ocupación en ambas bodegas.
	require.NoError(t, h.locRepo.CreateBatch(context.Background(), []*entity.Location{
		{ID: "loc-src", TenantID: testTenant, WarehouseID: sourceWH, Code: "P1-E1-C1",
			Status: entity.LocationStatusActive, Capacity: &capacidad, CurrentOccupancy: 10},
		{ID: "loc-dst", TenantID: testTenant, WarehouseID: targetWH, Code: "Z1-R1-B1",
			Status: entity.LocationStatusActive, Capacity: &capacidad, CurrentOccupancy: 2},
	}))
	h.itemRepo.byID[srcItemID].LocationCode = "P1-E1-C1"
	h.itemRepo.byID["item-dst"] = &entity.InventoryItem{
		ID:           "item-dst",
		TenantID:     testTenant,
		WarehouseID:  targetWH,
		ProductID:    productID,
		Quantity:     dec(1),
		Status:       entity.ItemStatusAvailable,
		LocationCode: "Z1-R1-B1",
	}

	resp := createTransfer(t, h, 4)
	startTransfer(t, h, resp.ID)

	_, err := h.uc.Complete(context.Background(), testTenant, resp.ID, testUser, nil)
	require.NoError(t, err)

	src, _ := h.locRepo.GetByCode(context.Background(), testTenant, sourceWH, "P1-E1-C1")
	dst, _ := h.locRepo.GetByCode(context.Background(), testTenant, targetWH, "Z1-R1-B1")
	assert.Equal(t, 6, src.CurrentOccupancy)
	assert.Equal(t, 6, dst.CurrentOccupancy)
}

// Dos cierres concurrentes del mismo traslado: el que pierde la carrera
// ve COMPLETED en la fila bloqueada y falla, así el par del libro se
// escribe una sola vez y el origen se descuenta una sola vez.
func TestComplete_CierreConcurrenteSoloUnoGana(t *testing.T) {
	h := newHarness()
	resp := createTransfer(t, h, 4)
	startTransfer(t, h, resp.ID)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.uc.Complete(context.Background(), testTenant, resp.ID, testUser, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var oks, transitions int
	for err := range errs {
		switch {
		case err == nil:
			oks++
		default:
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			transitions++
		}
	}
	assert.Equal(t, 1, oks, "exactamente un cierre gana")
	assert.Equal(t, 1, transitions)

	assert.Len(t, h.movRepo.movements, 2, "el par del libro se escribe una sola vez")
	assert.True(t, h.itemRepo.byID[srcItemID].Quantity.Equal(dec(6)), "el origen se descuenta una sola vez")
}

// Un ítem ubicado no se traslada en cantidad fraccionaria: la ocupación
// cuenta unidades enteras y truncar la dejaría desfasada de la cantidad.
func TestComplete_CantidadFraccionariaConUbicacion(t *testing.T) {
	h := newHarness()
	capacidad := 100
	require.NoError(t, h.locRepo.CreateBatch(context.Background(), []*entity.Location{
		{ID: "loc-src", TenantID: testTenant, WarehouseID: sourceWH, Code: "P1-E1-C1",
			Status: entity.LocationStatusActive, Capacity: &capacidad, CurrentOccupancy: 10},
	}))
	h.itemRepo.byID[srcItemID].LocationCode = "P1-E1-C1"

	in := createRequest(0)
	in.Items[0].Quantity = decimal.RequireFromString("2.5")
	resp, err := h.uc.Create(context.Background(), testTenant, testUser, in)
	require.NoError(t, err)
	startTransfer(t, h, resp.ID)

	_, err = h.uc.Complete(context.Background(), testTenant, resp.ID, testUser, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada se aplicó: ni cantidad ni ocupación.
	assert.True(t, h.itemRepo.byID[srcItemID].Quantity.Equal(dec(10)))
	loc, _ := h.locRepo.GetByCode(context.Background(), testTenant, sourceWH, "P1-E1-C1")
	assert.Equal(t, 10, loc.CurrentOccupancy)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_IncluyeLineas(t *testing.T) {
	h := newHarness()
	created := createTransfer(t, h, 4)

	resp, err := h.uc.GetByID(context.Background(), testTenant, created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, srcItemID, resp.Items[0].InventoryItemID)

	_, err = h.uc.GetByID(context.Background(), testTenant, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorEstado(t *testing.T) {
	h := newHarness()
	created := createTransfer(t, h, 4)
	startTransfer(t, h, created.ID)

	resp, err := h.uc.List(context.Background(), testTenant, entity.TransferStatusInTransit, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)

	resp, err = h.uc.List(context.Background(), testTenant, entity.TransferStatusCompleted, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
