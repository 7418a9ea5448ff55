package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-core/internal/application/stock"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (compartidos por los tests del paquete)
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items []*entity.InventoryItem
}

var _ repository.InventoryItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, _, id string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *fakeItemRepo) GetByProductAndWarehouseForUpdate(_ context.Context, _, warehouseID, productID string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.WarehouseID == warehouseID && it.ProductID == productID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) ListByProduct(_ context.Context, _, productID, warehouseID string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
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

func (r *fakeItemRepo) ListProductIDs(_ context.Context, _, warehouseID string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range r.items {
		if warehouseID != "" && it.WarehouseID != warehouseID {
			continue
		}
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		out = append(out, it.ProductID)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	for i, it := range r.items {
		if it.ID == item.ID {
			cp := *item
			r.items[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSettingRepo struct {
	settings []*entity.StockLevelSetting
}

var _ repository.StockLevelSettingRepository = (*fakeSettingRepo)(nil)

func (r *fakeSettingRepo) Create(_ context.Context, s *entity.StockLevelSetting) error {
	cp := *s
	r.settings = append(r.settings, &cp)
	return nil
}

func (r *fakeSettingRepo) GetByID(_ context.Context, _, id string) (*entity.StockLevelSetting, error) {
	for _, s := range r.settings {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

// El umbral específico de la bodega gana sobre el global (WarehouseID vacío).
func (r *fakeSettingRepo) GetByProduct(_ context.Context, _, productID, warehouseID string) (*entity.StockLevelSetting, error) {
	var global *entity.StockLevelSetting
	for _, s := range r.settings {
		if s.ProductID != productID || !s.IsActive {
			continue
		}
		if s.WarehouseID == warehouseID && warehouseID != "" {
			cp := *s
			return &cp, nil
		}
		if s.WarehouseID == "" {
			cp := *s
			global = &cp
		}
	}
	return global, nil
}

func (r *fakeSettingRepo) List(_ context.Context, _ string, limit, offset int) ([]*entity.StockLevelSetting, int, error) {
	total := len(r.settings)
	out := make([]*entity.StockLevelSetting, 0, total)
	for _, s := range r.settings {
		cp := *s
		out = append(out, &cp)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeSettingRepo) Update(_ context.Context, s *entity.StockLevelSetting) error {
	for i, cur := range r.settings {
		if cur.ID == s.ID {
			cp := *s
			r.settings[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeSettingRepo) Delete(_ context.Context, _, id string) error {
	for i, s := range r.settings {
		if s.ID == id {
			r.settings = append(r.settings[:i], r.settings[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeAlertRepo struct {
	byID map[string]*entity.StockAlert
}

var _ repository.AlertRepository = (*fakeAlertRepo)(nil)

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{byID: make(map[string]*entity.StockAlert)}
}

func (r *fakeAlertRepo) Create(_ context.Context, a *entity.StockAlert) error {
	for _, cur := range r.byID {
		if cur.Status == entity.AlertStatusActive &&
			cur.ProductID == a.ProductID && cur.WarehouseID == a.WarehouseID && cur.Type == a.Type {
			return domain.ErrDuplicate
		}
	}
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) GetByID(_ context.Context, _, id string) (*entity.StockAlert, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAlertRepo) GetActive(_ context.Context, _, productID, warehouseID, alertType string) (*entity.StockAlert, error) {
	for _, a := range r.byID {
		if a.Status == entity.AlertStatusActive &&
			a.ProductID == productID && a.WarehouseID == warehouseID && a.Type == alertType {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) List(_ context.Context, _, status, warehouseID string, limit, offset int) ([]*entity.StockAlert, int, error) {
	var out []*entity.StockAlert
	for _, a := range r.byID {
		if status != "" && a.Status != status {
			continue
		}
		if warehouseID != "" && a.WarehouseID != warehouseID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	total := len(out)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeAlertRepo) Update(_ context.Context, a *entity.StockAlert) error {
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *fakeAlertRepo) ResolveActiveByProduct(_ context.Context, _, productID, warehouseID string, at time.Time) (int, error) {
	count := 0
	for _, a := range r.byID {
		if a.Status != entity.AlertStatusActive || a.ProductID != productID {
			continue
		}
		if warehouseID != "" && a.WarehouseID != warehouseID {
			continue
		}
		a.Status = entity.AlertStatusResolved
		resolvedAt := at
		a.ResolvedAt = &resolvedAt
		count++
	}
	return count, nil
}

const (
	testTenant    = "tenant-1"
	testWarehouse = "wh-1"
	testProduct   = "prod-1"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func item(id, productID, warehouseID, status string, qty int64, min *decimal.Decimal) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:            id,
		TenantID:      testTenant,
		WarehouseID:   warehouseID,
		ProductID:     productID,
		Quantity:      dec(qty),
		Status:        status,
		MinStockLevel: min,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Summarize
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize_SumaPorEstado(t *testing.T) {
	itemRepo := &fakeItemRepo{items: []*entity.InventoryItem{
		item("i1", testProduct, testWarehouse, entity.ItemStatusAvailable, 10, nil),
		item("i2", testProduct, testWarehouse, entity.ItemStatusReserved, 5, nil),
		item("i3", testProduct, testWarehouse, entity.ItemStatusInTransit, 2, nil),
		item("i4", "otro-producto", testWarehouse, entity.ItemStatusAvailable, 99, nil),
	}}
	agg := stock.NewStockAggregator(itemRepo, &fakeSettingRepo{})

	sum, err := agg.Summarize(context.Background(), testTenant, testProduct, testWarehouse)
	require.NoError(t, err)
	assert.True(t, sum.Available.Equal(dec(10)))
	assert.True(t, sum.Reserved.Equal(dec(5)))
	assert.True(t, sum.InTransit.Equal(dec(2)))
	assert.True(t, sum.Total.Equal(dec(17)))
	assert.Equal(t, entity.StockLevelOK, sum.Classification, "sin piso, disponible positivo es OK")
}

// El piso efectivo es el mínimo entre los ítems; si ninguno lo trae se
// consulta el umbral configurado del producto.
func TestSummarize_PisoEfectivo(t *testing.T) {
	itemRepo := &fakeItemRepo{items: []*entity.InventoryItem{
		item("i1", testProduct, testWarehouse, entity.ItemStatusAvailable, 8, decPtr(20)),
		item("i2", testProduct, testWarehouse, entity.ItemStatusAvailable, 1, decPtr(10)),
	}}
	agg := stock.NewStockAggregator(itemRepo, &fakeSettingRepo{})

	sum, err := agg.Summarize(context.Background(), testTenant, testProduct, testWarehouse)
	require.NoError(t, err)
	require.NotNil(t, sum.MinStockLevel)
	assert.True(t, sum.MinStockLevel.Equal(dec(10)))
	assert.Equal(t, entity.StockLevelCritical, sum.Classification, "9 disponibles contra piso 10")
}

func TestSummarize_PisoDesdeConfiguracion(t *testing.T) {
	itemRepo := &fakeItemRepo{items: []*entity.InventoryItem{
		item("i1", testProduct, testWarehouse, entity.ItemStatusAvailable, 12, nil),
	}}
	settingRepo := &fakeSettingRepo{settings: []*entity.StockLevelSetting{{
		ID:           "set-1",
		TenantID:     testTenant,
		ProductID:    testProduct,
		MinimumLevel: dec(10),
		ReorderPoint: dec(10),
		IsActive:     true,
	}}}
	agg := stock.NewStockAggregator(itemRepo, settingRepo)

	sum, err := agg.Summarize(context.Background(), testTenant, testProduct, testWarehouse)
	require.NoError(t, err)
	require.NotNil(t, sum.MinStockLevel)
	assert.True(t, sum.MinStockLevel.Equal(dec(10)))
	assert.Equal(t, entity.StockLevelLow, sum.Classification, "12 contra piso 10: LOW")
}

func TestSummarize_ProductoVacio(t *testing.T) {
	agg := stock.NewStockAggregator(&fakeItemRepo{}, &fakeSettingRepo{})
	_, err := agg.Summarize(context.Background(), testTenant, "", testWarehouse)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummarize_SinItemsEsOutOfStock(t *testing.T) {
	agg := stock.NewStockAggregator(&fakeItemRepo{}, &fakeSettingRepo{})
	sum, err := agg.Summarize(context.Background(), testTenant, testProduct, testWarehouse)
	require.NoError(t, err)
	assert.Equal(t, entity.StockLevelOutOfStock, sum.Classification)
}

// ──────────────────────────────────────────────────────────────────────────────
// BelowThreshold
// ──────────────────────────────────────────────────────────────────────────────

func TestBelowThreshold_FiltraLosOK(t *testing.T) {
	itemRepo := &fakeItemRepo{items: []*entity.InventoryItem{
		item("i1", "prod-ok", testWarehouse, entity.ItemStatusAvailable, 100, decPtr(10)),
		item("i2", "prod-low", testWarehouse, entity.ItemStatusAvailable, 12, decPtr(10)),
		item("i3", "prod-out", testWarehouse, entity.ItemStatusAvailable, 0, decPtr(10)),
	}}
	agg := stock.NewStockAggregator(itemRepo, &fakeSettingRepo{})

	sums, err := agg.BelowThreshold(context.Background(), testTenant, testWarehouse)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	byProduct := make(map[string]string, len(sums))
	for _, s := range sums {
		byProduct[s.ProductID] = s.Classification
	}
	assert.Equal(t, entity.StockLevelLow, byProduct["prod-low"])
	assert.Equal(t, entity.StockLevelOutOfStock, byProduct["prod-out"])
	assert.NotContains(t, byProduct, "prod-ok")
}
