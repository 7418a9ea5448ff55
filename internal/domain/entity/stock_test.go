package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Con piso 10: cero → OUT_OF_STOCK, bajo el piso → CRITICAL, entre piso y
// piso×1.5 → LOW, desde piso×1.5 → OK.
func TestClassifyStockLevel_ConPiso(t *testing.T) {
	min := decPtr(10)

	cases := []struct {
		available int64
		want      string
	}{
		{0, entity.StockLevelOutOfStock},
		{8, entity.StockLevelCritical},
		{9, entity.StockLevelCritical},
		{10, entity.StockLevelLow},
		{14, entity.StockLevelLow},
		{15, entity.StockLevelOK},
		{100, entity.StockLevelOK},
	}
	for _, c := range cases {
		got := entity.ClassifyStockLevel(decimal.NewFromInt(c.available), min)
		assert.Equal(t, c.want, got, "disponible=%d", c.available)
	}
}

func TestClassifyStockLevel_SinPiso(t *testing.T) {
	assert.Equal(t, entity.StockLevelOK, entity.ClassifyStockLevel(decimal.NewFromInt(1), nil),
		"sin piso configurado, cualquier disponibilidad positiva es OK")
	assert.Equal(t, entity.StockLevelOutOfStock, entity.ClassifyStockLevel(decimal.Zero, nil),
		"cero siempre es OUT_OF_STOCK, haya o no piso")
}

func TestClassifyStockLevel_PisoCeroEquivaleASinPiso(t *testing.T) {
	assert.Equal(t, entity.StockLevelOK, entity.ClassifyStockLevel(decimal.NewFromInt(3), decPtr(0)))
}

func TestClassifyStockLevel_DisponibleNegativo(t *testing.T) {
	assert.Equal(t, entity.StockLevelOutOfStock, entity.ClassifyStockLevel(decimal.NewFromInt(-2), decPtr(10)))
}
