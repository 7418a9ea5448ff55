package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func TestApplyOccupancyDelta_NuncaNegativa(t *testing.T) {
	l := &entity.Location{Status: entity.LocationStatusActive, CurrentOccupancy: 3}

	err := l.ApplyOccupancyDelta(-5)
	require.ErrorIs(t, err, domain.ErrNegativeOccupancy)
	assert.Equal(t, 3, l.CurrentOccupancy, "un delta rechazado no debe mutar la ocupación")
}

func TestApplyOccupancyDelta_NoExcedeCapacidad(t *testing.T) {
	l := &entity.Location{Status: entity.LocationStatusActive, Capacity: intPtr(10), CurrentOccupancy: 8}

	err := l.ApplyOccupancyDelta(3)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 8, l.CurrentOccupancy)
}

func TestApplyOccupancyDelta_SinCapacidadNoHayTope(t *testing.T) {
	l := &entity.Location{Status: entity.LocationStatusActive, CurrentOccupancy: 0}

	require.NoError(t, l.ApplyOccupancyDelta(1_000_000))
	assert.Equal(t, entity.LocationStatusActive, l.Status)
}

func TestApplyOccupancyDelta_LlenaYVuelveADisponible(t *testing.T) {
	l := &entity.Location{Status: entity.LocationStatusActive, Capacity: intPtr(5), CurrentOccupancy: 4}

	require.NoError(t, l.ApplyOccupancyDelta(1))
	assert.Equal(t, entity.LocationStatusFull, l.Status, "al alcanzar la capacidad pasa a FULL")

	require.NoError(t, l.ApplyOccupancyDelta(-2))
	assert.Equal(t, entity.LocationStatusActive, l.Status, "al liberar espacio vuelve a ACTIVE")
}

// INACTIVE es un override manual del operario: los cambios de ocupación no
// deben limpiarlo jamás.
func TestRecomputeStatus_InactiveEsPegajoso(t *testing.T) {
	l := &entity.Location{Status: entity.LocationStatusInactive, Capacity: intPtr(5), CurrentOccupancy: 0}

	require.NoError(t, l.ApplyOccupancyDelta(5))
	assert.Equal(t, entity.LocationStatusInactive, l.Status)

	require.NoError(t, l.ApplyOccupancyDelta(-5))
	assert.Equal(t, entity.LocationStatusInactive, l.Status)
}

func TestIsDeleted(t *testing.T) {
	l := &entity.Location{}
	assert.False(t, l.IsDeleted())
}
