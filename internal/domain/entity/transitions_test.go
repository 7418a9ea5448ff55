package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-core/internal/domain/entity"
)

// El grafo del traslado es monótono: de las 16 combinaciones solo 3 son legales.
func TestCanTransferTransition_MatrizCompleta(t *testing.T) {
	states := []string{
		entity.TransferStatusPending,
		entity.TransferStatusInTransit,
		entity.TransferStatusCompleted,
		entity.TransferStatusCancelled,
	}
	legal := map[[2]string]bool{
		{entity.TransferStatusPending, entity.TransferStatusInTransit}: true,
		{entity.TransferStatusPending, entity.TransferStatusCancelled}: true,
		{entity.TransferStatusInTransit, entity.TransferStatusCompleted}: true,
	}

	count := 0
	for _, from := range states {
		for _, to := range states {
			got := entity.CanTransferTransition(from, to)
			assert.Equal(t, legal[[2]string{from, to}], got, "%s → %s", from, to)
			if got {
				count++
			}
		}
	}
	assert.Equal(t, 3, count)
}

func TestCanAlertTransition(t *testing.T) {
	// Desde ACTIVE todo es alcanzable.
	assert.True(t, entity.CanAlertTransition(entity.AlertStatusActive, entity.AlertStatusAcknowledged))
	assert.True(t, entity.CanAlertTransition(entity.AlertStatusActive, entity.AlertStatusSnoozed))
	assert.True(t, entity.CanAlertTransition(entity.AlertStatusActive, entity.AlertStatusResolved))

	// ACKNOWLEDGED y SNOOZED pueden alternarse y cerrarse.
	assert.True(t, entity.CanAlertTransition(entity.AlertStatusAcknowledged, entity.AlertStatusSnoozed))
	assert.True(t, entity.CanAlertTransition(entity.AlertStatusAcknowledged, entity.AlertStatusResolved))
	assert.True(t, entity.CanAlertTransition(entity.AlertStatusSnoozed, entity.AlertStatusAcknowledged))
	assert.True(t, entity.CanAlertTransition(entity.AlertStatusSnoozed, entity.AlertStatusResolved))

	// RESOLVED es terminal y nadie vuelve a ACTIVE.
	for _, to := range []string{
		entity.AlertStatusActive,
		entity.AlertStatusAcknowledged,
		entity.AlertStatusSnoozed,
		entity.AlertStatusResolved,
	} {
		assert.False(t, entity.CanAlertTransition(entity.AlertStatusResolved, to), "RESOLVED → %s", to)
	}
	assert.False(t, entity.CanAlertTransition(entity.AlertStatusAcknowledged, entity.AlertStatusActive))
	assert.False(t, entity.CanAlertTransition(entity.AlertStatusSnoozed, entity.AlertStatusActive))
}

func TestIsMovementType(t *testing.T) {
	assert.True(t, entity.IsMovementType(entity.MovementTypeReceipt))
	assert.True(t, entity.IsMovementType(entity.MovementTypeScrap))
	assert.False(t, entity.IsMovementType("PURCHASE"))
	assert.False(t, entity.IsMovementType(""))
}
