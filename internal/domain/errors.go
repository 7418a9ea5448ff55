package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInvalidTransition    = errors.New("transición de estado inválida")
	ErrLimitExceeded        = errors.New("límite de generación excedido")
	ErrNegativeOccupancy    = errors.New("la ocupación no puede ser negativa")
	ErrCapacityExceeded     = errors.New("la ocupación excede la capacidad de la ubicación")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente")
)

// TransitionError describe una transición de estado rechazada: incluye la
// entidad, el estado actual y el estado intentado.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: transición inválida de %s a %s", e.Entity, e.From, e.To)
}

// Unwrap permite detectar el error con errors.Is(err, ErrInvalidTransition).
func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError construye el error de transición para la entidad dada.
func NewTransitionError(entity, from, to string) error {
	return &TransitionError{Entity: entity, From: from, To: to}
}
