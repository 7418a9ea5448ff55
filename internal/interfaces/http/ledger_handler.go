package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/ledger"
)

// LedgerHandler maneja el libro de movimientos (protegido).
type LedgerHandler struct {
	uc *ledger.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Record registra un movimiento en el libro.
func (h *LedgerHandler) Record(c *fiber.Ctx) error {
	tenantID, userID, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Record(c.Context(), tenantID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RecordBatch registra varios movimientos, todos o ninguno.
func (h *LedgerHandler) RecordBatch(c *fiber.Ctx) error {
	tenantID, userID, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var ins []dto.RecordMovementRequest
	if err := c.BodyParser(&ins); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resps, err := h.uc.RecordBatch(c.Context(), tenantID, userID, ins)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"items": resps})
}

// History devuelve el historial de un ítem en orden cronológico ascendente.
func (h *LedgerHandler) History(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	resp, err := h.uc.History(c.Context(), tenantID, c.Params("itemId"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListByWarehouse lista movimientos de una bodega, con rango de fechas opcional.
func (h *LedgerHandler) ListByWarehouse(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fechas inválidas (RFC3339)"})
	}
	resp, err := h.uc.ListByWarehouse(c.Context(), tenantID, c.Params("warehouseId"), from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Summarize agrega los movimientos del período por categoría.
func (h *LedgerHandler) Summarize(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	from, to, err := parseDateRange(c)
	if err != nil || from == nil || to == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from y to son obligatorios (RFC3339)"})
	}
	resp, err := h.uc.Summarize(c.Context(), tenantID, c.Params("warehouseId"), *from, *to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// parseDateRange lee from/to de la query en RFC3339; ambos opcionales.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
