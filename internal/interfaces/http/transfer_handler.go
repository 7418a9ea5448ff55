package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/transfer"
)

// TransferHandler maneja el ciclo de vida de traslados entre bodegas (protegido).
type TransferHandler struct {
	uc *transfer.TransferCoordinator
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.TransferCoordinator) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create registra un traslado en PENDING.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	tenantID, userID, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), tenantID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Start mueve el traslado a IN_TRANSIT.
func (h *TransferHandler) Start(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.uc.Start(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Complete cierra el traslado, con overrides opcionales de recepción.
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	tenantID, userID, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CompleteTransferRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Complete(c.Context(), tenantID, c.Params("id"), userID, in.ReceivedOverrides)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Cancel cancela un traslado PENDING con motivo obligatorio.
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CancelTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Cancel(c.Context(), tenantID, c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID devuelve el traslado con sus líneas.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.uc.GetByID(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List lista traslados con filtro opcional de estado.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	resp, err := h.uc.List(c.Context(), tenantID, c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
