package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/location"
)

// LocationHandler maneja estructuras de codificación y ubicaciones (protegido).
type LocationHandler struct {
	uc *location.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *location.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// CreateStructure crea la estructura de codificación de una bodega.
func (h *LocationHandler) CreateStructure(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateLocationStructureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateStructure(c.Context(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetStructure devuelve la estructura de la bodega.
func (h *LocationHandler) GetStructure(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.uc.GetStructure(c.Context(), tenantID, c.Params("warehouseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateStructure actualiza la estructura (prefijos solo si no hay ubicaciones).
func (h *LocationHandler) UpdateStructure(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateLocationStructureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.UpdateStructure(c.Context(), tenantID, c.Params("warehouseId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Generate genera masivamente ubicaciones para la bodega.
func (h *LocationHandler) Generate(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.GenerateLocationsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Generate(c.Context(), tenantID, c.Params("warehouseId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ValidateCode valida un código contra la estructura de la bodega. Siempre
// 200: el resultado tipado va en el cuerpo.
func (h *LocationHandler) ValidateCode(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.uc.ValidateCode(c.Context(), tenantID, c.Params("warehouseId"), c.Query("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List lista ubicaciones vigentes de la bodega.
func (h *LocationHandler) List(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	resp, err := h.uc.List(c.Context(), tenantID, c.Params("warehouseId"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// AdjustOccupancy aplica un delta de ocupación a la ubicación.
func (h *LocationHandler) AdjustOccupancy(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustOccupancyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.AdjustOccupancy(c.Context(), tenantID, c.Params("id"), in.Delta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete elimina lógicamente la ubicación.
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Delete(c.Context(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
