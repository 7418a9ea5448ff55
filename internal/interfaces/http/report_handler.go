package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/report"
)

// ReportHandler genera el kardex de movimientos en PDF (protegido).
type ReportHandler struct {
	uc *report.MovementReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.MovementReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// MovementReport genera y descarga el kardex PDF de la bodega y el período.
func (h *ReportHandler) MovementReport(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from inválido (RFC3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to inválido (RFC3339)"})
	}
	pdf, err := h.uc.Generate(c.Context(), tenantID, c.Params("warehouseId"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="kardex.pdf"`)
	return c.Send(pdf)
}
