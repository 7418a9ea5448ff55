package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/stock"
)

// StockHandler maneja resúmenes de stock, alertas y umbrales (protegido).
type StockHandler struct {
	aggregator *stock.StockAggregator
	alerts     *stock.AlertEngine
	settings   *stock.SettingsUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(aggregator *stock.StockAggregator, alerts *stock.AlertEngine, settings *stock.SettingsUseCase) *StockHandler {
	return &StockHandler{aggregator: aggregator, alerts: alerts, settings: settings}
}

// Summary devuelve el resumen de stock de un producto.
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	sum, err := h.aggregator.Summarize(c.Context(), tenantID, c.Params("productId"), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock.ToSummaryResponse(sum))
}

// BelowThreshold lista los productos bajo umbral (LOW, CRITICAL, OUT_OF_STOCK).
func (h *StockHandler) BelowThreshold(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	sums, err := h.aggregator.BelowThreshold(c.Context(), tenantID, c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockSummaryResponse, 0, len(sums))
	for _, s := range sums {
		items = append(items, *stock.ToSummaryResponse(s))
	}
	return c.JSON(fiber.Map{"items": items, "total": len(items)})
}

// EvaluateAlerts reevalúa las alertas de todos los productos bajo umbral.
// Lo dispara un scheduler externo o una acción manual del operario.
func (h *StockHandler) EvaluateAlerts(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	sums, err := h.aggregator.BelowThreshold(c.Context(), tenantID, c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	alerts, err := h.alerts.EvaluateAll(c.Context(), tenantID, sums)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": alerts, "total": len(alerts)})
}

// ListAlerts lista alertas con filtros de estado y bodega.
func (h *StockHandler) ListAlerts(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	resp, err := h.alerts.List(c.Context(), tenantID, c.Query("status"), c.Query("warehouse_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// AcknowledgeAlert marca la alerta como reconocida.
func (h *StockHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	tenantID, userID, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AcknowledgeAlertRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.alerts.Acknowledge(c.Context(), tenantID, c.Params("id"), userID, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SnoozeAlert pospone la alerta entre 1 y 30 días.
func (h *StockHandler) SnoozeAlert(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SnoozeAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.alerts.Snooze(c.Context(), tenantID, c.Params("id"), in.Days, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ResolveAlert cierra la alerta.
func (h *StockHandler) ResolveAlert(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ResolveAlertRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.alerts.Resolve(c.Context(), tenantID, c.Params("id"), in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ResolveAlertsByProduct resuelve en bloque las alertas ACTIVE de un
// producto, opcionalmente por bodega. Se usa tras reabastecer: la
// condición que originó las alertas ya no existe.
func (h *StockHandler) ResolveAlertsByProduct(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ResolveAlertsByProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	n, err := h.alerts.ResolveByProduct(c.Context(), tenantID, in.ProductID, in.WarehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"resolved": n})
}

// CreateSetting registra los umbrales de stock de un producto.
func (h *StockHandler) CreateSetting(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateStockSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.settings.Create(c.Context(), tenantID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListSettings lista los umbrales configurados del tenant.
func (h *StockHandler) ListSettings(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	items, pageResp, err := h.settings.List(c.Context(), tenantID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "page": pageResp})
}

// DeactivateSetting desactiva un umbral sin borrarlo.
func (h *StockHandler) DeactivateSetting(c *fiber.Ctx) error {
	tenantID, _, ok := requireAuth(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.settings.Deactivate(c.Context(), tenantID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
