package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/application/picklist"
)

// OrderHandler maneja las peticiones HTTP de las listas de picking por orden.
type OrderHandler struct {
	uc *picklist.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *picklist.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func orderIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetPickList godoc
// @Summary      Lista de picking de una orden
// @Description  Materializa las líneas si hace falta y devuelve, por slot del BOM, el principal y cada alternativa con su disponibilidad por ubicación en orden de ruta.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.PickListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/picklist [get]
func (h *OrderHandler) GetPickList(c *fiber.Ctx) error {
	id, ok := orderIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	res, err := h.uc.GetPickList(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Materialize godoc
// @Summary      Materializar líneas de picking
// @Description  Idempotente: crea una línea por cada item de cada slot del BOM que aún no exista, sin resetear progreso.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.MaterializeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/picklist/materialize [post]
func (h *OrderHandler) Materialize(c *fiber.Ctx) error {
	id, ok := orderIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	res, err := h.uc.MaterializePickLines(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// RecordScan godoc
// @Summary      Registrar escaneo de picking
// @Description  Incrementa en 1 la línea del item escaneado si el slot aún no está satisfecho. Slot satisfecho -> respuesta already_satisfied sin mutación; item fuera de la lista -> 409.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la orden"
// @Param        body  body  dto.RecordScanRequest  true  "code"
// @Success      200   {object}  dto.RecordScanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/picklist/scan [post]
func (h *OrderHandler) RecordScan(c *fiber.Ctx) error {
	id, ok := orderIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.RecordScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.RecordScan(c.Context(), id, in.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
