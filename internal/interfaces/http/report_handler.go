package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-wms/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de los reportes de stock.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ByWarehouse godoc
// @Summary      Stock agrupado por ubicación
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportByWarehouseRow
// @Router       /api/reports/stock/by-warehouse [get]
func (h *ReportHandler) ByWarehouse(c *fiber.Ctx) error {
	rows, err := h.uc.ByWarehouse(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// ByItem godoc
// @Summary      Stock agrupado por item
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportByItemRow
// @Router       /api/reports/stock/by-item [get]
func (h *ReportHandler) ByItem(c *fiber.Ctx) error {
	rows, err := h.uc.ByItem(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// ByModel godoc
// @Summary      Stock agrupado por modelo/tipo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportByModelRow
// @Router       /api/reports/stock/by-model [get]
func (h *ReportHandler) ByModel(c *fiber.Ctx) error {
	rows, err := h.uc.ByModel(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}
