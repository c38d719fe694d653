package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/application/locations"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// LocationHandler maneja las peticiones HTTP del registro de ubicaciones.
type LocationHandler struct {
	uc *locations.UseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *locations.UseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

func locationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:            l.ID,
		Code:          l.Code,
		Zone:          l.Zone,
		X:             l.X,
		Y:             l.Y,
		Z:             l.Z,
		Type:          l.Type,
		CapacityUnits: l.CapacityUnits,
		IsBlocked:     l.IsBlocked,
	}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "code, zone, x, y, z (opcional), type, capacity_units"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	loc, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(locationResponse(loc))
}

// BulkGenerate godoc
// @Summary      Generar ubicaciones por rangos de coordenadas
// @Description  Crea todas las ubicaciones del producto cartesiano de los rangos que no existan; las existentes se cuentan como omitidas.
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkGenerateRequest  true  "zone, x_from..x_to, y_from..y_to, z_from..z_to (opcional)"
// @Success      200   {object}  dto.BulkGenerateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations/bulk-generate [post]
func (h *LocationHandler) BulkGenerate(c *fiber.Ctx) error {
	var in dto.BulkGenerateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.BulkGenerate(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        zone   query  string  false  "Filtrar por zona"
// @Param        limit  query  int     false  "Máximo de filas"
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.uc.List(c.Context(), c.Query("zone"), limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, locationResponse(l))
	}
	return c.JSON(out)
}

// Zones godoc
// @Summary      Zonas registradas
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/locations/zones [get]
func (h *LocationHandler) Zones(c *fiber.Ctx) error {
	zones, err := h.uc.Zones(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(zones)
}

// Lookup godoc
// @Summary      Buscar ubicación por código
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código normalizado (ej. Z1-X01-Y02)"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/code/{code} [get]
func (h *LocationHandler) Lookup(c *fiber.Ctx) error {
	loc, err := h.uc.Lookup(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(locationResponse(loc))
}

// Delete godoc
// @Summary      Borrar ubicación
// @Tags         locations
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
