package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-wms/internal/application/catalog"
	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// ItemHandler maneja las peticiones HTTP del catálogo de items y etiquetas.
type ItemHandler struct {
	uc *catalog.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *catalog.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

func itemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:           it.ID,
		SKU:          it.SKU,
		Name:         it.Name,
		Family:       it.Family,
		ModelOrType:  it.ModelOrType,
		Unit:         it.Unit,
		IsSerialized: it.IsSerialized,
		MaterialID:   it.MaterialID,
	}
}

func tagResponse(t *entity.Tag) dto.TagResponse {
	return dto.TagResponse{
		ID:           t.ID,
		Code:         t.Code,
		TagType:      t.TagType,
		PackQuantity: t.PackQuantity,
		ItemID:       t.ItemID,
	}
}

// Create godoc
// @Summary      Alta mínima de item (idempotente por SKU)
// @Description  Si el SKU ya existe devuelve el item existente. Si el body incluye tag_code (o tag_type) se adjunta también la etiqueta.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "sku, name, family, unit, etiqueta opcional"
// @Success      201   {object}  dto.ItemDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.CreateOrGetItemMinimal(c.Context(), in.SKU, in.Name, in.Family, in.Unit, in.MaterialID)
	if err != nil {
		return writeError(c, err)
	}
	resp := dto.ItemDetailResponse{Item: itemResponse(item)}
	if strings.TrimSpace(in.TagCode) != "" || strings.TrimSpace(in.TagType) != "" {
		tag, err := h.uc.AttachTag(c.Context(), item.ID, in.TagCode, in.TagType, in.PackQuantity)
		if err != nil {
			return writeError(c, err)
		}
		resp.Tags = append(resp.Tags, tagResponse(tag))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Detalle de item con sus etiquetas
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID"
// @Success      200  {object}  dto.ItemDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	item, tags, err := h.uc.ItemDetail(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	resp := dto.ItemDetailResponse{Item: itemResponse(item)}
	for _, t := range tags {
		resp.Tags = append(resp.Tags, tagResponse(t))
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID"
// @Param        body  body  dto.UpdateItemRequest  true  "campos opcionales a modificar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.UpdateItem(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(itemResponse(item))
}

// Search godoc
// @Summary      Buscar items por SKU o nombre
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  false  "Texto a buscar"
// @Param        limit  query  int     false  "Máximo de filas"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.uc.Search(c.Context(), c.Query("q"), limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, itemResponse(it))
	}
	return c.JSON(out)
}

// AttachTag godoc
// @Summary      Adjuntar etiqueta a un item
// @Description  Idempotente por código. Código de otro item -> 409; código vacío -> se genera uno interno QR.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del item"
// @Param        body  body  dto.AttachTagRequest  true  "code, tag_type, pack_quantity"
// @Success      201   {object}  dto.TagResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/tags [post]
func (h *ItemHandler) AttachTag(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.AttachTagRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	tag, err := h.uc.AttachTag(c.Context(), id, in.Code, in.TagType, in.PackQuantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tagResponse(tag))
}

// Resolve godoc
// @Summary      Resolver un código escaneado a su item
// @Description  Match exacto de etiqueta primero, fallback a SKU.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código escaneado"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/resolve/{code} [get]
func (h *ItemHandler) Resolve(c *fiber.Ctx) error {
	item, err := h.uc.ResolveByScan(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(itemResponse(item))
}

// Delete godoc
// @Summary      Borrar item
// @Description  Rechazado con 409 si algo lo referencia; el error enumera cada tipo de referencia con su conteo.
// @Tags         items
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.DeleteItem(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
