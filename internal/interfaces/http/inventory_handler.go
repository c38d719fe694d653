package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/application/ledger"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del ledger de stock y de los
// flujos de escaneo (putaway / pick).
type InventoryHandler struct {
	ledger *ledger.UseCase
	scans  *ledger.ScanOps
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(l *ledger.UseCase, scans *ledger.ScanOps) *InventoryHandler {
	return &InventoryHandler{ledger: l, scans: scans}
}

func movementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		TransactionID:  m.TransactionID,
		Type:           m.Type,
		ItemID:         m.ItemID,
		Quantity:       m.Quantity,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		PerformedBy:    m.PerformedBy,
		Notes:          m.Notes,
		TimestampUTC:   m.TimestampUTC,
	}
}

func parseTimeQuery(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Único punto de mutación del ledger: inserta el movimiento inmutable y actualiza los snapshots afectados en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "type, item_id, quantity, from_location_id y/o to_location_id"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	txID, err := h.ledger.ApplyMovement(c.Context(), ledger.MovementInput{
		Type:           in.Type,
		ItemID:         in.ItemID,
		Quantity:       in.Quantity,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		PerformedBy:    GetUsername(c),
		Notes:          in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction_id": txID})
}

// Putaway godoc
// @Summary      Guardar lo escaneado en una ubicación
// @Description  TRANSFER desde RECEPTION a la ubicación escaneada, con la cantidad efectiva de la etiqueta (serializado = 1, pack = pack_quantity).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PutawayRequest  true  "tag_code, location_code, quantity"
// @Success      201   {object}  dto.ScanMoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/putaway [post]
func (h *InventoryHandler) Putaway(c *fiber.Ctx) error {
	var in dto.PutawayRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.scans.Putaway(c.Context(), in, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Pick godoc
// @Summary      Sacar stock hacia un destino
// @Description  Comprueba disponibilidad ANTES de mover; stock insuficiente -> 409. El destino se resuelve a una pseudo-ubicación (DEST:PRODUCCION, DEST:WS:ref, ...).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PickRequest  true  "location_code, tag_code, quantity, destination_type, destination_ref"
// @Success      201   {object}  dto.ScanMoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/pick [post]
func (h *InventoryHandler) Pick(c *fiber.Ctx) error {
	var in dto.PickRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.scans.Pick(c.Context(), in, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Stock godoc
// @Summary      Stock actual
// @Description  Con item_id y location_id devuelve el snapshot del par (cero si no existe); sin filtros devuelve los snapshots más recientes.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  int  false  "Item"
// @Param        location_id  query  int  false  "Ubicación"
// @Param        limit        query  int  false  "Máximo de filas (listado)"
// @Success      200  {array}  dto.StockRowResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	itemID, _ := strconv.ParseInt(c.Query("item_id"), 10, 64)
	locationID, _ := strconv.ParseInt(c.Query("location_id"), 10, 64)
	if itemID > 0 && locationID > 0 {
		snap, err := h.ledger.Stock(c.Context(), itemID, locationID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.StockRowResponse{
			ItemID:       snap.ItemID,
			LocationID:   snap.LocationID,
			Quantity:     snap.Quantity,
			UpdatedAtUTC: snap.UpdatedAtUTC,
		})
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.ledger.RecentStock(c.Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockRowResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StockRowResponse{
			ItemID:       s.ItemID,
			LocationID:   s.LocationID,
			Quantity:     s.Quantity,
			UpdatedAtUTC: s.UpdatedAtUTC,
		})
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos
// @Description  Filtra por item_id o location_id, con rango de fechas RFC3339 opcional; sin filtros devuelve los más recientes.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  int     false  "Item"
// @Param        location_id  query  int     false  "Ubicación"
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Param        limit        query  int     false  "Máximo de filas"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()
	from := parseTimeQuery(c, "from")
	to := parseTimeQuery(c, "to")

	var (
		list []*entity.Movement
		err  error
	)
	itemID, _ := strconv.ParseInt(c.Query("item_id"), 10, 64)
	locationID, _ := strconv.ParseInt(c.Query("location_id"), 10, 64)
	switch {
	case itemID > 0:
		list, err = h.ledger.MovementsByItem(c.Context(), itemID, from, to, page.Limit, page.Offset)
	case locationID > 0:
		list, err = h.ledger.MovementsByLocation(c.Context(), locationID, from, to, page.Limit, page.Offset)
	default:
		list, err = h.ledger.RecentMovements(c.Context(), page.Limit)
	}
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, movementResponse(m))
	}
	return c.JSON(out)
}

// Consistency godoc
// @Summary      Verificar snapshot vs ledger
// @Description  Compara el snapshot materializado con la suma con signo de los movimientos del par (item, ubicación).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  int  true  "Item"
// @Param        location_id  query  int  true  "Ubicación"
// @Success      200  {object}  dto.ConsistencyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/consistency [get]
func (h *InventoryHandler) Consistency(c *fiber.Ctx) error {
	itemID, _ := strconv.ParseInt(c.Query("item_id"), 10, 64)
	locationID, _ := strconv.ParseInt(c.Query("location_id"), 10, 64)
	if itemID <= 0 || locationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id y location_id requeridos"})
	}
	ledgerSum, snapshot, consistent, err := h.ledger.CheckConsistency(c.Context(), itemID, locationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ConsistencyResponse{
		ItemID:     itemID,
		LocationID: locationID,
		LedgerSum:  ledgerSum,
		Snapshot:   snapshot,
		Consistent: consistent,
	})
}
