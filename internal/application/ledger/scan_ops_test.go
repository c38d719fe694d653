package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/application/ledger"
	"github.com/tu-usuario/almacen-wms/internal/application/locations"
	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
)

// fakeResolver resuelve códigos escaneados contra un mapa fijo.
type fakeResolver struct {
	tags  map[string]*entity.Tag
	items map[string]*entity.Item // por código de etiqueta O por SKU
}

var _ ledger.CodeResolver = (*fakeResolver)(nil)

func (f *fakeResolver) ResolveTag(_ context.Context, code string) (*entity.Tag, *entity.Item, error) {
	if item, ok := f.items[code]; ok {
		return f.tags[code], item, nil
	}
	return nil, nil, domain.ErrNotFound
}

type scanHarness struct {
	*harness
	ops      *ledger.ScanOps
	resolver *fakeResolver
	locUC    *locations.UseCase
}

// newScanHarness monta los flujos de escaneo sobre el ledger en memoria; el
// get-or-create de pseudo-ubicaciones usa el caso de uso real de ubicaciones.
func newScanHarness() *scanHarness {
	h := newHarness()
	resolver := &fakeResolver{tags: make(map[string]*entity.Tag), items: make(map[string]*entity.Item)}
	locUC := locations.NewUseCase(h.locRepo)
	return &scanHarness{
		harness:  h,
		ops:      ledger.NewScanOps(h.uc, resolver, locUC),
		resolver: resolver,
		locUC:    locUC,
	}
}

func (s *scanHarness) registerTag(item *entity.Item, code string, pack int) {
	s.resolver.items[code] = item
	if pack > 0 {
		s.resolver.tags[code] = &entity.Tag{Code: code, TagType: entity.TagTypeRFID, PackQuantity: pack, ItemID: item.ID}
	}
	// También por SKU, sin etiqueta.
	s.resolver.items[item.SKU] = item
}

// ──────────────────────────────────────────────────────────────────────────────
// Putaway
// ──────────────────────────────────────────────────────────────────────────────

func TestPutaway_MueveDesdeRecepcion(t *testing.T) {
	s := newScanHarness()
	ctx := context.Background()
	item := s.itemRepo.add(entity.Item{SKU: "MOTOR-01"})
	s.registerTag(item, "RF-0001", 1)
	shelf := s.addLocation(t, "Z1-X01-Y01")

	res, err := s.ops.Putaway(ctx, dto.PutawayRequest{
		TagCode: "RF-0001", LocationCode: "z1-x01-y01", Quantity: 1,
	}, "operario1")
	require.NoError(t, err)

	assert.Equal(t, "RECEPTION", res.FromLocation)
	assert.Equal(t, "Z1-X01-Y01", res.ToLocation)
	assert.Equal(t, 1, res.Quantity)
	assert.Equal(t, 1, s.stockAt(t, item.ID, shelf.ID))

	// La pseudo-ubicación RECEPTION se creó sobre la marcha.
	reception, err := s.locUC.Lookup(ctx, "RECEPTION")
	require.NoError(t, err)
	assert.Equal(t, entity.LocationTypeReception, reception.Type)

	// Y el movimiento quedó firmado por quien lo hizo.
	require.Len(t, s.movRepo.movements, 1)
	assert.Equal(t, "operario1", s.movRepo.movements[0].PerformedBy)
	assert.Equal(t, entity.MovementTypeTRANSFER, s.movRepo.movements[0].Type)
}

func TestPutaway_EtiquetaDePack_MueveLaCajaEntera(t *testing.T) {
	s := newScanHarness()
	ctx := context.Background()
	item := s.itemRepo.add(entity.Item{SKU: "TORN-M4"})
	s.registerTag(item, "CAJA-10", 10)
	shelf := s.addLocation(t, "Z1-X01-Y01")

	// Cantidad por defecto: un escaneo de la caja mueve sus 10 unidades.
	res, err := s.ops.Putaway(ctx, dto.PutawayRequest{
		TagCode: "CAJA-10", LocationCode: "Z1-X01-Y01", Quantity: 1,
	}, "operario1")
	require.NoError(t, err)
	assert.Equal(t, 10, res.Quantity)
	assert.Equal(t, 10, s.stockAt(t, item.ID, shelf.ID))
}

func TestPutaway_ItemSerializado_SiempreUno(t *testing.T) {
	s := newScanHarness()
	ctx := context.Background()
	item := s.itemRepo.add(entity.Item{SKU: "PC-01", IsSerialized: true})
	s.registerTag(item, "QR-PC-01", 5)
	shelf := s.addLocation(t, "Z1-X01-Y01")

	res, err := s.ops.Putaway(ctx, dto.PutawayRequest{
		TagCode: "QR-PC-01", LocationCode: "Z1-X01-Y01", Quantity: 4,
	}, "operario1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Quantity, "serializado: cada escaneo mueve exactamente 1")
	assert.Equal(t, 1, s.stockAt(t, item.ID, shelf.ID))
}

func TestPutaway_EntradasVacias(t *testing.T) {
	s := newScanHarness()
	_, err := s.ops.Putaway(context.Background(), dto.PutawayRequest{TagCode: "", LocationCode: "Z1-X01-Y01"}, "op")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.ops.Putaway(context.Background(), dto.PutawayRequest{TagCode: "RF-1", LocationCode: "  "}, "op")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pick
// ──────────────────────────────────────────────────────────────────────────────

func (s *scanHarness) seedStock(t *testing.T, item *entity.Item, loc *entity.Location, qty int) {
	t.Helper()
	_, err := s.uc.ApplyMovement(context.Background(), ledger.MovementInput{
		Type: entity.MovementTypeIN, ItemID: item.ID, Quantity: qty, ToLocationID: &loc.ID,
	})
	require.NoError(t, err)
}

func TestPick_MueveHaciaElDestinoResuelto(t *testing.T) {
	s := newScanHarness()
	ctx := context.Background()
	item := s.itemRepo.add(entity.Item{SKU: "SENSOR-01"})
	s.registerTag(item, "RF-0002", 1)
	shelf := s.addLocation(t, "Z1-X01-Y01")
	s.seedStock(t, item, shelf, 5)

	res, err := s.ops.Pick(ctx, dto.PickRequest{
		LocationCode: "Z1-X01-Y01", TagCode: "RF-0002", Quantity: 2,
		DestinationType: "PROD",
	}, "operario2")
	require.NoError(t, err)

	assert.Equal(t, "DEST:PRODUCCION", res.ToLocation)
	assert.Equal(t, 3, s.stockAt(t, item.ID, shelf.ID))

	dest, err := s.locUC.Lookup(ctx, "DEST:PRODUCCION")
	require.NoError(t, err)
	assert.Equal(t, 2, s.stockAt(t, item.ID, dest.ID))
	s.checkInvariant(t, item.ID, shelf.ID)
	s.checkInvariant(t, item.ID, dest.ID)
}

func TestPick_StockInsuficiente_EsUnCheckDuro(t *testing.T) {
	s := newScanHarness()
	ctx := context.Background()
	item := s.itemRepo.add(entity.Item{SKU: "EJE-01"})
	s.registerTag(item, "RF-0003", 1)
	shelf := s.addLocation(t, "Z1-X01-Y01")
	s.seedStock(t, item, shelf, 2)
	movementsBefore := len(s.movRepo.movements)

	_, err := s.ops.Pick(ctx, dto.PickRequest{
		LocationCode: "Z1-X01-Y01", TagCode: "RF-0003", Quantity: 5,
		DestinationType: "TALLER",
	}, "operario2")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada se movió ni se registró: el check ocurre ANTES del ledger.
	assert.Equal(t, movementsBefore, len(s.movRepo.movements))
	assert.Equal(t, 2, s.stockAt(t, item.ID, shelf.ID))
}

func TestPick_DestinoInvalido(t *testing.T) {
	s := newScanHarness()
	ctx := context.Background()
	item := s.itemRepo.add(entity.Item{SKU: "EJE-02"})
	s.registerTag(item, "RF-0004", 1)
	shelf := s.addLocation(t, "Z1-X01-Y01")
	s.seedStock(t, item, shelf, 5)

	// WS sin referencia de estación.
	_, err := s.ops.Pick(ctx, dto.PickRequest{
		LocationCode: "Z1-X01-Y01", TagCode: "RF-0004", Quantity: 1,
		DestinationType: "WS",
	}, "op")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveDestinationCode(t *testing.T) {
	casos := []struct {
		destType, ref, want string
	}{
		{"PROD", "", "DEST:PRODUCCION"},
		{"prod", "ignorado", "DEST:PRODUCCION"},
		{"TALLER", "", "DEST:TALLER"},
		{"WS", "banco-3", "DEST:WS:BANCO-3"},
		{"WS", "", ""},
		{"ORDER", "of-123", "DEST:PEDIDO:OF-123"},
		{"ORDER", "", ""},
		{"CUSTOM", "muelle-2", "MUELLE-2"},
		{"CUSTOM", "", ""},
		{"OTRO", "x", ""},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, ledger.ResolveDestinationCode(c.destType, c.ref),
			"tipo=%s ref=%s", c.destType, c.ref)
	}
}
