package picklist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-wms/internal/application/picklist"
	"github.com/tu-usuario/almacen-wms/internal/domain"
	"github.com/tu-usuario/almacen-wms/internal/domain/entity"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[int64]*entity.BuildOrder
}

var _ repository.BuildOrderRepository = (*fakeOrderRepo)(nil)

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*entity.BuildOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

type fakeBOMRepo struct {
	models map[int64]*entity.MachineModel
	slots  map[int64][]*repository.ComponentSlot
}

var _ repository.BOMRepository = (*fakeBOMRepo)(nil)

func (f *fakeBOMRepo) GetModel(_ context.Context, id int64) (*entity.MachineModel, error) {
	m, ok := f.models[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeBOMRepo) Slots(_ context.Context, machineModelID int64) ([]*repository.ComponentSlot, error) {
	return f.slots[machineModelID], nil
}

type lineKey struct{ order, item int64 }

type fakePickLineRepo struct {
	nextID int64
	lines  map[lineKey]*entity.OrderPickLine
	// failConflicts fuerza N fallos de concurrencia consecutivos en UpdatePicked.
	failConflicts int
}

var _ repository.PickLineRepository = (*fakePickLineRepo)(nil)

func newFakePickLineRepo() *fakePickLineRepo {
	return &fakePickLineRepo{nextID: 1, lines: make(map[lineKey]*entity.OrderPickLine)}
}

func (f *fakePickLineRepo) Create(_ context.Context, line *entity.OrderPickLine) error {
	key := lineKey{line.BuildOrderID, line.ItemID}
	if _, ok := f.lines[key]; ok {
		return domain.ErrDuplicate
	}
	line.ID = f.nextID
	f.nextID++
	cp := *line
	f.lines[key] = &cp
	return nil
}

func (f *fakePickLineRepo) ListByOrder(_ context.Context, orderID int64) ([]*entity.OrderPickLine, error) {
	var out []*entity.OrderPickLine
	for _, l := range f.lines {
		if l.BuildOrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePickLineRepo) GetForUpdate(_ context.Context, orderID, itemID int64) (*entity.OrderPickLine, error) {
	l, ok := f.lines[lineKey{orderID, itemID}]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakePickLineRepo) ListByOrderForUpdate(ctx context.Context, orderID int64) ([]*entity.OrderPickLine, error) {
	return f.ListByOrder(ctx, orderID)
}

func (f *fakePickLineRepo) UpdatePicked(_ context.Context, line *entity.OrderPickLine) error {
	if f.failConflicts > 0 {
		f.failConflicts--
		return domain.ErrConflict
	}
	key := lineKey{line.BuildOrderID, line.ItemID}
	if _, ok := f.lines[key]; !ok {
		return domain.ErrNotFound
	}
	cp := *line
	f.lines[key] = &cp
	return nil
}

type fakeItemRepo struct {
	items map[int64]*entity.Item
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func (f *fakeItemRepo) Create(_ context.Context, item *entity.Item) error { return nil }

func (f *fakeItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	for _, it := range f.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *entity.Item) error { return nil }

func (f *fakeItemRepo) Search(_ context.Context, query string, limit int) ([]*entity.Item, error) {
	return nil, nil
}

func (f *fakeItemRepo) CountReferences(_ context.Context, itemID int64) ([]domain.RefCount, error) {
	return nil, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id int64) error { return nil }

type fakeReportRepo struct {
	// stock por item: filas con ubicación y cantidad.
	rows map[int64][]repository.StockRow
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

func (f *fakeReportRepo) StockRows(_ context.Context) ([]repository.StockRow, error) {
	var out []repository.StockRow
	for _, rows := range f.rows {
		out = append(out, rows...)
	}
	return out, nil
}

func (f *fakeReportRepo) StockByItem(_ context.Context, itemID int64) ([]repository.StockRow, error) {
	return f.rows[itemID], nil
}

type fakeResolver struct {
	byCode map[string]*entity.Item
}

var _ picklist.CodeResolver = (*fakeResolver)(nil)

func (f *fakeResolver) ResolveByScan(_ context.Context, code string) (*entity.Item, error) {
	it, ok := f.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

// fakeTxRunner pasacorriente, sin transacción real.
type fakeTxRunner struct {
	pickRepo *fakePickLineRepo
}

var _ picklist.TxRunner = (*fakeTxRunner)(nil)

func (f *fakeTxRunner) RunPickList(_ context.Context, fn func(pickRepo repository.PickLineRepository) error) error {
	return fn(f.pickRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés: una orden con un slot de 2 unidades (principal + 1 alternativa) y un
// slot de 1 unidad sin alternativas.
// ──────────────────────────────────────────────────────────────────────────────

const (
	orderID     = int64(10)
	modelID     = int64(20)
	primaryID   = int64(1) // MOTOR-A, slot de 2
	altID       = int64(2) // MOTOR-B, alternativa del slot
	soloID      = int64(3) // SENSOR-X, slot de 1
	unrelatedID = int64(9) // TORN-M4, fuera del BOM
)

type harness struct {
	uc       *picklist.UseCase
	pickRepo *fakePickLineRepo
	reports  *fakeReportRepo
}

func newHarness() *harness {
	orders := &fakeOrderRepo{orders: map[int64]*entity.BuildOrder{
		orderID: {ID: orderID, ExternalRef: "OF-123", MachineModelID: modelID, Status: entity.OrderStatusInProgress, CreatedAt: time.Now()},
	}}
	bom := &fakeBOMRepo{
		models: map[int64]*entity.MachineModel{
			modelID: {ID: modelID, Name: "Modelo X", Active: true},
		},
		slots: map[int64][]*repository.ComponentSlot{
			modelID: {
				{
					Component:    entity.MachineModelComponent{ID: 100, MachineModelID: modelID, ItemID: primaryID, Quantity: 2},
					Alternatives: []entity.ComponentAlternative{{ID: 200, ComponentID: 100, ItemID: altID, SortOrder: 1}},
				},
				{
					Component: entity.MachineModelComponent{ID: 101, MachineModelID: modelID, ItemID: soloID, Quantity: 1},
				},
			},
		},
	}
	items := &fakeItemRepo{items: map[int64]*entity.Item{
		primaryID:   {ID: primaryID, SKU: "MOTOR-A", Name: "Motor A", ModelOrType: "Motor"},
		altID:       {ID: altID, SKU: "MOTOR-B", Name: "Motor B", ModelOrType: "Motor"},
		soloID:      {ID: soloID, SKU: "SENSOR-X", Name: "Sensor X", ModelOrType: "Sensor"},
		unrelatedID: {ID: unrelatedID, SKU: "TORN-M4", Name: "Tornillo M4"},
	}}
	reports := &fakeReportRepo{rows: map[int64][]repository.StockRow{
		primaryID: {{ItemID: primaryID, SKU: "MOTOR-A", LocationCode: "B-X01-Y01", Zone: "B", Quantity: 4}},
		altID:     {{ItemID: altID, SKU: "MOTOR-B", LocationCode: "A-X01-Y01", Zone: "A", Quantity: 2}},
		// SENSOR-X sin stock en ninguna ubicación.
	}}
	resolver := &fakeResolver{byCode: map[string]*entity.Item{
		"MOTOR-A":  items.items[primaryID],
		"MOTOR-B":  items.items[altID],
		"SENSOR-X": items.items[soloID],
		"TORN-M4":  items.items[unrelatedID],
	}}
	pickRepo := newFakePickLineRepo()
	uc := picklist.NewUseCase(&fakeTxRunner{pickRepo: pickRepo}, orders, bom, pickRepo, items, reports, resolver)
	return &harness{uc: uc, pickRepo: pickRepo, reports: reports}
}

// ──────────────────────────────────────────────────────────────────────────────
// Materialización
// ──────────────────────────────────────────────────────────────────────────────

func TestMaterializePickLines_CreaUnaLineaPorItemDeCadaSlot(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	res, err := h.uc.MaterializePickLines(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created, "principal + alternativa + slot simple")
	assert.Equal(t, 0, res.Existing)

	// El requerido se duplica entre principal y alternativa (sustitutos).
	primary := h.pickRepo.lines[lineKey{orderID, primaryID}]
	alt := h.pickRepo.lines[lineKey{orderID, altID}]
	require.NotNil(t, primary)
	require.NotNil(t, alt)
	assert.Equal(t, 2, primary.QuantityRequired)
	assert.Equal(t, 2, alt.QuantityRequired)
	assert.Equal(t, 0, primary.QuantityPicked)
}

func TestMaterializePickLines_EsIdempotente(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.uc.MaterializePickLines(ctx, orderID)
	require.NoError(t, err)

	// Progreso previo que NO debe resetearse.
	line := h.pickRepo.lines[lineKey{orderID, primaryID}]
	line.QuantityPicked = 1

	res, err := h.uc.MaterializePickLines(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 3, res.Existing)
	assert.Equal(t, 1, h.pickRepo.lines[lineKey{orderID, primaryID}].QuantityPicked)
}

func TestMaterializePickLines_OrdenInexistente(t *testing.T) {
	h := newHarness()
	_, err := h.uc.MaterializePickLines(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de escaneos: alternativas sustitutas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordScan_LaAlternativaSatisfaceElSlot(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.uc.MaterializePickLines(ctx, orderID)
	require.NoError(t, err)

	// Dos escaneos de la ALTERNATIVA completan un slot que requiere 2.
	first, err := h.uc.RecordScan(ctx, orderID, "MOTOR-B")
	require.NoError(t, err)
	assert.Equal(t, 1, first.SlotPicked)
	assert.Equal(t, 2, first.SlotRequired)
	assert.False(t, first.Satisfied)

	second, err := h.uc.RecordScan(ctx, orderID, "MOTOR-B")
	require.NoError(t, err)
	assert.Equal(t, 2, second.SlotPicked)
	assert.True(t, second.Satisfied)
	assert.False(t, second.AlreadySatisfied)

	// El progreso quedó en la línea de la alternativa; la principal intacta.
	assert.Equal(t, 2, h.pickRepo.lines[lineKey{orderID, altID}].QuantityPicked)
	assert.Equal(t, 0, h.pickRepo.lines[lineKey{orderID, primaryID}].QuantityPicked)
}

func TestRecordScan_MezclaPrincipalYAlternativa(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	// Sin materialización previa: las líneas se crean al vuelo.
	_, err := h.uc.RecordScan(ctx, orderID, "MOTOR-A")
	require.NoError(t, err)
	res, err := h.uc.RecordScan(ctx, orderID, "MOTOR-B")
	require.NoError(t, err)
	assert.Equal(t, 2, res.SlotPicked, "la suma del slot cruza principal y alternativas")
	assert.True(t, res.Satisfied)
}

func TestRecordScan_SlotSatisfecho_NoMutaNada(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.uc.MaterializePickLines(ctx, orderID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = h.uc.RecordScan(ctx, orderID, "MOTOR-A")
		require.NoError(t, err)
	}

	res, err := h.uc.RecordScan(ctx, orderID, "MOTOR-A")
	require.NoError(t, err)
	assert.True(t, res.AlreadySatisfied)
	assert.Equal(t, 2, res.SlotPicked, "el sobrante no se registra")
	assert.Equal(t, 2, h.pickRepo.lines[lineKey{orderID, primaryID}].QuantityPicked)

	// Tampoco con la alternativa una vez el slot está completo.
	res, err = h.uc.RecordScan(ctx, orderID, "MOTOR-B")
	require.NoError(t, err)
	assert.True(t, res.AlreadySatisfied)
	assert.Equal(t, 0, h.pickRepo.lines[lineKey{orderID, altID}].QuantityPicked)
}

func TestRecordScan_ItemFueraDeLaLista(t *testing.T) {
	h := newHarness()
	_, err := h.uc.RecordScan(context.Background(), orderID, "TORN-M4")
	assert.ErrorIs(t, err, domain.ErrNotOnPickList)
}

func TestRecordScan_CodigoDesconocido(t *testing.T) {
	h := newHarness()
	_, err := h.uc.RecordScan(context.Background(), orderID, "NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintento ante conflicto de concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordScan_ConflictoUnaVez_ReintentaYGana(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.uc.MaterializePickLines(ctx, orderID)
	require.NoError(t, err)

	h.pickRepo.failConflicts = 1
	res, err := h.uc.RecordScan(ctx, orderID, "SENSOR-X")
	require.NoError(t, err, "un solo conflicto se absorbe con el reintento")
	assert.Equal(t, 1, res.SlotPicked)
	assert.True(t, res.Satisfied)
}

func TestRecordScan_ConflictoPersistente_AgotaElReintento(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.uc.MaterializePickLines(ctx, orderID)
	require.NoError(t, err)

	h.pickRepo.failConflicts = 2
	_, err = h.uc.RecordScan(ctx, orderID, "SENSOR-X")
	assert.ErrorIs(t, err, domain.ErrRetryExhausted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lista de picking con disponibilidad y orden de ruta
// ──────────────────────────────────────────────────────────────────────────────

func TestGetPickList_DisponibilidadYOrdenDeRuta(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	res, err := h.uc.GetPickList(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "Modelo X", res.MachineModelName)
	require.Len(t, res.Slots, 2)

	// El slot del motor (con stock en zona A vía la alternativa) va antes que
	// el del sensor (sin stock en ninguna parte).
	motorSlot := res.Slots[0]
	sensorSlot := res.Slots[1]
	assert.Equal(t, int64(100), motorSlot.ComponentID)
	assert.Equal(t, int64(101), sensorSlot.ComponentID)

	// Dentro del slot, la alternativa con stock en zona A ordena antes que el
	// principal con stock en zona B.
	require.Len(t, motorSlot.Lines, 2)
	assert.Equal(t, "MOTOR-B", motorSlot.Lines[0].SKU)
	assert.Equal(t, 2, motorSlot.Lines[0].TotalAvailable)
	assert.False(t, motorSlot.Lines[0].IsPrimary)
	assert.Equal(t, "MOTOR-A", motorSlot.Lines[1].SKU)
	assert.True(t, motorSlot.Lines[1].IsPrimary)

	// Sin stock: disponibilidad cero y sin ubicaciones.
	require.Len(t, sensorSlot.Lines, 1)
	assert.Equal(t, 0, sensorSlot.Lines[0].TotalAvailable)
	assert.Empty(t, sensorSlot.Lines[0].Locations)

	// GetPickList materializa de paso.
	assert.Len(t, h.pickRepo.lines, 3)
}

func TestGetPickList_ReflejaElProgreso(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.uc.MaterializePickLines(ctx, orderID)
	require.NoError(t, err)
	_, err = h.uc.RecordScan(ctx, orderID, "MOTOR-B")
	require.NoError(t, err)

	res, err := h.uc.GetPickList(ctx, orderID)
	require.NoError(t, err)

	found := false
	for _, slot := range res.Slots {
		if slot.ComponentID == 100 {
			found = true
			assert.Equal(t, 1, slot.QuantityPicked)
			assert.Equal(t, 2, slot.QuantityRequired)
			assert.False(t, slot.Satisfied)
		}
	}
	require.True(t, found, "el slot del motor debe estar en la lista")
}
