package reports_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-wms/internal/application/reports"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

type fakeReportRepo struct {
	rows []repository.StockRow
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

func (f *fakeReportRepo) StockRows(_ context.Context) ([]repository.StockRow, error) {
	return f.rows, nil
}

func (f *fakeReportRepo) StockByItem(_ context.Context, itemID int64) ([]repository.StockRow, error) {
	var out []repository.StockRow
	for _, r := range f.rows {
		if r.ItemID == itemID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Tres items en tres ubicaciones; MOTOR-A repartido en dos huecos y TORN-M4
// sin modelo/tipo asignado.
func newUseCase() *reports.UseCase {
	return reports.NewUseCase(&fakeReportRepo{rows: []repository.StockRow{
		{ItemID: 1, SKU: "MOTOR-A", ItemName: "Motor A", ModelOrType: "Motor", LocationID: 10, LocationCode: "A-X01-Y01", Zone: "A", Quantity: 4},
		{ItemID: 1, SKU: "MOTOR-A", ItemName: "Motor A", ModelOrType: "Motor", LocationID: 11, LocationCode: "B-X02-Y01", Zone: "B", Quantity: 2},
		{ItemID: 2, SKU: "MOTOR-B", ItemName: "Motor B", ModelOrType: "Motor", LocationID: 10, LocationCode: "A-X01-Y01", Zone: "A", Quantity: 1},
		{ItemID: 3, SKU: "TORN-M4", ItemName: "Tornillo M4", LocationID: 12, LocationCode: "C-X01-Y01", Zone: "C", Quantity: 50},
	}})
}

func TestByWarehouse_AgrupaPorUbicacionOrdenadoPorCodigo(t *testing.T) {
	rows, err := newUseCase().ByWarehouse(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "A-X01-Y01", rows[0].LocationCode)
	assert.Equal(t, 5, rows[0].TotalQuantity, "4 de MOTOR-A + 1 de MOTOR-B")
	assert.Equal(t, 2, rows[0].LineCount)
	assert.Equal(t, "B-X02-Y01", rows[1].LocationCode)
	assert.Equal(t, "C-X01-Y01", rows[2].LocationCode)
}

func TestByItem_SumaTodasLasUbicaciones(t *testing.T) {
	rows, err := newUseCase().ByItem(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ordenado por SKU: MOTOR-A, MOTOR-B, TORN-M4.
	assert.Equal(t, "MOTOR-A", rows[0].SKU)
	assert.Equal(t, 6, rows[0].TotalQuantity)
	assert.Len(t, rows[0].Locations, 2)
	assert.Equal(t, "TORN-M4", rows[2].SKU)
	assert.Equal(t, 50, rows[2].TotalQuantity)
}

func TestByModel_AgrupaYSeparaLosSinTipo(t *testing.T) {
	rows, err := newUseCase().ByModel(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// "(sin tipo)" ordena antes que "Motor".
	assert.Equal(t, "(sin tipo)", rows[0].ModelOrType)
	assert.Equal(t, 1, rows[0].ItemCount)
	assert.Equal(t, 50, rows[0].TotalQuantity)

	motor := rows[1]
	assert.Equal(t, "Motor", motor.ModelOrType)
	assert.Equal(t, 2, motor.ItemCount)
	assert.Equal(t, 7, motor.TotalQuantity)
	require.Len(t, motor.Lines, 2)
	assert.Equal(t, "MOTOR-A", motor.Lines[0].SKU)
	assert.Equal(t, 6, motor.Lines[0].Quantity, "las dos ubicaciones sumadas")
}
