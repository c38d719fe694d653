package reports

import (
	"context"
	"sort"

	"github.com/tu-usuario/almacen-wms/internal/application/dto"
	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

// Agrupación para items sin modelo/tipo asignado.
const noModelGroup = "(sin tipo)"

// UseCase reportes de solo lectura sobre el stock materializado, agrupado por
// almacén (ubicación), por item o por modelo/tipo. Sin invariantes propios:
// las filas son StockSnapshot × Item × Location con cantidad > 0.
type UseCase struct {
	repo repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ReportRepository) *UseCase {
	return &UseCase{repo: repo}
}

// ByWarehouse stock agrupado por ubicación, ordenado por código.
func (uc *UseCase) ByWarehouse(ctx context.Context) ([]dto.ReportByWarehouseRow, error) {
	rows, err := uc.repo.StockRows(ctx)
	if err != nil {
		return nil, err
	}
	groups := make(map[string]*dto.ReportByWarehouseRow)
	for _, r := range rows {
		g, ok := groups[r.LocationCode]
		if !ok {
			g = &dto.ReportByWarehouseRow{LocationCode: r.LocationCode, Zone: r.Zone}
			groups[r.LocationCode] = g
		}
		g.TotalQuantity += r.Quantity
		g.LineCount++
		g.Items = append(g.Items, dto.ReportStockLineDTO{SKU: r.SKU, Name: r.ItemName, Quantity: r.Quantity})
	}
	out := make([]dto.ReportByWarehouseRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationCode < out[j].LocationCode })
	return out, nil
}

// ByItem stock agrupado por item, ordenado por SKU.
func (uc *UseCase) ByItem(ctx context.Context) ([]dto.ReportByItemRow, error) {
	rows, err := uc.repo.StockRows(ctx)
	if err != nil {
		return nil, err
	}
	groups := make(map[int64]*dto.ReportByItemRow)
	for _, r := range rows {
		g, ok := groups[r.ItemID]
		if !ok {
			g = &dto.ReportByItemRow{ItemID: r.ItemID, SKU: r.SKU, Name: r.ItemName, ModelOrType: r.ModelOrType}
			groups[r.ItemID] = g
		}
		g.TotalQuantity += r.Quantity
		g.Locations = append(g.Locations, dto.ReportLocationLineDTO{LocationCode: r.LocationCode, Quantity: r.Quantity})
	}
	out := make([]dto.ReportByItemRow, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// ByModel stock agrupado por modelo/tipo de item, ordenado por grupo; dentro
// del grupo, una línea por item ordenada por SKU.
func (uc *UseCase) ByModel(ctx context.Context) ([]dto.ReportByModelRow, error) {
	rows, err := uc.repo.StockRows(ctx)
	if err != nil {
		return nil, err
	}
	type itemAgg struct {
		sku, name string
		qty       int
	}
	groups := make(map[string]map[int64]*itemAgg)
	for _, r := range rows {
		key := r.ModelOrType
		if key == "" {
			key = noModelGroup
		}
		if groups[key] == nil {
			groups[key] = make(map[int64]*itemAgg)
		}
		agg, ok := groups[key][r.ItemID]
		if !ok {
			agg = &itemAgg{sku: r.SKU, name: r.ItemName}
			groups[key][r.ItemID] = agg
		}
		agg.qty += r.Quantity
	}
	out := make([]dto.ReportByModelRow, 0, len(groups))
	for key, items := range groups {
		row := dto.ReportByModelRow{ModelOrType: key, ItemCount: len(items)}
		for _, agg := range items {
			row.TotalQuantity += agg.qty
			row.Lines = append(row.Lines, dto.ReportStockLineDTO{SKU: agg.sku, Name: agg.name, Quantity: agg.qty})
		}
		sort.Slice(row.Lines, func(i, j int) bool { return row.Lines[i].SKU < row.Lines[j].SKU })
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelOrType < out[j].ModelOrType })
	return out, nil
}
