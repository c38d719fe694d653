package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-wms/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reporte sobre stock materializado (solo lectura).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Acepta pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

const stockRowQuery = `
	SELECT i.id, i.sku, i.name, i.model_or_type, l.id, l.code, l.zone, s.quantity
	FROM stock_snapshots s
	JOIN items i ON i.id = s.item_id
	JOIN locations l ON l.id = s.location_id
	WHERE s.quantity > 0`

func (r *ReportRepo) StockRows(ctx context.Context) ([]repository.StockRow, error) {
	query := stockRowQuery + ` ORDER BY l.code, i.sku`
	return r.list(ctx, query)
}

func (r *ReportRepo) StockByItem(ctx context.Context, itemID int64) ([]repository.StockRow, error) {
	query := stockRowQuery + ` AND s.item_id = $1 ORDER BY s.quantity DESC, l.code`
	return r.list(ctx, query, itemID)
}

func (r *ReportRepo) list(ctx context.Context, query string, args ...any) ([]repository.StockRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock rows: %w", err)
	}
	defer rows.Close()
	var list []repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		if err := rows.Scan(
			&row.ItemID, &row.SKU, &row.ItemName, &row.ModelOrType,
			&row.LocationID, &row.LocationCode, &row.Zone, &row.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
