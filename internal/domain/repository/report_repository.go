package repository

import "context"

// StockRow fila plana de StockSnapshot × Item × Location para reportes.
type StockRow struct {
	ItemID       int64
	SKU          string
	ItemName     string
	ModelOrType  string
	LocationID   int64
	LocationCode string
	Zone         string
	Quantity     int
}

// ReportRepository consultas de solo lectura sobre el stock materializado.
// Sin invariantes propios más allá de "coincide con el ledger".
type ReportRepository interface {
	// StockRows filas con cantidad > 0, orden estable por ubicación y SKU.
	StockRows(ctx context.Context) ([]StockRow, error)
	// StockByItem filas con cantidad > 0 de un item, descendente por cantidad.
	StockByItem(ctx context.Context, itemID int64) ([]StockRow, error)
}
