package entity

import "time"

// StockSnapshot cantidad actual materializada de un item en una ubicación.
// Vista derivada, no fuente de verdad: debe ser siempre igual a la suma con
// signo de los movimientos de ese par (item, ubicación). Nunca negativa.
type StockSnapshot struct {
	ItemID       int64
	LocationID   int64
	Quantity     int // >= 0
	UpdatedAtUTC time.Time
}
