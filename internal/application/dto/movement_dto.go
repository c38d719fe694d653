package dto

import "time"

// ApplyMovementRequest body para POST /api/inventory/movements.
// El tipo es metadato de auditoría; el efecto lo determina la presencia de
// from_location_id / to_location_id.
type ApplyMovementRequest struct {
	Type           string `json:"type"`
	ItemID         int64  `json:"item_id"`
	Quantity       int    `json:"quantity"`
	FromLocationID *int64 `json:"from_location_id,omitempty"`
	ToLocationID   *int64 `json:"to_location_id,omitempty"`
	Notes          string `json:"notes"`
}

// PutawayRequest body para POST /api/inventory/putaway: guardar lo escaneado
// desde recepción en una ubicación destino.
type PutawayRequest struct {
	TagCode      string `json:"tag_code"`
	LocationCode string `json:"location_code"`
	Quantity     int    `json:"quantity"`
}

// PickRequest body para POST /api/inventory/pick: sacar stock de una
// ubicación hacia un destino (producción, taller, estación, pedido o código libre).
type PickRequest struct {
	LocationCode    string `json:"location_code"`
	TagCode         string `json:"tag_code"`
	Quantity        int    `json:"quantity"`
	DestinationType string `json:"destination_type"` // PROD | TALLER | WS | ORDER | CUSTOM
	DestinationRef  string `json:"destination_ref"`
}

// MovementResponse un movimiento del log de auditoría.
type MovementResponse struct {
	ID             int64     `json:"id"`
	TransactionID  string    `json:"transaction_id"`
	Type           string    `json:"type"`
	ItemID         int64     `json:"item_id"`
	Quantity       int       `json:"quantity"`
	FromLocationID *int64    `json:"from_location_id,omitempty"`
	ToLocationID   *int64    `json:"to_location_id,omitempty"`
	PerformedBy    string    `json:"performed_by"`
	Notes          string    `json:"notes"`
	TimestampUTC   time.Time `json:"timestamp_utc"`
}

// ScanMoveResponse resultado de putaway/pick.
type ScanMoveResponse struct {
	TransactionID string `json:"transaction_id"`
	SKU           string `json:"sku"`
	Quantity      int    `json:"quantity"`
	FromLocation  string `json:"from_location"`
	ToLocation    string `json:"to_location"`
}

// StockRowResponse fila de stock actual.
type StockRowResponse struct {
	ItemID       int64     `json:"item_id"`
	LocationID   int64     `json:"location_id"`
	Quantity     int       `json:"quantity"`
	UpdatedAtUTC time.Time `json:"updated_at_utc"`
}

// ConsistencyResponse verificación snapshot vs suma del ledger para un par.
type ConsistencyResponse struct {
	ItemID     int64 `json:"item_id"`
	LocationID int64 `json:"location_id"`
	LedgerSum  int   `json:"ledger_sum"`
	Snapshot   int   `json:"snapshot"`
	Consistent bool  `json:"consistent"`
}
