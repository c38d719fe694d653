package entity

import "time"

// Tipos de movimiento. El tipo es metadato de auditoría: el efecto sobre el
// stock lo determina únicamente la presencia de FromLocationID/ToLocationID.
const (
	MovementTypeIN       = "IN"
	MovementTypeOUT      = "OUT"
	MovementTypeTRANSFER = "TRANSFER"
	MovementTypeADJUST   = "ADJUST"
)

// Movement registro inmutable (append-only) de un traslado de cantidad entre
// ubicaciones. Nunca se actualiza ni se borra: es la pista de auditoría.
// Quantity siempre registra lo solicitado, aunque el snapshot haya aplicado
// el clamp a cero.
type Movement struct {
	ID             int64
	TransactionID  string // uuid que agrupa los movimientos de una misma operación lógica
	Type           string
	ItemID         int64
	Quantity       int // > 0
	FromLocationID *int64
	ToLocationID   *int64
	PerformedBy    string
	Notes          string
	TimestampUTC   time.Time
}
