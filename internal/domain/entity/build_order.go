package entity

import "time"

// Estados de una orden de fabricación.
const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "InProgress"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// BuildOrder orden de fabricación vinculada a un modelo de máquina.
type BuildOrder struct {
	ID             int64
	ExternalRef    string
	SerialNumber   string
	MachineModelID int64
	Status         string
	CreatedAt      time.Time
}

// OrderPickLine línea persistente de picking por (orden, item). Un slot del
// BOM queda satisfecho cuando la suma de QuantityPicked entre el item
// principal y todas sus alternativas alcanza QuantityRequired.
type OrderPickLine struct {
	ID               int64
	BuildOrderID     int64
	ItemID           int64
	QuantityRequired int
	QuantityPicked   int
}
