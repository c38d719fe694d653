package dto

// RecordScanRequest body para POST /api/orders/:id/picklist/scan.
type RecordScanRequest struct {
	Code string `json:"code"`
}

// RecordScanResponse progreso del slot tras el escaneo.
type RecordScanResponse struct {
	SKU              string `json:"sku"`
	SlotPicked       int    `json:"slot_picked"`   // suma entre principal y alternativas
	SlotRequired     int    `json:"slot_required"`
	Satisfied        bool   `json:"satisfied"`
	AlreadySatisfied bool   `json:"already_satisfied"` // true: no se mutó nada
}

// PickListLocationDTO ubicación con stock para una línea.
type PickListLocationDTO struct {
	Code     string `json:"code"`
	Zone     string `json:"zone"`
	Quantity int    `json:"quantity"`
}

// PickListLineDTO disponibilidad y progreso de un item del slot
// (principal o alternativa).
type PickListLineDTO struct {
	ItemID         int64                 `json:"item_id"`
	SKU            string                `json:"sku"`
	Name           string                `json:"name"`
	ModelOrType    string                `json:"model_or_type"`
	IsPrimary      bool                  `json:"is_primary"`
	QuantityPicked int                   `json:"quantity_picked"`
	TotalAvailable int                   `json:"total_available"`
	Locations      []PickListLocationDTO `json:"locations"`
}

// PickListSlotDTO un slot del BOM: item principal + alternativas sustitutas.
type PickListSlotDTO struct {
	ComponentID      int64             `json:"component_id"`
	Notes            string            `json:"notes,omitempty"`
	QuantityRequired int               `json:"quantity_required"`
	QuantityPicked   int               `json:"quantity_picked"` // suma del slot
	Satisfied        bool              `json:"satisfied"`
	Lines            []PickListLineDTO `json:"lines"`
}

// PickListResponse lista de picking de una orden, en orden de ruta.
type PickListResponse struct {
	OrderID          int64             `json:"order_id"`
	MachineModelName string            `json:"machine_model_name"`
	Slots            []PickListSlotDTO `json:"slots"`
}

// MaterializeResponse resultado de materializar las líneas de picking.
type MaterializeResponse struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
}
