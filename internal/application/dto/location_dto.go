package dto

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Code          string `json:"code"`
	Zone          string `json:"zone"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Z             *int   `json:"z,omitempty"`
	Type          string `json:"type"`
	CapacityUnits int    `json:"capacity_units"`
}

// BulkGenerateRequest body para POST /api/locations/bulk-generate.
// Z solo se incluye cuando z_from > 0 y z_to >= z_from.
type BulkGenerateRequest struct {
	Zone          string `json:"zone"`
	Type          string `json:"type"`
	XFrom         int    `json:"x_from"`
	XTo           int    `json:"x_to"`
	YFrom         int    `json:"y_from"`
	YTo           int    `json:"y_to"`
	ZFrom         int    `json:"z_from"`
	ZTo           int    `json:"z_to"`
	CapacityUnits int    `json:"capacity_units"`
}

// BulkGenerateResponse resultado de la generación masiva.
type BulkGenerateResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	Zone          string `json:"zone"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Z             *int   `json:"z,omitempty"`
	Type          string `json:"type"`
	CapacityUnits int    `json:"capacity_units"`
	IsBlocked     bool   `json:"is_blocked"`
}
