package entity

// Tipos de ubicación.
const (
	LocationTypeShelf      = "Shelf"
	LocationTypeReception  = "Reception"
	LocationTypeOutput     = "Output"
	LocationTypeQuarantine = "Quarantine"
	LocationTypeSystem     = "System"
)

// Location representa una ubicación física de almacén con código único
// compuesto por zona y coordenadas (ej. "Z1-X01-Y02"), o una pseudo-ubicación
// de sistema (RECEPTION, DEST:...).
type Location struct {
	ID            int64
	Code          string // único, normalizado a mayúsculas
	Zone          string
	X             int
	Y             int
	Z             *int // opcional: tercera coordenada
	Type          string
	CapacityUnits int
	IsBlocked     bool
}
