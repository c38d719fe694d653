package entity

import "time"

// Item representa un artículo del catálogo identificado por SKU.
// Puede estar vinculado a un Material de producción para compartir el mismo
// producto entre almacén y BOM. Las relaciones se guardan como ids (FK),
// nunca como punteros vivos; la navegación es siempre una consulta.
type Item struct {
	ID           int64
	SKU          string // único, en mayúsculas por convención
	Name         string
	Family       string
	ModelOrType  string // agrupación libre para reportes y componentes (ej. Motor, Sensor, PC)
	Unit         string // unidad de medida; por defecto "ud"
	IsSerialized bool   // si es serializado, cada escaneo mueve exactamente 1 unidad
	MaterialID   *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Material entidad mínima compartida con el BOM de producción.
type Material struct {
	ID   int64
	Name string
	Unit string
}
