package entity

// Tipos de etiqueta física.
const (
	TagTypeBarcode = "BARCODE"
	TagTypeRFID    = "RFID"
	TagTypeQR      = "QR"
)

// Tag representa una etiqueta física escaneable (barcode/RFID/QR) asociada a
// exactamente un Item. PackQuantity es la cantidad de unidades que representa
// un solo escaneo (ej. caja de 10).
type Tag struct {
	ID           int64
	Code         string // único en todo el espacio de etiquetas
	TagType      string
	PackQuantity int // >= 1
	ItemID       int64
}
