package dto

// ReportStockLineDTO línea de stock dentro de un grupo.
type ReportStockLineDTO struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ReportByWarehouseRow stock agrupado por ubicación (almacén).
type ReportByWarehouseRow struct {
	LocationCode  string               `json:"location_code"`
	Zone          string               `json:"zone"`
	TotalQuantity int                  `json:"total_quantity"`
	LineCount     int                  `json:"line_count"`
	Items         []ReportStockLineDTO `json:"items"`
}

// ReportLocationLineDTO cantidad de un item en una ubicación concreta.
type ReportLocationLineDTO struct {
	LocationCode string `json:"location_code"`
	Quantity     int    `json:"quantity"`
}

// ReportByItemRow stock agrupado por item.
type ReportByItemRow struct {
	ItemID        int64                   `json:"item_id"`
	SKU           string                  `json:"sku"`
	Name          string                  `json:"name"`
	ModelOrType   string                  `json:"model_or_type"`
	TotalQuantity int                     `json:"total_quantity"`
	Locations     []ReportLocationLineDTO `json:"locations"`
}

// ReportByModelRow stock agrupado por modelo/tipo de item.
type ReportByModelRow struct {
	ModelOrType   string               `json:"model_or_type"`
	TotalQuantity int                  `json:"total_quantity"`
	ItemCount     int                  `json:"item_count"`
	Lines         []ReportStockLineDTO `json:"lines"`
}
