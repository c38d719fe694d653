package dto

// CreateItemRequest body para POST /api/items (alta mínima idempotente por SKU).
type CreateItemRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Family       string `json:"family"`
	ModelOrType  string `json:"model_or_type"`
	Unit         string `json:"unit"`
	IsSerialized bool   `json:"is_serialized"`
	MaterialID   *int64 `json:"material_id,omitempty"`
	// Etiqueta opcional que se adjunta en el mismo alta. Si TagCode va vacío
	// se genera un código QR interno.
	TagCode      string `json:"tag_code"`
	TagType      string `json:"tag_type"`
	PackQuantity int    `json:"pack_quantity"`
}

// UpdateItemRequest body para PUT /api/items/:id.
type UpdateItemRequest struct {
	Name         *string `json:"name,omitempty"`
	Family       *string `json:"family,omitempty"`
	ModelOrType  *string `json:"model_or_type,omitempty"`
	Unit         *string `json:"unit,omitempty"`
	IsSerialized *bool   `json:"is_serialized,omitempty"`
	MaterialID   *int64  `json:"material_id,omitempty"`
}

// AttachTagRequest body para POST /api/items/:id/tags.
type AttachTagRequest struct {
	Code         string `json:"code"`
	TagType      string `json:"tag_type"`
	PackQuantity int    `json:"pack_quantity"`
}

// ItemResponse representación de un item.
type ItemResponse struct {
	ID           int64  `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Family       string `json:"family"`
	ModelOrType  string `json:"model_or_type"`
	Unit         string `json:"unit"`
	IsSerialized bool   `json:"is_serialized"`
	MaterialID   *int64 `json:"material_id,omitempty"`
}

// TagResponse representación de una etiqueta.
type TagResponse struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	TagType      string `json:"tag_type"`
	PackQuantity int    `json:"pack_quantity"`
	ItemID       int64  `json:"item_id"`
}

// ItemDetailResponse item con sus etiquetas.
type ItemDetailResponse struct {
	Item ItemResponse  `json:"item"`
	Tags []TagResponse `json:"tags"`
}
