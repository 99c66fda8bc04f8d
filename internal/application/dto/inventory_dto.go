package dto

import "time"

// InventoryQuery filtros de GET /api/inventory; todos opcionales.
type InventoryQuery struct {
	Site      string `query:"site"`
	PartID    string `query:"part_id"`
	Condition string `query:"condition"`
	PageRequest
}

// InventoryRecordResponse existencia de un bucket (sede, repuesto, condición).
type InventoryRecordResponse struct {
	Site      string    `json:"site"`
	PartID    string    `json:"part_id"`
	Condition string    `json:"condition"`
	QtyOnHand int       `json:"qty_on_hand"`
	Location  string    `json:"location,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryListResponse lista de existencias.
type InventoryListResponse struct {
	Items []InventoryRecordResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// KnownLocationResponse ubicación fija del par (sede, repuesto), si existe.
type KnownLocationResponse struct {
	Site     string `json:"site"`
	PartID   string `json:"part_id"`
	Location string `json:"location,omitempty"`
	Known    bool   `json:"known"`
}
