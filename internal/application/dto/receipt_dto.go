package dto

import "time"

// PostReceiptRequest body para POST /api/orders/:id/receipts.
type PostReceiptRequest struct {
	Site  string               `json:"site" validate:"required"`
	Lines []ReceiptLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ReceiptLineRequest línea a recibir. Location solo se usa si el repuesto aún no tiene
// ubicación en la sede.
type ReceiptLineRequest struct {
	OrderItemID string `json:"order_item_id" validate:"required"`
	Qty         int    `json:"qty"`
	Condition   string `json:"condition" validate:"required"`
	Location    string `json:"location,omitempty" validate:"max=60"`
}

// ReceiptResponse salida de una recepción.
type ReceiptResponse struct {
	ID          string                `json:"id"`
	OrderID     string                `json:"order_id"`
	Site        string                `json:"site"`
	CreatedBy   string                `json:"created_by,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	OrderStatus string                `json:"order_status,omitempty"`
	Items       []ReceiptItemResponse `json:"items"`
}

// ReceiptItemResponse línea recibida con la ubicación efectivamente asignada.
type ReceiptItemResponse struct {
	ID          string `json:"id"`
	OrderItemID string `json:"order_item_id"`
	PartID      string `json:"part_id"`
	Qty         int    `json:"qty"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
}

// ReceiptListResponse recepciones de un pedido.
type ReceiptListResponse struct {
	OrderID  string            `json:"order_id"`
	Receipts []ReceiptResponse `json:"receipts"`
}
