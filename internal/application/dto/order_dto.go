package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders. La sede se indica siempre de forma explícita.
type CreateOrderRequest struct {
	SupplierID  string `json:"supplier_id" validate:"required"`
	Site        string `json:"site" validate:"required,max=120"`
	ExternalRef string `json:"external_ref" validate:"max=120"`
}

// AddOrderItemRequest body para POST /api/orders/:id/items.
// Se indica part_id, sku o supplier_ref; si solo hay supplier_ref y no se reconoce,
// la línea queda sin repuesto y se abre una referencia pendiente.
type AddOrderItemRequest struct {
	PartID      string           `json:"part_id,omitempty"`
	SKU         string           `json:"sku,omitempty"`
	SupplierRef string           `json:"supplier_ref,omitempty" validate:"max=120"`
	Qty         int              `json:"qty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Currency    string           `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          string              `json:"id"`
	SupplierID  string              `json:"supplier_id"`
	Site        string              `json:"site"`
	Status      string              `json:"status"`
	ExternalRef string              `json:"external_ref,omitempty"`
	OrderedAt   *time.Time          `json:"ordered_at,omitempty"`
	CreatedBy   string              `json:"created_by,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Items       []OrderItemResponse `json:"items,omitempty"`
}

// OrderItemResponse salida de una línea con su avance de recepción.
type OrderItemResponse struct {
	ID           string           `json:"id"`
	OrderID      string           `json:"order_id"`
	PartID       *string          `json:"part_id"`
	SupplierRef  string           `json:"supplier_ref,omitempty"`
	Qty          int              `json:"qty"`
	Received     int              `json:"received"`
	Remaining    int              `json:"remaining"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Currency     string           `json:"currency"`
	PendingRefID string           `json:"pending_ref_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// OrderItemListResponse líneas de un pedido.
type OrderItemListResponse struct {
	OrderID string              `json:"order_id"`
	Status  string              `json:"status"`
	Items   []OrderItemResponse `json:"items"`
}

// RemainingResponse cantidad pendiente de una línea.
type RemainingResponse struct {
	OrderItemID string `json:"order_item_id"`
	Ordered     int    `json:"ordered"`
	Received    int    `json:"received"`
	Remaining   int    `json:"remaining"`
}
