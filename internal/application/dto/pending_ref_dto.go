package dto

import "time"

// RaisePendingRequest body para POST /api/pending-refs.
type RaisePendingRequest struct {
	SupplierID  string `json:"supplier_id" validate:"required"`
	SupplierRef string `json:"supplier_ref" validate:"required,max=120"`
	ProductURL  string `json:"product_url,omitempty" validate:"omitempty,url"`
	Note        string `json:"note,omitempty" validate:"max=500"`
}

// ApprovePendingRequest body para POST /api/pending-refs/:id/approve (part_id o sku).
type ApprovePendingRequest struct {
	PartID     string `json:"part_id,omitempty"`
	SKU        string `json:"sku,omitempty"`
	ProductURL string `json:"product_url,omitempty" validate:"omitempty,url"`
}

// PendingRefResponse salida de una referencia pendiente. Created=false indica que ya existía.
type PendingRefResponse struct {
	ID          string    `json:"id"`
	SupplierID  string    `json:"supplier_id"`
	SupplierRef string    `json:"supplier_ref"`
	ProductURL  string    `json:"product_url,omitempty"`
	Note        string    `json:"note,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Created     bool      `json:"created"`
}

// PendingRefListResponse lista paginada de pendientes.
type PendingRefListResponse struct {
	Items []PendingRefResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// SupplierPartRefResponse referencia canónica proveedor -> repuesto.
type SupplierPartRefResponse struct {
	ID          string    `json:"id"`
	PartID      string    `json:"part_id"`
	SupplierID  string    `json:"supplier_id"`
	SupplierRef string    `json:"supplier_ref"`
	ProductURL  string    `json:"product_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ApprovePendingResponse resultado de aprobar: la referencia creada y el re-enlace aplicado.
type ApprovePendingResponse struct {
	SupplierPartRef SupplierPartRefResponse `json:"supplier_part_ref"`
	RelinkedItems   int                     `json:"relinked_items"`
	AffectedOrders  []string                `json:"affected_orders"`
}
