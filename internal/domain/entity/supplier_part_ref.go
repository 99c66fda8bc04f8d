package entity

import "time"

// SupplierPartRef vincula el código de un proveedor con un repuesto del catálogo.
// Único por (SupplierID, SupplierRef).
type SupplierPartRef struct {
	ID          string
	PartID      string
	SupplierID  string
	SupplierRef string
	ProductURL  string
	CreatedAt   time.Time
}
