package entity

import "time"

// Supplier representa un proveedor de repuestos.
type Supplier struct {
	ID         string
	Name       string
	CatalogURL string
	CreatedAt  time.Time
}
