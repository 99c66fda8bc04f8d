package entity

import "time"

// PendingRef es una referencia de proveedor sin repuesto conocido, a la espera de que un
// administrador la apruebe o la rechace. Solo existe una por (SupplierID, SupplierRef);
// al resolverse se elimina.
type PendingRef struct {
	ID          string
	SupplierID  string
	SupplierRef string
	ProductURL  string
	Note        string
	CreatedBy   string
	CreatedAt   time.Time
}
