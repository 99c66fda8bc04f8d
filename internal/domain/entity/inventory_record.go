package entity

import "time"

// InventoryKey identifica un bucket físico de inventario.
type InventoryKey struct {
	Site      string
	PartID    string
	Condition Condition
}

// SitePart devuelve la clave (sede, repuesto) a la que pertenece la ubicación.
func (k InventoryKey) SitePart() SitePart {
	return SitePart{Site: k.Site, PartID: k.PartID}
}

// SitePart agrupa los buckets de un repuesto en una sede; la ubicación es propiedad de este par.
type SitePart struct {
	Site   string
	PartID string
}

// InventoryRecord existencia actual de un repuesto en una sede y condición.
// Location se fija en la primera recepción y no se sobrescribe.
type InventoryRecord struct {
	Site      string
	PartID    string
	Condition Condition
	QtyOnHand int
	Location  string
	UpdatedAt time.Time
}

// Key devuelve la clave del registro.
func (r *InventoryRecord) Key() InventoryKey {
	return InventoryKey{Site: r.Site, PartID: r.PartID, Condition: r.Condition}
}
