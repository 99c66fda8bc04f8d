package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQty cantidad máxima por línea; las columnas de cantidad son INTEGER.
const MaxQty = math.MaxInt32

// ValidQty indica si q es una cantidad de línea aceptable (1..MaxQty).
func ValidQty(q int) bool {
	return q > 0 && q <= MaxQty
}

// OrderItem línea de un pedido. PartID es nil mientras la referencia del proveedor
// no se haya resuelto; en ese caso SupplierRef identifica la línea para el re-enlace.
type OrderItem struct {
	ID          string
	OrderID     string
	PartID      *string
	SupplierRef string
	Qty         int
	UnitPrice   *decimal.Decimal
	Currency    string
	CreatedAt   time.Time
}

// IsResolved indica si la línea ya tiene repuesto asignado.
func (i *OrderItem) IsResolved() bool {
	return i.PartID != nil && *i.PartID != ""
}

// Remaining devuelve la cantidad pendiente dado lo ya recibido (nunca negativa).
func (i *OrderItem) Remaining(received int) int {
	if r := i.Qty - received; r > 0 {
		return r
	}
	return 0
}
