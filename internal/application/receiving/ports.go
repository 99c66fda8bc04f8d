package receiving

import (
	"context"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando los repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Store) error) error
}

// InventoryLedger suma existencias dentro de la transacción de la recepción.
// Si retorna error, el llamador debe hacer rollback.
type InventoryLedger interface {
	UpsertInTx(ctx context.Context, tx repository.Store, key entity.InventoryKey, qty int, location string) (*entity.InventoryRecord, error)
}

// ReceiptNoteGenerator genera el acta de recepción en PDF.
type ReceiptNoteGenerator interface {
	GenerateReceiptNote(ctx context.Context, data ReceiptNoteData) ([]byte, error)
}

// ReceiptNoteData datos ya resueltos para imprimir el acta de recepción.
type ReceiptNoteData struct {
	ReceiptID    string
	OrderID      string
	ExternalRef  string
	Site         string
	SupplierName string
	ReceivedBy   string
	ReceivedAt   time.Time
	OrderStatus  string
	Lines        []ReceiptNoteLine
}

// ReceiptNoteLine línea del acta.
type ReceiptNoteLine struct {
	SKU         string
	Label       string
	SupplierRef string
	Qty         int
	Condition   string
	Location    string
}
