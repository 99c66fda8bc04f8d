package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/receiving"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/pdf"
)

func TestGenerateReceiptNote(t *testing.T) {
	g := pdf.NewReceiptNoteGenerator()
	out, err := g.GenerateReceiptNote(context.Background(), receiving.ReceiptNoteData{
		ReceiptID:    "3f1e9c2a-7b44-4c1d-9a55-0a1b2c3d4e5f",
		OrderID:      "a1b2c3d4-0000-4000-8000-000000000001",
		ExternalRef:  "OC-2024-118",
		Site:         "Bogotá",
		SupplierName: "Repuestos Andinos",
		ReceivedBy:   "bodega-1",
		ReceivedAt:   time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC),
		OrderStatus:  "partially_received",
		Lines: []receiving.ReceiptNoteLine{
			{SKU: "FIL-001", Label: "Filtro de aceite", Qty: 3, Condition: "new", Location: "A-01"},
			{SKU: "BUJ-002", Label: "Bujía", SupplierRef: "X-789", Qty: 1, Condition: "used", Location: "B-02"},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceiptNote_SinLineas(t *testing.T) {
	out, err := pdf.NewReceiptNoteGenerator().GenerateReceiptNote(context.Background(), receiving.ReceiptNoteData{
		ReceiptID: "r-1",
		Site:      "Medellín",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
