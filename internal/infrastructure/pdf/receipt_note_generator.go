// Package pdf genera el acta de recepción de mercancía (goods-received note) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + Sede     │  N° Recepción + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PEDIDO: ID / Ref. externa / Estado tras la recepción        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Descripción | Ref. prov | Cond | Ubic.  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del ID de recepción + firma de quien recibe      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Repuestos-api/internal/application/receiving"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var conditionLabels = map[string]string{
	"new":         "Nuevo",
	"refurbished": "Reacond.",
	"used":        "Usado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ receiving.ReceiptNoteGenerator = (*ReceiptNoteGenerator)(nil)

// ReceiptNoteGenerator implementa receiving.ReceiptNoteGenerator usando Maroto v2.
type ReceiptNoteGenerator struct{}

// NewReceiptNoteGenerator construye el generador.
func NewReceiptNoteGenerator() *ReceiptNoteGenerator { return &ReceiptNoteGenerator{} }

// GenerateReceiptNote genera el PDF y devuelve sus bytes.
func (g *ReceiptNoteGenerator) GenerateReceiptNote(_ context.Context, data receiving.ReceiptNoteData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de recepción "+shortID(data.ReceiptID), true).
		WithAuthor(nonEmpty(data.ReceivedBy, "Repuestos API"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(data.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Lines))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: proveedor + sede (izq) y N° de recepción + fecha (der).
func headerRow(data receiving.ReceiptNoteData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.SupplierName, "Proveedor"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sede: "+data.Site, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ACTA DE RECEPCIÓN DE MERCANCÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(data.ReceiptID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+data.ReceivedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func orderRow(data receiving.ReceiptNoteData) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("ID: %s   |   Ref. externa: %s   |   Estado: %s",
				data.OrderID,
				nonEmpty(data.ExternalRef, "-"),
				nonEmpty(data.OrderStatus, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Ref. proveedor", 2, align.Left),
		h("Condición", 1, align.Center),
		h("Ubicación", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea recibida.
func tableDetailRows(lines []receiving.ReceiptNoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		cond := conditionLabels[l.Condition]
		if cond == "" {
			cond = l.Condition
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Qty), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(l.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(l.Label, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(l.SupplierRef, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(cond, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(l.Location, "-"), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(lines []receiving.ReceiptNoteLine) core.Row {
	units := 0
	for _, l := range lines {
		units += l.Qty
	}
	return row.New(8).Add(
		col.New(6),
		col.New(6).Add(text.New(fmt.Sprintf("Líneas: %d   |   Unidades recibidas: %d", len(lines), units), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// footerRow: QR con el ID completo de la recepción + espacio de firma.
func footerRow(data receiving.ReceiptNoteData) core.Row {
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(data.ReceiptID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Escanee el código para consultar la recepción.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Recibido por: "+nonEmpty(data.ReceivedBy, "-"), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 20, Left: 3,
			}),
			text.New("Firma: ______________________________", props.Text{
				Size: 9, Top: 32, Left: 3,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
