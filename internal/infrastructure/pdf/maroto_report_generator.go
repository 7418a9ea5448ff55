// Package pdf implementa la generación del kardex de movimientos en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega + código  │  Período del reporte            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: entradas / salidas / traslados / ajustes / neto    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Producto | Cambio | Saldo | Motivo    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementReport genera el PDF del kardex y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementReport(data report.MovementReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de movimientos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(data.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(data.Movements) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: bodega (izq) y período (der).
func headerRow(data report.MovementReportData) core.Row {
	periodo := fmt.Sprintf("%s — %s",
		data.PeriodStart.Format("02/01/2006"),
		data.PeriodEnd.Format("02/01/2006"),
	)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.WarehouseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+data.WarehouseCode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("KARDEX DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRows: bloque de totales del período por categoría.
func summaryRows(s dto.MovementSummaryResponse) []core.Row {
	pair := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	return []core.Row{
		row.New(12).Add(
			pair("Entradas", s.Receipts.String()),
			pair("Salidas", s.Issues.String()),
			pair("Bajas", s.Scrapped.String()),
		),
		row.New(12).Add(
			pair("Traslados recibidos", s.TransfersIn.String()),
			pair("Traslados enviados", s.TransfersOut.String()),
			pair("Ajustes (+/-)", s.PositiveAdjustments.String()+" / "+s.NegativeAdjustments.String()),
		),
		row.New(12).Add(
			col.New(8),
			col.New(4).Add(
				text.New("CAMBIO NETO", props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorPrimary,
				}),
				text.New(s.NetChange.String(), props.Text{
					Style: fontstyle.Bold, Size: 11, Top: 6, Color: colorPrimary,
				}),
			),
		),
	}
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cambio", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("Motivo", 3, align.Left),
	)
}

// tableDetailRows: una fila por movimiento.
func tableDetailRows(movements []dto.MovementResponse) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mv.PerformedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 7.5, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				mv.Type,
				props.Text{Size: 7.5, Align: align.Left, Top: 1},
			)),
			col.New(3).Add(text.New(
				mv.ProductID,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				mv.QuantityChange.String(),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				mv.NewQuantity.String(),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				mv.Reason,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
		))
	}
	return result
}
