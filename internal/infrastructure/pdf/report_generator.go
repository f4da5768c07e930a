// Package pdf genera el reporte analítico del inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + dataset   │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / categorías / stock promedio / valor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ABC: conteo por clase + tabla de productos                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ALERTAS: tabla Tipo | Código | Producto | Severidad | Valor│
//	│  FOOTER: supuesto de rotación                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	appanalytics "github.com/jhoicas/inventario-analitica/internal/application/analytics"
	"github.com/jhoicas/inventario-analitica/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// maxABCRows filas de la tabla ABC; el resto se resume en el conteo por clase.
const maxABCRows = 40

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateAnalyticsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateAnalyticsPDF(_ context.Context, rep appanalytics.AnalyticsReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte analítico de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep.Resumen))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CLASIFICACIÓN ABC"))
	m.AddRows(abcCountsRow(rep.ABC))
	m.AddRows(abcHeaderRow())
	m.AddRows(abcDetailRows(rep.ABC)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("ALERTAS (%d de %d detectadas)",
		len(rep.Alertas.Alertas), rep.Alertas.TotalAlertasDetectadas)))
	m.AddRows(alertHeaderRow())
	m.AddRows(alertDetailRows(rep.Alertas)...)
	m.AddRows(footerRows(rep.Alertas)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep appanalytics.AnalyticsReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE ANALÍTICO DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Dataset: "+nonEmpty(rep.Dataset, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+rep.GeneradoEn.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s inventory.Summary) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		kpi("Total productos", fmt.Sprintf("%d", s.TotalProductos)),
		kpi("Categorías", fmt.Sprintf("%d", s.Categorias)),
		kpi("Stock promedio", fmt.Sprintf("%.2f", s.StockPromedio)),
		kpi("Valor total", s.ValorTotalTexto),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func abcCountsRow(res inventory.ABCResult) core.Row {
	counts := map[string]int{}
	for _, it := range res.Detalle {
		counts[it.Clase]++
	}
	return row.New(6).Add(col.New(12).Add(text.New(
		fmt.Sprintf("A: %d   |   B: %d   |   C: %d   |   Capital en clase A: %.2f%%   |   Valor total: %s",
			counts[inventory.ClaseA], counts[inventory.ClaseB], counts[inventory.ClaseC],
			res.CapitalAPct, inventory.FormatMoney(res.TotalValor)),
		props.Text{Size: 8, Color: colorGray, Top: 1},
	)))
}

func headerCells(labels []string, sizes []int, aligns []align.Type) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: aligns[i], Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

func abcHeaderRow() core.Row {
	return headerCells(
		[]string{"Clase", "Código", "Producto", "Valor", "% Acum."},
		[]int{1, 2, 5, 2, 2},
		[]align.Type{align.Center, align.Left, align.Left, align.Right, align.Right},
	)
}

func abcDetailRows(res inventory.ABCResult) []core.Row {
	items := res.Detalle
	if len(items) > maxABCRows {
		items = items[:maxABCRows]
	}
	rows := make([]core.Row, 0, len(items)+1)
	for _, it := range items {
		rows = append(rows, row.New(5).Add(
			col.New(1).Add(text.New(it.Clase, props.Text{Size: 8, Align: align.Center, Style: fontstyle.Bold})),
			col.New(2).Add(text.New(it.Codigo, props.Text{Size: 8, Left: 1})),
			col.New(5).Add(text.New(it.Nombre, props.Text{Size: 8, Left: 1})),
			col.New(2).Add(text.New(inventory.FormatMoney(it.ValorTotal), props.Text{Size: 8, Align: align.Right, Right: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%.1f%%", it.ParticipacionAcum*100), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	if len(res.Detalle) > maxABCRows {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(
			fmt.Sprintf("… %d productos más", len(res.Detalle)-maxABCRows),
			props.Text{Size: 7, Color: colorGray, Left: 1},
		))))
	}
	return rows
}

func alertHeaderRow() core.Row {
	return headerCells(
		[]string{"Tipo", "Código", "Producto", "Severidad", "Valor"},
		[]int{3, 2, 3, 2, 2},
		[]align.Type{align.Left, align.Left, align.Left, align.Center, align.Right},
	)
}

func alertDetailRows(res inventory.AlertsResult) []core.Row {
	if len(res.Alertas) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin alertas para este inventario.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	rows := make([]core.Row, 0, len(res.Alertas))
	for _, a := range res.Alertas {
		sevColor := colorGray
		if a.Severidad == inventory.SeveridadAlta {
			sevColor = colorAlert
		}
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(a.Tipo, props.Text{Size: 8, Left: 1})),
			col.New(2).Add(text.New(a.Codigo, props.Text{Size: 8, Left: 1})),
			col.New(3).Add(text.New(a.Nombre, props.Text{Size: 8, Left: 1})),
			col.New(2).Add(text.New(a.Severidad, props.Text{Size: 8, Align: align.Center, Color: sevColor, Style: fontstyle.Bold})),
			col.New(2).Add(text.New(inventory.FormatMoney(a.PrioridadValor), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func footerRows(res inventory.AlertsResult) []core.Row {
	if res.SupuestoCapitalMuerto == "" {
		return nil
	}
	return []core.Row{
		row.New(3),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(8).Add(col.New(12).Add(
			text.New(res.SupuestoCapitalMuerto, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
