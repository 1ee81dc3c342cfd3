// Package pdf implementa ports.DocumentRenderer con Maroto v2.
//
// Layout común (A4 vertical):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO (centrado) + subtítulo (período o fecha)            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: encabezado con fondo + una fila por registro        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: pares etiqueta / valor                            │
//	└─────────────────────────────────────────────────────────────┘
//
// Los montos se muestran con exactamente dos decimales; no se aplica otro
// formato de moneda.
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strconv"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/application/ports"
	"github.com/jhoicas/orders-api/internal/domain/sales"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ ports.DocumentRenderer = (*MarotoRenderer)(nil)

// MarotoRenderer genera los PDF de reportes y dashboard.
type MarotoRenderer struct {
	author string
	labels labels
}

// NewMarotoRenderer construye el renderer. locale elige el idioma de las
// etiquetas (es | en); author se graba en los metadatos del documento.
func NewMarotoRenderer(locale language.Tag, author string) *MarotoRenderer {
	return &MarotoRenderer{author: author, labels: labelsFor(locale)}
}

// Titles plantillas de títulos en el idioma del renderer.
func (r *MarotoRenderer) Titles() ports.DocumentTitles { return r.labels.titles }

// RenderDeliveryReport tabla de pedidos del móvil + resumen. Sin pedidos, el
// promedio no se imprime.
func (r *MarotoRenderer) RenderDeliveryReport(_ context.Context, report *dto.DeliveryReportDTO, title string) ([]byte, error) {
	l := r.labels
	m := r.newDocument(title)

	m.AddRows(titleRows(title, fmt.Sprintf(l.period, report.Period.StartDate, report.Period.EndDate))...)

	cols := []column{
		{l.date, 2, align.Left},
		{l.customer, 2, align.Left},
		{l.address, 3, align.Left},
		{l.items, 1, align.Center},
		{l.subtotal, 1, align.Right},
		{l.fee, 1, align.Right},
		{l.orderTotal, 2, align.Right},
	}
	m.AddRows(headerRow(cols))
	for _, rw := range report.Rows {
		m.AddRows(dataRow(cols,
			rw.Date,
			rw.Customer.Name,
			rw.Customer.Address,
			strconv.Itoa(rw.ItemsQuantity),
			money(rw.ItemsSubtotal),
			money(rw.DeliveryFee),
			money(rw.Total),
		))
	}
	if len(report.Rows) == 0 {
		m.AddRows(noteRow(l.noData))
	}

	s := report.Summary
	summary := []pair{
		{l.totalAmount, money(s.TotalAmount)},
		{l.totalOrders, strconv.Itoa(s.OrderCount)},
		{l.totalItems, strconv.Itoa(s.TotalItemsQuantity)},
	}
	if s.OrderCount > 0 {
		summary = append(summary, pair{l.averageOrder, money(s.AverageOrderValue)})
	}
	m.AddRows(summaryRows(l.summary, summary)...)

	return generate(m)
}

// RenderDailySales ventas del día por móvil; los pedidos sin móvil van al final.
func (r *MarotoRenderer) RenderDailySales(_ context.Context, daily *dto.DailySalesDTO, title string) ([]byte, error) {
	l := r.labels
	m := r.newDocument(title)

	m.AddRows(titleRows(title, daily.Date)...)

	cols := []column{
		{l.truck, 6, align.Left},
		{l.orders, 3, align.Center},
		{l.totalSales, 3, align.Right},
	}
	m.AddRows(headerRow(cols))
	for _, key := range sortedTruckKeys(daily.TruckSales) {
		b := daily.TruckSales[key]
		name := l.unassigned
		if key.Assigned {
			name = fmt.Sprintf("%s %d", l.truck, key.ID)
		}
		m.AddRows(dataRow(cols, name, strconv.Itoa(b.OrderCount), money(b.TotalSales)))
	}
	if len(daily.TruckSales) == 0 {
		m.AddRows(noteRow(l.noData))
	}

	m.AddRows(summaryRows(l.summary, []pair{
		{l.totalOrders, strconv.Itoa(daily.TotalOrders)},
		{l.totalSales, money(daily.TotalSales)},
	})...)

	return generate(m)
}

// RenderDashboardSnapshot hoy, mes en curso (con su desglose por fecha) y contadores.
func (r *MarotoRenderer) RenderDashboardSnapshot(_ context.Context, s *dto.DashboardSnapshotDTO, title string) ([]byte, error) {
	l := r.labels
	m := r.newDocument(title)

	m.AddRows(titleRows(title, "")...)

	m.AddRows(summaryRows(l.today, []pair{
		{l.totalOrders, strconv.Itoa(s.Today.OrderCount)},
		{l.totalSales, money(s.Today.TotalSales)},
	})...)

	m.AddRows(summaryRows(l.currentMonth, []pair{
		{l.totalOrders, strconv.Itoa(s.Month.OrderCount)},
		{l.totalSales, money(s.Month.TotalSales)},
		{l.averageOrder, money(s.AverageOrderValue)},
	})...)

	if len(s.Month.DailySales) > 0 {
		cols := []column{
			{l.date, 6, align.Left},
			{l.orders, 3, align.Center},
			{l.totalSales, 3, align.Right},
		}
		m.AddRows(row.New(4))
		m.AddRows(headerRow(cols))
		for _, d := range s.Month.DailySales {
			m.AddRows(dataRow(cols, d.Date, strconv.Itoa(d.OrderCount), money(d.TotalSales)))
		}
	}

	m.AddRows(summaryRows(l.summary, []pair{
		{l.pendingOrders, strconv.Itoa(s.PendingOrders)},
		{l.totalTrucks, strconv.Itoa(s.TotalTrucks)},
	})...)

	return generate(m)
}

// ── Documento ─────────────────────────────────────────────────────────────────

func (r *MarotoRenderer) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(r.author, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

type column struct {
	label string
	size  int
	align align.Type
}

type pair struct {
	label string
	value string
}

// titleRows título centrado, subtítulo opcional y separador.
func titleRows(title, subtitle string) []core.Row {
	rows := []core.Row{
		row.New(12).Add(col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	if subtitle != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(subtitle, props.Text{Size: 11, Align: align.Center, Color: colorGray, Top: 1}),
		)))
	}
	return append(rows, line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.5}))
}

// headerRow encabezado de tabla con fondo de color.
func headerRow(cols []column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// dataRow una fila de tabla; values en el mismo orden que cols.
func dataRow(cols []column, values ...string) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		cells = append(cells, col.New(c.size).Add(text.New(values[i], props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cells...)
}

func noteRow(msg string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
	))
}

// summaryRows bloque con título y pares etiqueta / valor.
func summaryRows(heading string, pairs []pair) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(8).Add(col.New(12).Add(
			text.New(heading, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2}),
		)),
	}
	for _, p := range pairs {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(p.label+":", props.Text{Size: 9, Top: 1})),
			col.New(4).Add(text.New(p.value, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money redondea a dos decimales; es el único punto donde se redondea.
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// sortedTruckKeys móviles por ID ascendente y "sin móvil" al final.
func sortedTruckKeys(m map[sales.TruckKey]sales.Bucket) []sales.TruckKey {
	keys := make([]sales.TruckKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Assigned != keys[j].Assigned {
			return keys[i].Assigned
		}
		return keys[i].ID < keys[j].ID
	})
	return keys
}
