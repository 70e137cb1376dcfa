// Package pdf genera la hoja de costos de una receta y el reporte del libro de
// ingresos y gastos con Maroto v2.
//
// Layout de la hoja de costos (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la receta   │  Fechas                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Peso | Rend. | Peso ajust. | Precio | Costo│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
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
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/Costbook-api/internal/application/report"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
	"github.com/jhoicas/Costbook-api/internal/domain/entity"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 74, Blue: 38}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorIncome  = &props.Color{Red: 21, Green: 87, Blue: 36}
	colorExpense = &props.Color{Red: 114, Green: 28, Blue: 36}
)

const defaultFamily = "helvetica"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	fontFile string // TTF con glifos CJK; vacío = helvetica
}

// NewMarotoPDFGenerator construye el generador. Los nombres en chino solo se ven bien
// con una fuente UTF-8 (fontFile); sin ella se usa helvetica.
func NewMarotoPDFGenerator(fontFile string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{fontFile: fontFile}
}

func (g *MarotoPDFGenerator) newDocument(title string) (core.Maroto, error) {
	family := defaultFamily
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithTitle(title, true)

	if g.fontFile != "" {
		family = "costbook"
		fonts, err := repository.New().
			AddUTF8Font(family, fontstyle.Normal, g.fontFile).
			AddUTF8Font(family, fontstyle.Bold, g.fontFile).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente %s: %w", g.fontFile, err)
		}
		b = b.WithCustomFonts(fonts)
	}
	cfg := b.WithDefaultFont(&props.Font{Family: family, Size: 9}).Build()
	return maroto.New(cfg), nil
}

// RecipeCostSheetPDF hoja de costos de una receta.
func (g *MarotoPDFGenerator) RecipeCostSheetPDF(_ context.Context, sheet report.RecipeSheet) ([]byte, error) {
	if sheet.Recipe == nil {
		return nil, fmt.Errorf("pdf: receta vacía")
	}
	m, err := g.newDocument("Costo de receta: " + sheet.Recipe.Name)
	if err != nil {
		return nil, err
	}

	m.AddRows(recipeHeaderRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(
		header{"Material", 4, align.Left},
		header{"Peso (g)", 2, align.Right},
		header{"Rend.", 1, align.Center},
		header{"Peso ajust.", 2, align.Right},
		header{"Precio/g", 1, align.Right},
		header{"Costo", 2, align.Right},
	))
	names := sheet.Materials
	if len(names) == 0 {
		names = costing.SortedMaterials(sheet.Recipe.Lines)
	}
	for _, name := range names {
		l, ok := sheet.Recipe.Lines[name]
		if !ok {
			continue
		}
		yield := "—"
		if l.YieldRate != nil {
			yield = l.YieldRate.StringFixed(2)
		}
		m.AddRows(row.New(7).Add(
			cell(name, 4, align.Left),
			cell(costing.FormatAmount(l.Weight), 2, align.Right),
			cell(yield, 1, align.Center),
			cell(costing.FormatAmount(l.AdjustedWeight), 2, align.Right),
			cell(l.UnitPrice.String(), 1, align.Right),
			cell(sheet.Currency.Format(l.Cost), 2, align.Right),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2})),
		col.New(2).Add(text.New(sheet.Currency.Format(sheet.Recipe.TotalCost), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	))
	m.AddRows(footerRow(sheet.GeneratedAt.Format("2006-01-02 15:04")))

	return generate(m)
}

// LedgerReportPDF resumen, totales por categoría y detalle de movimientos.
func (g *MarotoPDFGenerator) LedgerReportPDF(_ context.Context, rep report.LedgerReport) ([]byte, error) {
	title := rep.Title
	if title == "" {
		title = "Libro de ingresos y gastos"
	}
	m, err := g.newDocument(title)
	if err != nil {
		return nil, err
	}

	m.AddRows(row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1})),
		col.New(4).Add(text.New(nonEmpty(rep.Period, "Todo el período"), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 3,
		})),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep))

	// Totales por categoría, cada una con su color.
	if len(rep.ByCategory) > 0 {
		m.AddRows(sectionRow("POR CATEGORÍA"))
		cats := make([]string, 0, len(rep.ByCategory))
		for c := range rep.ByCategory {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		palette := categoryPalette(len(cats))
		for i, c := range cats {
			t := rep.ByCategory[c]
			m.AddRows(row.New(6).Add(
				col.New(4).Add(text.New("■ "+c, props.Text{Size: 8, Color: palette[i], Left: 1, Top: 1})),
				col.New(4).Add(text.New("Ingresos "+rep.Currency.Format(t.Income), props.Text{Size: 8, Align: align.Right, Color: colorIncome, Top: 1})),
				col.New(4).Add(text.New("Gastos "+rep.Currency.Format(t.Expense), props.Text{Size: 8, Align: align.Right, Color: colorExpense, Top: 1, Right: 1})),
			))
		}
	}

	m.AddRows(sectionRow("MOVIMIENTOS"))
	m.AddRows(tableHeaderRow(
		header{"Fecha", 2, align.Left},
		header{"Tipo", 1, align.Center},
		header{"Categoría", 2, align.Left},
		header{"Descripción", 4, align.Left},
		header{"Monto", 3, align.Right},
	))
	for _, r := range rep.Records {
		color := colorExpense
		label := "Gasto"
		if r.Type == entity.RecordIncome {
			color, label = colorIncome, "Ingreso"
		}
		m.AddRows(row.New(6).Add(
			cell(r.Date.Format("2006-01-02"), 2, align.Left),
			col.New(1).Add(text.New(label, props.Text{Size: 8, Align: align.Center, Color: color, Top: 1})),
			cell(r.Category, 2, align.Left),
			cell(describe(r), 4, align.Left),
			col.New(3).Add(text.New(rep.Currency.Format(r.Amount), props.Text{Size: 8, Align: align.Right, Color: color, Top: 1, Right: 1})),
		))
	}
	m.AddRows(footerRow(rep.GeneratedAt.Format("2006-01-02 15:04")))

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func recipeHeaderRow(sheet report.RecipeSheet) core.Row {
	r := sheet.Recipe
	dates := "Creada: " + r.CreatedAt.Format("2006-01-02")
	if r.UpdatedAt != nil {
		dates += "   Actualizada: " + r.UpdatedAt.Format("2006-01-02")
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(r.Name, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d materiales", len(r.Lines)), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("HOJA DE COSTOS", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(dates, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func summaryRow(rep report.LedgerReport) core.Row {
	box := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: c, Top: 2}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 8}),
		)
	}
	netColor := colorIncome
	if rep.Summary.Net.IsNegative() {
		netColor = colorExpense
	}
	return row.New(18).Add(
		box("TOTAL INGRESOS", rep.Currency.Format(rep.Summary.TotalIncome), colorIncome),
		box("TOTAL GASTOS", rep.Currency.Format(rep.Summary.TotalExpense), colorExpense),
		box("NETO", rep.Currency.Format(rep.Summary.Net), netColor),
	)
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

type header struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow cabecera de tabla con fondo del color primario.
func tableHeaderRow(cols ...header) core.Row {
	cs := make([]core.Col, 0, len(cols))
	for _, h := range cols {
		cs = append(cs, col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cs...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func footerRow(generated string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Generado el "+generated, props.Text{Size: 6.5, Color: colorGray, Top: 4, Align: align.Right}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// categoryPalette n colores repartidos en el círculo cromático.
func categoryPalette(n int) []*props.Color {
	out := make([]*props.Color, 0, n)
	for i := 0; i < n; i++ {
		r, g, b := colorful.Hsv(float64(i)*360/float64(n), 0.65, 0.6).RGB255()
		out = append(out, &props.Color{Red: int(r), Green: int(g), Blue: int(b)})
	}
	return out
}

func describe(r *entity.LedgerRecord) string {
	s := r.Description
	if r.Buyer != "" {
		s += " · " + r.Buyer
	}
	if r.Location != "" {
		s += " @ " + r.Location
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
