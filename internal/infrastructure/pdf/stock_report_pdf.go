// Package pdf genera el relatório de estoque en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Produtos | Valor total | Sem estoque | Baixo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoria | Quantidade | Valor | %                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"golang.org/x/text/message"

	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

var _ ports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
	loc     *time.Location
}

// NewMarotoPDFGenerator construye el generador con formato numérico pt-BR.
// loc nil usa UTC.
func NewMarotoPDFGenerator(loc *time.Location) *MarotoPDFGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoPDFGenerator{
		printer: message.NewPrinter(language.BrazilianPortuguese),
		loc:     loc,
	}
}

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReportPDF(
	_ context.Context,
	report entity.StockReport,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(categoryHeaderRow())
	if len(report.Categories) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New(
			"Nenhuma categoria registrada",
			props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray},
		))))
	}
	for _, r := range g.categoryRows(report.Categories) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+generatedAt.In(g.loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) summaryRow(r entity.StockReport) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 6}),
		)
	}
	low := colorPrimary
	if r.LowStock > 0 || r.OutOfStock > 0 {
		low = colorAlert
	}
	return row.New(16).Add(
		cell("Total de produtos", g.printer.Sprintf("%d", r.TotalProducts), colorPrimary),
		cell("Valor total em estoque", g.money(r.TotalStockValue), colorPrimary),
		cell("Sem estoque", g.printer.Sprintf("%d", r.OutOfStock), low),
		cell("Estoque baixo", g.printer.Sprintf("%d", r.LowStock), low),
	)
}

func categoryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoria", 4, align.Left),
		h("Quantidade", 2, align.Right),
		h("Valor", 4, align.Right),
		h("%", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) categoryRows(cats []entity.CategoryShare) []core.Row {
	result := make([]core.Row, 0, len(cats))
	for _, c := range cats {
		name := c.Name
		if name == "" {
			name = "Sem categoria"
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(
				g.printer.Sprintf("%d", c.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(4).Add(text.New(
				g.money(c.Value),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				g.printer.Sprintf("%.1f%%", c.Percent.InexactFloat64()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// money formatea en reales: R$ 1.234,50
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("R$ %.2f", d.Round(2).InexactFloat64())
}
