// Package pdf genera el estado de cuenta del cliente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Portal + título   │  Cliente + fecha de corte        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TARJETAS: Facturado | Pagado | Saldo                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA COTIZACIONES: N° | Fecha | Estado | Total             │
//	│  TABLA PAGOS: Fecha | Medio | Factura | Monto                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: generado el ...                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

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

	appledger "github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/domain/entity"
	"github.com/jhoicas/ironhub-api/internal/domain/ledger"
)

var _ appledger.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorHeader  = &props.Color{Red: 0, Green: 70, Blue: 127}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ledger.StatementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	portalName string
}

// NewMarotoPDFGenerator construye el generador. portalName aparece en el encabezado.
func NewMarotoPDFGenerator(portalName string) *MarotoPDFGenerator {
	if portalName == "" {
		portalName = "American Iron Portal"
	}
	return &MarotoPDFGenerator{portalName: portalName}
}

// GenerateStatement genera el estado de cuenta y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatement(s *appledger.AccountSnapshot) ([]byte, error) {
	if s == nil || s.Customer == nil {
		return nil, fmt.Errorf("pdf: snapshot sin cliente")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Account Statement", true).
		WithAuthor(g.portalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(s.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Quotes & Invoices"))
	m.AddRows(tableHeader([]string{"Number", "Date", "Status", "Total"}))
	if len(s.Quotes) == 0 {
		m.AddRows(emptyRow("No quotes issued."))
	}
	for _, q := range s.Quotes {
		m.AddRows(quoteRow(q))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("Payments Received"))
	m.AddRows(tableHeader([]string{"Date", "Method", "Invoice", "Amount"}))
	if len(s.Payments) == 0 {
		m.AddRows(emptyRow("No payments recorded."))
	}
	for _, p := range s.Payments {
		m.AddRows(paymentRow(p))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: portal y título (izq), cliente y fecha de corte (der).
func (g *MarotoPDFGenerator) headerRow(s *appledger.AccountSnapshot) core.Row {
	c := s.Customer
	return row.New(20).Add(
		col.New(6).Add(
			text.New(g.portalName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ACCOUNT STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(contactLine(c), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("As of "+s.GeneratedAt.Format("Jan 2, 2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: tarjetas de facturado, pagado y saldo.
func summaryRow(c *entity.Customer) core.Row {
	card := func(label string, value decimal.Decimal, highlight bool) core.Col {
		valueProps := props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 7}
		if highlight {
			valueProps.Color = colorPrimary
		}
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
			text.New(formatMoney(value), valueProps),
		)
	}
	return row.New(16).Add(
		card("Total Billed", c.TotalBilled, false),
		card("Total Paid", c.TotalPaid, false),
		card("Balance Due", ledger.Balance(c), true),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
	))
}

// tableHeader: cabecera de 4 columnas con fondo de color.
func tableHeader(labels []string) core.Row {
	sizes := []int{3, 3, 3, 3}
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		a := align.Left
		if i == len(labels)-1 {
			a = align.Right
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func quoteRow(q *entity.Quote) core.Row {
	return row.New(7).Add(
		cell(q.ID, 3, align.Left),
		cell(q.CreatedAt.Format("2006-01-02"), 3, align.Left),
		cell(strings.ToUpper(string(q.Status)), 3, align.Left),
		cell(formatMoney(ledger.QuoteTotal(q)), 3, align.Right),
	)
}

func paymentRow(p *entity.Payment) core.Row {
	invoice := p.InvoiceID
	if invoice == "" {
		invoice = "Unallocated"
	}
	return row.New(7).Add(
		cell(p.Date.Format("2006-01-02"), 3, align.Left),
		cell(string(p.Method), 3, align.Left),
		cell(invoice, 3, align.Left),
		cell(formatMoney(p.Amount), 3, align.Right),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

func footerRow(s *appledger.AccountSnapshot) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Generated "+s.GeneratedAt.Format("2006-01-02 15:04 MST")+
				". Balance equals total billed (accepted quotes) minus total paid.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func contactLine(c *entity.Customer) string {
	parts := make([]string, 0, 2)
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	if c.Phone != "" {
		parts = append(parts, c.Phone)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " | ")
}

// formatMoney formatea en dólares con separador de miles.
// Ej: 1234567.5 → "$1,234,567.50", -20 → "-$20.00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + frac
}
