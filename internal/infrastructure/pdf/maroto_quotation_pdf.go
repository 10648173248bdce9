// Package pdf renderiza documentos con maroto/v2.
//
// Layout de la cotización (A4):
//
//	┌──────────────────────────────────────────────┐
//	│ COTIZACIÓN Q260831001          Fecha emisión │
//	├──────────────────────────────────────────────┤
//	│ Emitido por            │ Cliente             │
//	├──────────────────────────────────────────────┤
//	│ #  Descripción   Cant  Unidad  Precio  Total │
//	│ ...                                          │
//	├──────────────────────────────────────────────┤
//	│ Términos                │  Subtotal IVA Total│
//	├──────────────────────────────────────────────┤
//	│ [QR verificación]   Escanee para validar     │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/quotation"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 110, Green: 110, Blue: 110}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ quotation.PDFGenerator = (*MarotoQuotationGenerator)(nil)

// MarotoQuotationGenerator genera el PDF de cotización con maroto/v2.
type MarotoQuotationGenerator struct{}

func NewMarotoQuotationGenerator() *MarotoQuotationGenerator {
	return &MarotoQuotationGenerator{}
}

// GenerateQuotationPDF renderiza el documento y devuelve los bytes del PDF.
func (g *MarotoQuotationGenerator) GenerateQuotationPDF(doc quotation.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(12).
		WithRightMargin(12).
		WithTopMargin(12).
		WithDefaultFont(&props.Font{Family: fontfamily.Helvetica, Size: 9}).
		WithTitle("Cotización "+doc.QuotationID, true).
		WithAuthor(doc.IssuerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc)...)
	m.AddRows(separator())
	m.AddRows(partiesRow(doc))
	m.AddRows(separator())
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc)...)
	m.AddRows(separator())
	m.AddRows(totalsRows(doc)...)
	m.AddRows(termsRows(doc)...)
	m.AddRows(verifyFooterRows(doc)...)

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar pdf: %w", err)
	}
	return generated.GetBytes(), nil
}

func headerRow(doc quotation.Document) []core.Row {
	return []core.Row{
		row.New(10).Add(
			col.New(8).Add(
				text.New("COTIZACIÓN "+doc.QuotationID, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Color: colorPrimary,
					Top:   1,
				}),
			),
			col.New(4).Add(
				text.New("Fecha de emisión", props.Text{Size: 8, Color: colorGray, Align: align.Right}),
				text.New(doc.IssuedAt, props.Text{Size: 9, Top: 4, Align: align.Right}),
			),
		),
	}
}

func separator() core.Row {
	return row.New(3).Add(
		col.New(12).Add(line.New(props.Line{Color: colorPrimary, Thickness: 0.4})),
	)
}

// partiesRow bloque emisor / cliente lado a lado.
func partiesRow(doc quotation.Document) core.Row {
	issuer := []core.Component{
		text.New("EMITIDO POR", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}),
		text.New(doc.IssuerName, props.Text{Size: 9, Top: 4}),
		text.New(doc.IssuerCoUserID, props.Text{Size: 8, Top: 8, Color: colorGray}),
	}

	client := []core.Component{
		text.New("CLIENTE", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}),
		text.New(doc.ClientName, props.Text{Size: 9, Top: 4}),
	}
	top := 8.0
	for _, detail := range []string{doc.ContactPerson, doc.ClientEmail, doc.ClientPhone, doc.ClientAddress} {
		if strings.TrimSpace(detail) == "" {
			continue
		}
		client = append(client, text.New(detail, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4
	}

	return row.New(30).Add(
		col.New(6).Add(issuer...),
		col.New(6).Add(client...),
	)
}

func tableHeaderRow() core.Row {
	header := func(a align.Type) props.Text {
		return props.Text{Size: 8, Style: fontstyle.Bold, Color: colorWhite, Top: 1.5, Align: a}
	}
	return row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		col.New(1).Add(text.New("#", header(align.Center))),
		col.New(5).Add(text.New("Descripción", header(align.Left))),
		col.New(1).Add(text.New("Cant.", header(align.Right))),
		col.New(1).Add(text.New("Unidad", header(align.Center))),
		col.New(2).Add(text.New("Precio unit.", header(align.Right))),
		col.New(2).Add(text.New("Total", header(align.Right))),
	)
}

func tableDetailRows(doc quotation.Document) []core.Row {
	rows := make([]core.Row, 0, len(doc.Lines))
	for i, item := range doc.Lines {
		name := item.Name
		if item.Description != "" {
			name = name + " — " + item.Description
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(5).Add(text.New(name, props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(item.Quantity.String(), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(1).Add(text.New(item.Units, props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(2).Add(text.New(formatMoney(item.UnitPrice, doc.CurrencyCode), props.Text{Size: 8, Top: 1, Align: align.Right})),
			col.New(2).Add(text.New(formatMoney(item.Total, doc.CurrencyCode), props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

func totalsRows(doc quotation.Document) []core.Row {
	label := func(s string) core.Col {
		return col.New(3).Add(text.New(s, props.Text{Size: 8, Color: colorGray, Align: align.Right, Top: 1}))
	}
	value := func(d decimal.Decimal) core.Col {
		return col.New(3).Add(text.New(formatMoney(d, doc.CurrencyCode), props.Text{Size: 8, Align: align.Right, Top: 1}))
	}

	return []core.Row{
		row.New(5).Add(col.New(6), label("Subtotal"), value(doc.SubTotal)),
		row.New(5).Add(col.New(6), label("IVA"), value(doc.Vat)),
		row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New("TOTAL", props.Text{
				Size: 10, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1,
			})),
			col.New(3).Add(text.New(formatMoney(doc.GrandTotal, doc.CurrencyCode), props.Text{
				Size: 10, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1,
			})),
		),
	}
}

func termsRows(doc quotation.Document) []core.Row {
	term := func(title, body string) core.Row {
		return row.New(10).Add(
			col.New(3).Add(text.New(title, props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary, Top: 1})),
			col.New(9).Add(text.New(body, props.Text{Size: 8, Top: 1, Color: colorGray})),
		)
	}
	return []core.Row{
		separator(),
		term("Condiciones de pago", doc.PaymentTerms),
		term("Validez", doc.ValidityTerms),
		term("Plazo de entrega", fmt.Sprintf("%d días hábiles a partir de la confirmación del pedido.", doc.DeliveryDays)),
	}
}

// verifyFooterRows QR de verificación con la URL pública del documento.
func verifyFooterRows(doc quotation.Document) []core.Row {
	if doc.VerifyURL == "" {
		return nil
	}
	return []core.Row{
		separator(),
		row.New(26).Add(
			col.New(4).Add(code.NewQr(doc.VerifyURL, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New("Verificación del documento", props.Text{Size: 8, Style: fontstyle.Bold, Top: 6}),
				text.New("Escanee el código QR para validar la autenticidad de esta cotización.", props.Text{
					Size: 7, Color: colorGray, Top: 10,
				}),
				text.New(doc.VerifyURL, props.Text{Size: 6, Color: colorGray, Top: 14}),
			),
		),
	}
}

// formatMoney separa miles con puntos, al estilo local: 1.234.567,89 USD.
func formatMoney(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	if currency != "" {
		out += " " + currency
	}
	return out
}
