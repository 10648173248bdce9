// Package quotation orquesta el ciclo de vida de cotizaciones: creación
// verificada, estados, borradores, etiquetas, recordatorios y PDF.
package quotation

import (
	"github.com/shopspring/decimal"
)

// EmailSender puerto de salida para correos de seguimiento.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// DocumentLine línea renderizable del documento PDF.
type DocumentLine struct {
	Name        string
	Description string
	Quantity    decimal.Decimal
	Units       string
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Document todo lo que el generador de PDF necesita para renderizar una
// cotización, ya resuelto (frases de términos incluidas).
type Document struct {
	QuotationID    string
	IssuedAt       string
	IssuerName     string
	IssuerCoUserID string
	CurrencyCode   string

	ClientName    string
	ContactPerson string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string

	Lines      []DocumentLine
	SubTotal   decimal.Decimal
	Vat        decimal.Decimal
	GrandTotal decimal.Decimal

	PaymentTerms  string
	ValidityTerms string
	DeliveryDays  int

	// VerifyURL se codifica como QR para validar la autenticidad del documento.
	VerifyURL string
}

// PDFGenerator puerto de salida para el render del documento.
type PDFGenerator interface {
	GenerateQuotationPDF(doc Document) ([]byte, error)
}
