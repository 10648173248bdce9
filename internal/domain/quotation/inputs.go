// Package quotation contiene los servicios de dominio puros de cotizaciones:
// verificación de entradas, resumen de precios, frases de términos y generación
// del identificador de negocio. Sin I/O; los casos de uso orquestan alrededor.
package quotation

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// TcsInput plantilla de TCs seleccionada junto con los valores editados por el
// usuario (solo relevantes cuando Edited es true en la operación que la usa).
type TcsInput struct {
	entity.QuotationTcs

	EditedValidityDays      *int
	EditedDeliveryDays      *int
	EditedPaymentGraceDays  *int
	EditedInitialPaymentPct *int
	EditedLastPaymentPct    *int
}

// EffectiveValidityDays días de validez efectivos según si los TCs fueron editados.
func (t TcsInput) EffectiveValidityDays(edited bool) *int {
	if edited {
		return t.EditedValidityDays
	}
	v := t.ValidityDays
	return &v
}

// EffectiveGraceDays días de gracia efectivos según si los TCs fueron editados.
func (t TcsInput) EffectiveGraceDays(edited bool) *int {
	if edited {
		return t.EditedPaymentGraceDays
	}
	return t.PaymentGraceDays
}

// EffectivePaymentPcts porcentajes de pago inicial/final efectivos.
func (t TcsInput) EffectivePaymentPcts(edited bool) (initial, last *int) {
	if edited {
		return t.EditedInitialPaymentPct, t.EditedLastPaymentPct
	}
	return t.InitialPaymentPct, t.LastPaymentPct
}

// ClientInput datos del cliente tal como llegan del formulario. Todos los campos
// son opcionales salvo la regla de nombre o persona de contacto (ver VerifyClientInfo).
type ClientInput struct {
	Name          string
	ContactPerson string
	ExternalRef   string
	Email         string
	Phone         string
	BoxNumber     *int
	Country       string
	City          string
	AddressLine1  string
}

// ToEntity convierte la entrada verificada en el cliente persistible.
func (c ClientInput) ToEntity() entity.QuotationClient {
	return entity.QuotationClient{
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		ExternalRef:   c.ExternalRef,
		Email:         c.Email,
		Phone:         c.Phone,
		BoxNumber:     c.BoxNumber,
		Country:       c.Country,
		City:          c.City,
		AddressLine1:  c.AddressLine1,
	}
}

// LineItemInput línea de cotización tal como llega del formulario. Quantity y
// UnitPrice son punteros para distinguir ausente de cero.
type LineItemInput struct {
	Name        string
	Description string
	Quantity    *decimal.Decimal
	Units       string
	UnitPrice   *decimal.Decimal
}

// ToEntity convierte la línea verificada en su forma persistible.
func (li LineItemInput) ToEntity() entity.QuotationLineItem {
	item := entity.QuotationLineItem{
		Name:        li.Name,
		Description: li.Description,
		Units:       li.Units,
	}
	if li.Quantity != nil {
		item.Quantity = *li.Quantity
	}
	if li.UnitPrice != nil {
		item.UnitPrice = *li.UnitPrice
	}
	return item
}
