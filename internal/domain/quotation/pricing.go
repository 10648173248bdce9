package quotation

import "github.com/shopspring/decimal"

// PriceSummary agregados monetarios de una cotización.
type PriceSummary struct {
	Subtotal   decimal.Decimal
	Vat        decimal.Decimal
	GrandTotal decimal.Decimal // subtotal + IVA, redondeado hacia arriba a la unidad
}

// CalculatePriceSummary deriva el resumen de precios desde las líneas:
// subtotal = Σ cantidad*precio (líneas incompletas se ignoran), IVA = subtotal
// por el porcentaje de los TCs salvo que se excluya, y el gran total se redondea
// hacia arriba a la unidad entera.
func CalculatePriceSummary(items []LineItemInput, excludeVat bool, vatPercentage int) PriceSummary {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity == nil || item.UnitPrice == nil {
			continue
		}
		subtotal = subtotal.Add(item.Quantity.Mul(*item.UnitPrice))
	}

	vat := decimal.Zero
	if !excludeVat {
		vat = subtotal.Mul(decimal.NewFromInt(int64(vatPercentage))).Div(decimal.NewFromInt(100))
	}

	return PriceSummary{
		Subtotal:   subtotal,
		Vat:        vat,
		GrandTotal: subtotal.Add(vat).Ceil(),
	}
}
