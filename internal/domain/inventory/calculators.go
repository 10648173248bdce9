// Package inventory contiene los servicios de dominio puros del inventario:
// cálculo de estado de producto, margen y totales de compra/venta. Todas las
// funciones son deterministas, totales (aceptan nulos y ceros) y sin I/O.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductStatus calcula el estado derivado de un producto a partir de su cantidad
// total y sus umbrales. Regla canónica:
//
//	sin mínimo            -> Low
//	cantidad <= mínimo    -> Low (tiene precedencia sobre la presencia del máximo)
//	sin máximo            -> High si cantidad > 2*mínimo, si no Moderate
//	cantidad >= máximo    -> High
//	en otro caso          -> Moderate
func ProductStatus(quantity int64, minQuantity, maxQuantity *int64) int {
	if minQuantity == nil || *minQuantity <= 0 {
		return entity.ProductStatusLow
	}
	if quantity <= *minQuantity {
		return entity.ProductStatusLow
	}
	if maxQuantity == nil || *maxQuantity <= 0 {
		if quantity > 2*(*minQuantity) {
			return entity.ProductStatusHigh
		}
		return entity.ProductStatusModerate
	}
	if quantity >= *maxQuantity {
		return entity.ProductStatusHigh
	}
	return entity.ProductStatusModerate
}

// MarkupPercentage calcula el porcentaje de margen redondeado:
// round(((venta - compra) / compra) * 100). Devuelve 0 si el precio de compra es 0.
func MarkupPercentage(buyingPrice, sellingPrice decimal.Decimal) int64 {
	if buyingPrice.IsZero() {
		return 0
	}
	pct := sellingPrice.Sub(buyingPrice).Div(buyingPrice).Mul(decimal.NewFromInt(100))
	return pct.Round(0).IntPart()
}

// PurchaseLineTotal devuelve el total de línea: el explícito si viene, si no Quantity*UnitCost.
func PurchaseLineTotal(item entity.PurchaseItem) decimal.Decimal {
	if !item.TotalCost.IsZero() {
		return item.TotalCost
	}
	return item.UnitCost.Mul(decimal.NewFromInt(item.Quantity))
}

// PurchaseTotals agregados de una compra.
type PurchaseTotals struct {
	TotalCost     decimal.Decimal
	TotalQuantity int64
	TotalUnitCost decimal.Decimal // combinado: TotalCost / TotalQuantity, 0 si no hay cantidad
}

// CalculatePurchaseTotals suma los totales de línea y cantidades y deriva el costo
// unitario combinado.
func CalculatePurchaseTotals(items []entity.PurchaseItem) PurchaseTotals {
	t := PurchaseTotals{TotalCost: decimal.Zero, TotalUnitCost: decimal.Zero}
	for _, item := range items {
		t.TotalCost = t.TotalCost.Add(PurchaseLineTotal(item))
		t.TotalQuantity += item.Quantity
	}
	if t.TotalQuantity > 0 {
		t.TotalUnitCost = t.TotalCost.Div(decimal.NewFromInt(t.TotalQuantity))
	}
	return t
}

// SaleLineTotal devuelve el total de línea: UnitPrice*Quantity - Discount + Tax.
func SaleLineTotal(item entity.SaleItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)).
		Sub(item.Discount).
		Add(item.Tax)
}

// SaleTotals agregados de una venta.
type SaleTotals struct {
	TotalQuantity int64
	Amount        decimal.Decimal // Σ unitPrice*quantity
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Net           decimal.Decimal // Amount - Discount
	GrandTotal    decimal.Decimal // Net + Tax
}

// CalculateSaleTotals deriva los agregados de la venta desde sus líneas.
func CalculateSaleTotals(items []entity.SaleItem) SaleTotals {
	t := SaleTotals{
		Amount:     decimal.Zero,
		Discount:   decimal.Zero,
		Tax:        decimal.Zero,
		Net:        decimal.Zero,
		GrandTotal: decimal.Zero,
	}
	for _, item := range items {
		t.Amount = t.Amount.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
		t.Discount = t.Discount.Add(item.Discount)
		t.Tax = t.Tax.Add(item.Tax)
		t.TotalQuantity += item.Quantity
	}
	t.Net = t.Amount.Sub(t.Discount)
	t.GrandTotal = t.Net.Add(t.Tax)
	return t
}
