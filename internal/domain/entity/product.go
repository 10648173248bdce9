package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de producto según cantidad vs umbrales mínimo/máximo.
const (
	ProductStatusLow      = 1
	ProductStatusModerate = 2
	ProductStatusHigh     = 3
)

// Product representa un producto del inventario. Quantity es el total agregado en
// todos los puntos de inventario; Status y MarkupPercentage son campos derivados y
// se recalculan en cada movimiento de stock o cambio de precios, nunca se ingresan.
type Product struct {
	ID               int64
	Name             string // único
	Barcode          int64  // único
	Description      string
	SKU              string // generado al crear: prefijo de categoría + timestamp + sufijo aleatorio
	UnitID           int64
	CategoryID       int64
	TagID            int64
	CurrencyID       int64
	SupplierID       *int64
	BuyingPrice      decimal.Decimal // se sobreescribe con el último costo unitario de compra
	SellingPrice     decimal.Decimal
	VatInclusive     bool
	Quantity         int64 // derivado: suma de inventory_stock en todos los puntos, invariante >= 0
	MinQuantity      *int64
	MaxQuantity      *int64
	Status           int   // derivado: Low/Moderate/High
	MarkupPercentage int64 // derivado de BuyingPrice vs SellingPrice
	CreatedBy        string
	UpdatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
