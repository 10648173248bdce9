package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale agrupa una venta: vendedor, moneda, punto de inventario y líneas.
// Los agregados se calculan desde los items.
type Sale struct {
	ID               int64
	SaleNo           string // máx. 12 caracteres
	SellerID         int64
	CurrencyID       int64
	InventoryPointID int64
	TotalQuantity    int64
	TotalAmount      decimal.Decimal // Σ unitPrice*quantity
	TotalDiscount    decimal.Decimal
	TotalTax         decimal.Decimal
	NetAmount        decimal.Decimal // TotalAmount - TotalDiscount
	GrandTotal       decimal.Decimal // NetAmount + TotalTax
	CreatedAt        time.Time
	Items            []SaleItem
}

// SaleItem línea de una venta. TotalPrice = UnitPrice*Quantity - Discount + Tax.
type SaleItem struct {
	ID         int64
	SaleID     int64
	ProductID  int64
	Quantity   int64
	UnitPrice  decimal.Decimal
	Discount   decimal.Decimal
	Tax        decimal.Decimal
	TotalPrice decimal.Decimal
}
