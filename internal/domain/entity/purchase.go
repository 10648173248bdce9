package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase agrupa una compra a un proveedor en un punto de inventario.
// Los totales se calculan desde los items, nunca se ingresan directamente.
type Purchase struct {
	ID               int64
	SupplierID       int64
	InventoryPointID int64
	TotalQuantity    int64
	UnitCost         decimal.Decimal // costo unitario combinado: TotalCost / TotalQuantity
	TotalCost        decimal.Decimal
	CreatedBy        string
	UpdatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []PurchaseItem
}

// PurchaseItem línea de una compra. TotalCost = Quantity * UnitCost salvo que venga explícito.
type PurchaseItem struct {
	ID         int64
	PurchaseID int64
	ProductID  int64
	Quantity   int64
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
}
