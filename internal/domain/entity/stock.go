package entity

import "time"

// Tipos de cambio del libro de movimientos de stock.
const (
	ChangeTypePurchase   = "PURCHASE"
	ChangeTypeSale       = "SALE"
	ChangeTypeReturn     = "RETURN"
	ChangeTypeAdjustment = "ADJUSTMENT"
	ChangeTypeTransfer   = "TRANSFER"
)

// StockMovement es un asiento inmutable del libro de stock: una vez creado nunca se
// actualiza ni se borra. ResultingStock es el balance del punto de inventario
// inmediatamente después de aplicar el delta.
type StockMovement struct {
	ID               int64
	TransactionID    string // uuid que agrupa los asientos de una misma operación
	ProductID        int64
	InventoryPointID int64
	ChangeType       string // PURCHASE, SALE, RETURN, ADJUSTMENT, TRANSFER
	QuantityChange   int64  // con signo: positivo entrada, negativo salida
	ResultingStock   int64
	ReferenceID      *int64 // id del documento de origen (compra/venta/traslado)
	CreatedBy        string
	CreatedAt        time.Time
}

// InventoryStock es el balance actual de un producto en un punto de inventario
// (tabla materializada, se actualiza en la misma transacción que el asiento).
type InventoryStock struct {
	ProductID        int64
	InventoryPointID int64
	Quantity         int64
	UpdatedAt        time.Time
}
