package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// InventoryStockRepository define el puerto para el saldo materializado por
// producto+punto. Usado dentro de transacciones para garantizar consistencia.
type InventoryStockRepository interface {
	Get(productID, inventoryPointID int64) (*entity.InventoryStock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, inventoryPointID int64) (*entity.InventoryStock, error)
	Upsert(stock *entity.InventoryStock) error
	ListByProduct(productID int64) ([]*entity.InventoryStock, error)
	ListByPoint(inventoryPointID int64) ([]*entity.InventoryStock, error)
	// TotalByProduct suma el stock del producto a través de todos los puntos.
	TotalByProduct(productID int64) (int64, error)
}
