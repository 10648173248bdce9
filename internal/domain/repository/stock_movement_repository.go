package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// StockMovementRepository define el puerto para el libro de movimientos.
// El libro es de solo inserción: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error)
	ListByPoint(inventoryPointID int64, limit, offset int) ([]*entity.StockMovement, error)
	ListByTransaction(transactionID string) ([]*entity.StockMovement, error)
	// ExistsForProduct indica si el producto tiene movimientos registrados
	// (bloquea su borrado).
	ExistsForProduct(productID int64) (bool, error)
}
