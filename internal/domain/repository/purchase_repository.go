package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	// Create persiste la cabecera y sus líneas; deja el ID generado en purchase.
	Create(purchase *entity.Purchase) error
	GetByID(id int64) (*entity.Purchase, error)
	List(limit, offset int) ([]*entity.Purchase, error)
	ListBySupplier(supplierID int64, limit, offset int) ([]*entity.Purchase, error)
}
