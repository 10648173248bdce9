package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create persiste la cabecera y sus líneas; deja el ID generado en sale.
	Create(sale *entity.Sale) error
	GetByID(id int64) (*entity.Sale, error)
	GetBySaleNo(saleNo string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
