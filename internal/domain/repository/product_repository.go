package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	GetByBarcode(barcode int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStockSummary actualiza los derivados tras un movimiento:
	// cantidad total, estado y quién lo tocó.
	UpdateStockSummary(productID int64, quantity int64, status int, updatedBy string) error
	// UpdatePurchasePricing sobrescribe el precio de compra tras una compra y
	// persiste el margen recalculado contra el precio de venta vigente.
	UpdatePurchasePricing(productID int64, buyingPrice decimal.Decimal, markupPercentage int64, updatedBy string) error
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(categoryID int64, limit, offset int) ([]*entity.Product, error)
	Delete(id int64) error
}
