package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// Puertos de los catálogos de apoyo. CRUD plano; las reglas de unicidad las
// reporta la implementación como domain.ErrDuplicate.

type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id int64) (*entity.Supplier, error)
	GetByName(name string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(limit, offset int) ([]*entity.Supplier, error)
	Delete(id int64) error
}

type InventoryPointRepository interface {
	Create(point *entity.InventoryPoint) error
	GetByID(id int64) (*entity.InventoryPoint, error)
	Update(point *entity.InventoryPoint) error
	List() ([]*entity.InventoryPoint, error)
	Delete(id int64) error
}

type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Delete(id int64) error
}

type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id int64) (*entity.Unit, error)
	List() ([]*entity.Unit, error)
	Delete(id int64) error
}

type CurrencyRepository interface {
	GetByID(id int64) (*entity.Currency, error)
	List() ([]*entity.Currency, error)
}

type TagRepository interface {
	Create(tag *entity.Tag) error
	GetByID(id int64) (*entity.Tag, error)
	List() ([]*entity.Tag, error)
	Delete(id int64) error
}
