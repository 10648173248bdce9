package usecase

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CatalogUseCase CRUD de los catálogos de apoyo: proveedores, puntos de
// inventario, categorías, unidades, monedas y etiquetas.
type CatalogUseCase struct {
	supplierRepo repository.SupplierRepository
	pointRepo    repository.InventoryPointRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	currencyRepo repository.CurrencyRepository
	tagRepo      repository.TagRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	supplierRepo repository.SupplierRepository,
	pointRepo repository.InventoryPointRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	currencyRepo repository.CurrencyRepository,
	tagRepo repository.TagRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		supplierRepo: supplierRepo,
		pointRepo:    pointRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		currencyRepo: currencyRepo,
		tagRepo:      tagRepo,
	}
}

// --- proveedores ---

// CreateSupplier crea un proveedor; nombre duplicado es ErrDuplicate.
func (uc *CatalogUseCase) CreateSupplier(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if existing, _ := uc.supplierRepo.GetByName(in.Name); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	resp := dto.NewSupplierResponse(supplier)
	return &resp, nil
}

// GetSupplier obtiene un proveedor por ID.
func (uc *CatalogUseCase) GetSupplier(id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewSupplierResponse(supplier)
	return &resp, nil
}

// UpdateSupplier actualiza los datos de contacto de un proveedor.
func (uc *CatalogUseCase) UpdateSupplier(id int64, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != supplier.Name {
		if existing, _ := uc.supplierRepo.GetByName(in.Name); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	supplier.Name = in.Name
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	supplier.Address = in.Address
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	resp := dto.NewSupplierResponse(supplier)
	return &resp, nil
}

// ListSuppliers lista proveedores con paginación.
func (uc *CatalogUseCase) ListSuppliers(limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.supplierRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.NewSupplierResponse(s))
	}
	return items, nil
}

// DeleteSupplier elimina un proveedor.
func (uc *CatalogUseCase) DeleteSupplier(id int64) error {
	return uc.supplierRepo.Delete(id)
}

// --- puntos de inventario ---

// CreatePoint crea un punto de inventario.
func (uc *CatalogUseCase) CreatePoint(in dto.CreateInventoryPointRequest) (*dto.InventoryPointResponse, error) {
	point := &entity.InventoryPoint{
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: time.Now(),
	}
	if err := uc.pointRepo.Create(point); err != nil {
		return nil, err
	}
	resp := dto.NewInventoryPointResponse(point)
	return &resp, nil
}

// GetPoint obtiene un punto de inventario por ID.
func (uc *CatalogUseCase) GetPoint(id int64) (*dto.InventoryPointResponse, error) {
	point, err := uc.pointRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewInventoryPointResponse(point)
	return &resp, nil
}

// ListPoints lista todos los puntos de inventario.
func (uc *CatalogUseCase) ListPoints() ([]dto.InventoryPointResponse, error) {
	list, err := uc.pointRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryPointResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewInventoryPointResponse(p))
	}
	return items, nil
}

// DeletePoint elimina un punto de inventario.
func (uc *CatalogUseCase) DeletePoint(id int64) error {
	return uc.pointRepo.Delete(id)
}

// --- categorías ---

// CreateCategory crea una categoría; nombre duplicado es ErrDuplicate.
func (uc *CatalogUseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if existing, _ := uc.categoryRepo.GetByName(in.Name); existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := &entity.Category{Name: in.Name, CreatedAt: time.Now()}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	resp := dto.NewCategoryResponse(category)
	return &resp, nil
}

// ListCategories lista todas las categorías.
func (uc *CatalogUseCase) ListCategories() ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewCategoryResponse(c))
	}
	return items, nil
}

// DeleteCategory elimina una categoría.
func (uc *CatalogUseCase) DeleteCategory(id int64) error {
	return uc.categoryRepo.Delete(id)
}

// --- unidades ---

// CreateUnit crea una unidad de medida.
func (uc *CatalogUseCase) CreateUnit(in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	unit := &entity.Unit{Name: in.Name, ShortName: in.ShortName}
	if err := uc.unitRepo.Create(unit); err != nil {
		return nil, err
	}
	resp := dto.NewUnitResponse(unit)
	return &resp, nil
}

// ListUnits lista todas las unidades de medida.
func (uc *CatalogUseCase) ListUnits() ([]dto.UnitResponse, error) {
	list, err := uc.unitRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.NewUnitResponse(u))
	}
	return items, nil
}

// DeleteUnit elimina una unidad de medida.
func (uc *CatalogUseCase) DeleteUnit(id int64) error {
	return uc.unitRepo.Delete(id)
}

// --- monedas ---

// ListCurrencies lista las monedas disponibles. El catálogo es de solo lectura:
// se siembra por migración.
func (uc *CatalogUseCase) ListCurrencies() ([]dto.CurrencyResponse, error) {
	list, err := uc.currencyRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CurrencyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewCurrencyResponse(c))
	}
	return items, nil
}

// --- etiquetas ---

// CreateTag crea una etiqueta de productos.
func (uc *CatalogUseCase) CreateTag(in dto.CreateTagRequest) (*dto.TagResponse, error) {
	tag := &entity.Tag{Name: in.Name}
	if err := uc.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	resp := dto.NewTagResponse(tag)
	return &resp, nil
}

// ListTags lista todas las etiquetas.
func (uc *CatalogUseCase) ListTags() ([]dto.TagResponse, error) {
	list, err := uc.tagRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.TagResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.NewTagResponse(t))
	}
	return items, nil
}

// DeleteTag elimina una etiqueta.
func (uc *CatalogUseCase) DeleteTag(id int64) error {
	return uc.tagRepo.Delete(id)
}
