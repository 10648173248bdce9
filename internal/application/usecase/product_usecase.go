package usecase

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Quantity y Status se manejan
// vía el libro de stock, nunca por aquí.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, movementRepo: movementRepo}
}

// Create crea un producto. El SKU se genera a partir de la categoría; la cantidad
// inicia en 0 y el estado y el margen se derivan de los datos de entrada.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest, createdBy string) (*dto.ProductResponse, error) {
	if existing, _ := uc.repo.GetByName(in.Name); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Barcode != 0 {
		if existing, _ := uc.repo.GetByBarcode(in.Barcode); existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	if in.MinQuantity != nil && *in.MinQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MaxQuantity != nil && *in.MaxQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.BuyingPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		Name:             in.Name,
		Barcode:          in.Barcode,
		Description:      in.Description,
		SKU:              domaininv.GenerateSKU(category.Name, now),
		UnitID:           in.UnitID,
		CategoryID:       in.CategoryID,
		TagID:            in.TagID,
		CurrencyID:       in.CurrencyID,
		SupplierID:       in.SupplierID,
		BuyingPrice:      in.BuyingPrice,
		SellingPrice:     in.SellingPrice,
		VatInclusive:     in.VatInclusive,
		Quantity:         0,
		MinQuantity:      in.MinQuantity,
		MaxQuantity:      in.MaxQuantity,
		Status:           domaininv.ProductStatus(0, in.MinQuantity, in.MaxQuantity),
		MarkupPercentage: domaininv.MarkupPercentage(in.BuyingPrice, in.SellingPrice),
		CreatedBy:        createdBy,
		UpdatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// GetBySKU obtiene un producto por su SKU.
func (uc *ProductUseCase) GetBySKU(sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// Update actualiza un producto. Quantity no se toca; al cambiar precios o
// umbrales se recalculan margen y estado.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest, updatedBy string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil && *in.Name != product.Name {
		if existing, _ := uc.repo.GetByName(*in.Name); existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.Name = *in.Name
	}
	if in.Barcode != nil && *in.Barcode != product.Barcode {
		if *in.Barcode != 0 {
			if existing, _ := uc.repo.GetByBarcode(*in.Barcode); existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		product.Barcode = *in.Barcode
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitID != nil {
		product.UnitID = *in.UnitID
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.TagID != nil {
		product.TagID = *in.TagID
	}
	if in.CurrencyID != nil {
		product.CurrencyID = *in.CurrencyID
	}
	if in.SupplierID != nil {
		product.SupplierID = in.SupplierID
	}
	if in.BuyingPrice != nil {
		if in.BuyingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.BuyingPrice = *in.BuyingPrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.VatInclusive != nil {
		product.VatInclusive = *in.VatInclusive
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinQuantity = in.MinQuantity
	}
	if in.MaxQuantity != nil {
		if *in.MaxQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MaxQuantity = in.MaxQuantity
	}

	product.MarkupPercentage = domaininv.MarkupPercentage(product.BuyingPrice, product.SellingPrice)
	product.Status = domaininv.ProductStatus(product.Quantity, product.MinQuantity, product.MaxQuantity)
	product.UpdatedBy = updatedBy
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// List lista productos con paginación, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(categoryID int64, limit, offset int) (*dto.ProductListResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if categoryID > 0 {
		list, err = uc.repo.ListByCategory(categoryID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: int64(len(items))},
	}, nil
}

// Delete elimina un producto. Un producto con movimientos de stock no se borra:
// el libro es el historial contable.
func (uc *ProductUseCase) Delete(id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	hasMovements, err := uc.movementRepo.ExistsForProduct(id)
	if err != nil {
		return err
	}
	if hasMovements {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
