package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. El SKU se genera en el
// servidor a partir de la categoría.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Barcode      int64           `json:"barcode"`
	Description  string          `json:"description"`
	UnitID       int64           `json:"unit_id" validate:"required"`
	CategoryID   int64           `json:"category_id" validate:"required"`
	TagID        int64           `json:"tag_id"`
	CurrencyID   int64           `json:"currency_id" validate:"required"`
	SupplierID   *int64          `json:"supplier_id"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	VatInclusive bool            `json:"vat_inclusive"`
	MinQuantity  *int64          `json:"min_quantity"`
	MaxQuantity  *int64          `json:"max_quantity"`
}

// UpdateProductRequest entrada para actualizar un producto. La cantidad y el
// estado no se tocan por aquí: solo los mueve el libro de stock.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Barcode      *int64           `json:"barcode"`
	Description  *string          `json:"description"`
	UnitID       *int64           `json:"unit_id"`
	CategoryID   *int64           `json:"category_id"`
	TagID        *int64           `json:"tag_id"`
	CurrencyID   *int64           `json:"currency_id"`
	SupplierID   *int64           `json:"supplier_id"`
	BuyingPrice  *decimal.Decimal `json:"buying_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	VatInclusive *bool            `json:"vat_inclusive"`
	MinQuantity  *int64           `json:"min_quantity"`
	MaxQuantity  *int64           `json:"max_quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Barcode          int64           `json:"barcode,omitempty"`
	Description      string          `json:"description,omitempty"`
	SKU              string          `json:"sku"`
	UnitID           int64           `json:"unit_id"`
	CategoryID       int64           `json:"category_id"`
	TagID            int64           `json:"tag_id,omitempty"`
	CurrencyID       int64           `json:"currency_id"`
	SupplierID       *int64          `json:"supplier_id,omitempty"`
	BuyingPrice      decimal.Decimal `json:"buying_price"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	VatInclusive     bool            `json:"vat_inclusive"`
	Quantity         int64           `json:"quantity"`
	MinQuantity      *int64          `json:"min_quantity,omitempty"`
	MaxQuantity      *int64          `json:"max_quantity,omitempty"`
	Status           int             `json:"status"`
	StatusKey        string          `json:"status_key"`
	MarkupPercentage int64           `json:"markup_percentage"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

var productStatusKeys = map[int]string{
	entity.ProductStatusLow:      "low",
	entity.ProductStatusModerate: "moderate",
	entity.ProductStatusHigh:     "high",
}

// NewProductResponse mapea la entidad a su representación HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Barcode:          p.Barcode,
		Description:      p.Description,
		SKU:              p.SKU,
		UnitID:           p.UnitID,
		CategoryID:       p.CategoryID,
		TagID:            p.TagID,
		CurrencyID:       p.CurrencyID,
		SupplierID:       p.SupplierID,
		BuyingPrice:      p.BuyingPrice,
		SellingPrice:     p.SellingPrice,
		VatInclusive:     p.VatInclusive,
		Quantity:         p.Quantity,
		MinQuantity:      p.MinQuantity,
		MaxQuantity:      p.MaxQuantity,
		Status:           p.Status,
		StatusKey:        productStatusKeys[p.Status],
		MarkupPercentage: p.MarkupPercentage,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
