package dto

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// NewSupplierResponse mapea la entidad a su representación HTTP.
func NewSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{ID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone, Address: s.Address}
}

// CreateInventoryPointRequest body para POST /api/inventory-points.
type CreateInventoryPointRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Location string `json:"location"`
}

// InventoryPointResponse salida de un punto de inventario.
type InventoryPointResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// NewInventoryPointResponse mapea la entidad a su representación HTTP.
func NewInventoryPointResponse(p *entity.InventoryPoint) InventoryPointResponse {
	return InventoryPointResponse{ID: p.ID, Name: p.Name, Location: p.Location}
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewCategoryResponse mapea la entidad a su representación HTTP.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

// CreateUnitRequest body para POST /api/units.
type CreateUnitRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	ShortName string `json:"short_name"`
}

// UnitResponse salida de una unidad de medida.
type UnitResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
}

// NewUnitResponse mapea la entidad a su representación HTTP.
func NewUnitResponse(u *entity.Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Name: u.Name, ShortName: u.ShortName}
}

// CurrencyResponse salida de una moneda.
type CurrencyResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewCurrencyResponse mapea la entidad a su representación HTTP.
func NewCurrencyResponse(c *entity.Currency) CurrencyResponse {
	return CurrencyResponse{ID: c.ID, Code: c.Code, Name: c.Name}
}

// CreateTagRequest body para POST /api/tags.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// TagResponse salida de una etiqueta de producto.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewTagResponse mapea la entidad a su representación HTTP.
func NewTagResponse(t *entity.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}
