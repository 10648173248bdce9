package entity

import "time"

// Supplier proveedor de productos.
type Supplier struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventoryPoint punto de inventario (bodega, tienda, almacén).
type InventoryPoint struct {
	ID        int64
	Name      string
	Location  string
	CreatedAt time.Time
}

// Category categoría de productos. El prefijo del SKU se deriva del nombre.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Unit unidad de medida (pcs, kg, caja).
type Unit struct {
	ID        int64
	Name      string
	ShortName string
}

// Currency moneda de precios y cotizaciones.
type Currency struct {
	ID   int64
	Code string // ISO 4217
	Name string
}

// Tag etiqueta libre para clasificar productos.
type Tag struct {
	ID   int64
	Name string
}
