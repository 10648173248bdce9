package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, barcode, description, sku, unit_id, category_id, tag_id, currency_id,
	supplier_id, buying_price, selling_price, vat_inclusive, quantity, min_quantity, max_quantity,
	status, markup_percentage, created_by, updated_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Barcode, &p.Description, &p.SKU, &p.UnitID, &p.CategoryID, &p.TagID,
		&p.CurrencyID, &p.SupplierID, &p.BuyingPrice, &p.SellingPrice, &p.VatInclusive,
		&p.Quantity, &p.MinQuantity, &p.MaxQuantity, &p.Status, &p.MarkupPercentage,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto y deja el ID generado en product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (name, barcode, description, sku, unit_id, category_id, tag_id, currency_id,
			supplier_id, buying_price, selling_price, vat_inclusive, quantity, min_quantity, max_quantity,
			status, markup_percentage, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.Barcode, product.Description, product.SKU, product.UnitID,
		product.CategoryID, product.TagID, product.CurrencyID, product.SupplierID,
		product.BuyingPrice, product.SellingPrice, product.VatInclusive, product.Quantity,
		product.MinQuantity, product.MaxQuantity, product.Status, product.MarkupPercentage,
		product.CreatedBy, product.UpdatedBy, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByName obtiene un producto por nombre exacto.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE name = $1`, name))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(barcode int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza un producto. Quantity no se toca por aquí (la mueve el libro).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, barcode = $3, description = $4, unit_id = $5, category_id = $6,
			tag_id = $7, currency_id = $8, supplier_id = $9, buying_price = $10, selling_price = $11,
			vat_inclusive = $12, min_quantity = $13, max_quantity = $14, status = $15,
			markup_percentage = $16, updated_by = $17, updated_at = $18
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Barcode, product.Description, product.UnitID,
		product.CategoryID, product.TagID, product.CurrencyID, product.SupplierID,
		product.BuyingPrice, product.SellingPrice, product.VatInclusive,
		product.MinQuantity, product.MaxQuantity, product.Status, product.MarkupPercentage,
		product.UpdatedBy, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStockSummary actualiza los derivados tras un movimiento del libro:
// cantidad total, estado y quién lo tocó.
func (r *ProductRepo) UpdateStockSummary(productID int64, quantity int64, status int, updatedBy string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, status = $3, updated_by = $4, updated_at = now() WHERE id = $1`,
		productID, quantity, status, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("update product stock summary: %w", err)
	}
	return nil
}

// UpdatePurchasePricing sobrescribe el precio de compra y el margen tras
// registrar una compra. Va en la misma tx que el asiento del libro.
func (r *ProductRepo) UpdatePurchasePricing(productID int64, buyingPrice decimal.Decimal, markupPercentage int64, updatedBy string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET buying_price = $2, markup_percentage = $3, updated_by = $4, updated_at = now() WHERE id = $1`,
		productID, buyingPrice, markupPercentage, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("update product purchase pricing: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListByCategory lista productos de una categoría con paginación.
func (r *ProductRepo) ListByCategory(categoryID int64, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
