package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_no, seller_id, currency_id, inventory_point_id, total_quantity,
	total_amount, total_discount, total_tax, net_amount, grand_total, created_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y sus líneas; deja los IDs generados en sale.
// sale_no duplicado es domain.ErrDuplicate.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (sale_no, seller_id, currency_id, inventory_point_id, total_quantity,
			total_amount, total_discount, total_tax, net_amount, grand_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		sale.SaleNo, sale.SellerID, sale.CurrencyID, sale.InventoryPointID, sale.TotalQuantity,
		sale.TotalAmount, sale.TotalDiscount, sale.TotalTax, sale.NetAmount, sale.GrandTotal,
		sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID
		err := r.q.QueryRow(context.Background(),
			`INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, discount, tax, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Discount, item.Tax, item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) getOne(query string, arg any) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.SaleNo, &s.SellerID, &s.CurrencyID, &s.InventoryPointID, &s.TotalQuantity,
		&s.TotalAmount, &s.TotalDiscount, &s.TotalTax, &s.NetAmount, &s.GrandTotal, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT id, sale_id, product_id, quantity, unit_price, discount, tax, total_price
		 FROM sale_items WHERE sale_id = $1 ORDER BY id`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice,
			&it.Discount, &it.Tax, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return &s, rows.Err()
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetBySaleNo obtiene una venta por su número de documento.
func (r *SaleRepo) GetBySaleNo(saleNo string) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales WHERE sale_no = $1`, saleNo)
}

// List lista ventas con paginación (sin líneas).
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.SaleNo, &s.SellerID, &s.CurrencyID, &s.InventoryPointID,
			&s.TotalQuantity, &s.TotalAmount, &s.TotalDiscount, &s.TotalTax, &s.NetAmount,
			&s.GrandTotal, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
