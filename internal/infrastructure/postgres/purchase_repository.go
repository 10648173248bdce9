package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera y sus líneas; deja los IDs generados en purchase.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (supplier_id, inventory_point_id, total_quantity, unit_cost, total_cost,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		purchase.SupplierID, purchase.InventoryPointID, purchase.TotalQuantity,
		purchase.UnitCost, purchase.TotalCost, purchase.CreatedBy, purchase.UpdatedBy,
		purchase.CreatedAt, purchase.UpdatedAt,
	).Scan(&purchase.ID)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	for i := range purchase.Items {
		item := &purchase.Items[i]
		item.PurchaseID = purchase.ID
		err := r.q.QueryRow(context.Background(),
			`INSERT INTO purchase_items (purchase_id, product_id, quantity, unit_cost, total_cost)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			item.PurchaseID, item.ProductID, item.Quantity, item.UnitCost, item.TotalCost,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra con sus líneas.
func (r *PurchaseRepo) GetByID(id int64) (*entity.Purchase, error) {
	query := `
		SELECT id, supplier_id, inventory_point_id, total_quantity, unit_cost, total_cost,
			created_by, updated_by, created_at, updated_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SupplierID, &p.InventoryPointID, &p.TotalQuantity, &p.UnitCost, &p.TotalCost,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	items, err := r.itemsByPurchase(p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

func (r *PurchaseRepo) itemsByPurchase(purchaseID int64) ([]entity.PurchaseItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, purchase_id, product_id, quantity, unit_cost, total_cost
		 FROM purchase_items WHERE purchase_id = $1 ORDER BY id`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var items []entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitCost, &it.TotalCost); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PurchaseRepo) list(query string, args ...any) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.InventoryPointID, &p.TotalQuantity, &p.UnitCost,
			&p.TotalCost, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lista compras con paginación (sin líneas).
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	return r.list(
		`SELECT id, supplier_id, inventory_point_id, total_quantity, unit_cost, total_cost,
			created_by, updated_by, created_at, updated_at
		 FROM purchases ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListBySupplier lista compras a un proveedor con paginación (sin líneas).
func (r *PurchaseRepo) ListBySupplier(supplierID int64, limit, offset int) ([]*entity.Purchase, error) {
	return r.list(
		`SELECT id, supplier_id, inventory_point_id, total_quantity, unit_cost, total_cost,
			created_by, updated_by, created_at, updated_at
		 FROM purchases WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		supplierID, limit, offset)
}
