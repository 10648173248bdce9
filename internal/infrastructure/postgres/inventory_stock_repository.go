package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.InventoryStockRepository = (*InventoryStockRepo)(nil)

// InventoryStockRepo implementación de InventoryStockRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryStockRepo struct {
	q Querier
}

// NewInventoryStockRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewInventoryStockRepository(q Querier) *InventoryStockRepo {
	return &InventoryStockRepo{q: q}
}

// Get obtiene el saldo actual de un producto en un punto de inventario.
// Sin fila devuelve saldo cero.
func (r *InventoryStockRepo) Get(productID, inventoryPointID int64) (*entity.InventoryStock, error) {
	query := `
		SELECT product_id, inventory_point_id, quantity, updated_at
		FROM inventory_stock WHERE product_id = $1 AND inventory_point_id = $2`
	var s entity.InventoryStock
	err := r.q.QueryRow(context.Background(), query, productID, inventoryPointID).Scan(
		&s.ProductID, &s.InventoryPointID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return &entity.InventoryStock{ProductID: productID, InventoryPointID: inventoryPointID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE) mientras
// dura la transacción. Serializa los movimientos concurrentes del mismo
// producto+punto.
func (r *InventoryStockRepo) GetForUpdate(productID, inventoryPointID int64) (*entity.InventoryStock, error) {
	query := `
		SELECT product_id, inventory_point_id, quantity, updated_at
		FROM inventory_stock WHERE product_id = $1 AND inventory_point_id = $2
		FOR UPDATE`
	var s entity.InventoryStock
	err := r.q.QueryRow(context.Background(), query, productID, inventoryPointID).Scan(
		&s.ProductID, &s.InventoryPointID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return &entity.InventoryStock{ProductID: productID, InventoryPointID: inventoryPointID}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo (por producto y punto).
func (r *InventoryStockRepo) Upsert(stock *entity.InventoryStock) error {
	query := `
		INSERT INTO inventory_stock (product_id, inventory_point_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, inventory_point_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.InventoryPointID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByProduct lista los saldos de un producto en todos los puntos.
func (r *InventoryStockRepo) ListByProduct(productID int64) ([]*entity.InventoryStock, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, inventory_point_id, quantity, updated_at
		 FROM inventory_stock WHERE product_id = $1 ORDER BY inventory_point_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryStock
	for rows.Next() {
		var s entity.InventoryStock
		if err := rows.Scan(&s.ProductID, &s.InventoryPointID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByPoint lista los saldos de todos los productos en un punto.
func (r *InventoryStockRepo) ListByPoint(inventoryPointID int64) ([]*entity.InventoryStock, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, inventory_point_id, quantity, updated_at
		 FROM inventory_stock WHERE inventory_point_id = $1 ORDER BY product_id`, inventoryPointID)
	if err != nil {
		return nil, fmt.Errorf("list stock by point: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryStock
	for rows.Next() {
		var s entity.InventoryStock
		if err := rows.Scan(&s.ProductID, &s.InventoryPointID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TotalByProduct suma el stock del producto a través de todos los puntos.
func (r *InventoryStockRepo) TotalByProduct(productID int64) (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_stock WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total stock by product: %w", err)
	}
	return total, nil
}
