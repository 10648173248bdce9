package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, transaction_id, product_id, inventory_point_id, change_type,
	quantity_change, resulting_stock, reference_id, created_by, created_at`

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Solo inserta y lee: el libro es inmutable.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un asiento del libro y deja el ID generado en movement.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (transaction_id, product_id, inventory_point_id, change_type,
			quantity_change, resulting_stock, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.TransactionID, movement.ProductID, movement.InventoryPointID, movement.ChangeType,
		movement.QuantityChange, movement.ResultingStock, movement.ReferenceID,
		movement.CreatedBy, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) scanList(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.InventoryPointID, &m.ChangeType,
			&m.QuantityChange, &m.ResultingStock, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByProduct lista los asientos de un producto, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return r.scanList(
		`SELECT `+movementColumns+` FROM stock_movements
		 WHERE product_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset)
}

// ListByPoint lista los asientos de un punto de inventario.
func (r *StockMovementRepo) ListByPoint(inventoryPointID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return r.scanList(
		`SELECT `+movementColumns+` FROM stock_movements
		 WHERE inventory_point_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		inventoryPointID, limit, offset)
}

// ListByTransaction lista los asientos que comparten un transaction id.
func (r *StockMovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	return r.scanList(
		`SELECT `+movementColumns+` FROM stock_movements
		 WHERE transaction_id = $1 ORDER BY id`, transactionID)
}

// ExistsForProduct indica si el producto tiene asientos registrados.
func (r *StockMovementRepo) ExistsForProduct(productID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM stock_movements WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists stock movement: %w", err)
	}
	return exists, nil
}
