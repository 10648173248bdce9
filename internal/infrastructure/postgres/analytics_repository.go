package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregados para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics devuelve ingresos (neto) y descuentos de las ventas del rango.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var revenue, discount decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(net_amount), 0), COALESCE(SUM(total_discount), 0)
		 FROM sales WHERE created_at BETWEEN $1 AND $2`, from, to,
	).Scan(&revenue, &discount)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sales metrics: %w", err)
	}
	return revenue, discount, nil
}

// GetPurchaseTotal devuelve el costo total comprado en el rango.
func (r *AnalyticsRepo) GetPurchaseTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_cost), 0) FROM purchases WHERE created_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("purchase total: %w", err)
	}
	return total, nil
}

// GetTopProducts devuelve los productos más vendidos del rango, por cantidad.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	query := `
		SELECT p.id, p.name, p.sku, SUM(si.quantity) AS sold, SUM(si.total_price) AS revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.created_at BETWEEN $1 AND $2
		GROUP BY p.id, p.name, p.sku
		ORDER BY sold DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Name, &t.SKU, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountLowStockProducts cuenta los productos en estado low.
func (r *AnalyticsRepo) CountLowStockProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE status = $1`, entity.ProductStatusLow).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// CountQuotationsByStatus cuenta cotizaciones por estado en el rango.
func (r *AnalyticsRepo) CountQuotationsByStatus(ctx context.Context, from, to time.Time) (map[int]int64, error) {
	rows, err := r.q.Query(ctx,
		`SELECT status_id, COUNT(*) FROM quotations WHERE time BETWEEN $1 AND $2 GROUP BY status_id`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("count quotations by status: %w", err)
	}
	defer rows.Close()
	out := make(map[int]int64)
	for rows.Next() {
		var statusID int
		var n int64
		if err := rows.Scan(&statusID, &n); err != nil {
			return nil, fmt.Errorf("scan quotation count: %w", err)
		}
		out[statusID] = n
	}
	return out, rows.Err()
}
