package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProduct producto más vendido en un rango de fechas.
type TopProduct struct {
	ProductID int64
	Name      string
	SKU       string
	Quantity  int64
	Revenue   decimal.Decimal
}

// AnalyticsRepository consultas read-only de agregados para el dashboard.
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve ingresos (neto) y descuentos de las ventas del rango.
	GetSalesMetrics(ctx context.Context, from, to time.Time) (revenue, discount decimal.Decimal, err error)
	// GetPurchaseTotal devuelve el costo total comprado en el rango.
	GetPurchaseTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// GetTopProducts devuelve los productos más vendidos del rango.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
	// CountLowStockProducts cuenta los productos en estado low.
	CountLowStockProducts(ctx context.Context) (int64, error)
	// CountQuotationsByStatus cuenta cotizaciones por estado en el rango.
	CountQuotationsByStatus(ctx context.Context, from, to time.Time) (map[int]int64, error)
}
