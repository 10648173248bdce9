package dto

import "github.com/shopspring/decimal"

// TopProductDTO producto más vendido en el widget del dashboard.
type TopProductDTO struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO resumen del día y del mes en curso para el back-office.
type DashboardSummaryDTO struct {
	TodaySales        decimal.Decimal `json:"today_sales"`
	MonthlySales      decimal.Decimal `json:"monthly_sales"`
	MonthlyPurchases  decimal.Decimal `json:"monthly_purchases"`
	MonthlyMargin     decimal.Decimal `json:"monthly_margin"`
	TopProducts       []TopProductDTO `json:"top_products"`
	LowStockProducts  int64           `json:"low_stock_products"`
	QuotationsByState map[string]int64 `json:"quotations_by_state"`
	DateLabel         string          `json:"date_label"`
}
