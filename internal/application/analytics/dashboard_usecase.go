// Package analytics contiene el caso de uso del dashboard del back-office.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase genera el resumen financiero del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). No toca las
// tablas transaccionales directamente; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Las consultas a la DB corren en paralelo:
//  1. GetSalesMetrics(hoy)          → TodaySales
//  2. GetSalesMetrics(mes)          → MonthlySales
//  3. GetPurchaseTotal(mes)         → MonthlyPurchases + MonthlyMargin
//  4. GetTopProducts(mes, top 5)    → TopProducts
//  5. CountLowStockProducts         → LowStockProducts
//  6. CountQuotationsByStatus(mes)  → QuotationsByState
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type salesResult struct {
		revenue, discount decimal.Decimal
		err               error
	}
	type purchasesResult struct {
		total decimal.Decimal
		err   error
	}
	type topResult struct {
		products []repository.TopProduct
		err      error
	}
	type countResult struct {
		n   int64
		err error
	}
	type statusResult struct {
		byStatus map[int]int64
		err      error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	purchCh := make(chan purchasesResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan countResult, 1)
	quotCh := make(chan statusResult, 1)

	go func() {
		rev, disc, err := uc.analyticsRepo.GetSalesMetrics(ctx, todayStart, todayEnd)
		todayCh <- salesResult{rev, disc, err}
	}()
	go func() {
		rev, disc, err := uc.analyticsRepo.GetSalesMetrics(ctx, monthStart, monthEnd)
		monthCh <- salesResult{rev, disc, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.GetPurchaseTotal(ctx, monthStart, monthEnd)
		purchCh <- purchasesResult{total, err}
	}()
	go func() {
		products, err := uc.analyticsRepo.GetTopProducts(ctx, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{products, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStockProducts(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		byStatus, err := uc.analyticsRepo.CountQuotationsByStatus(ctx, monthStart, monthEnd)
		quotCh <- statusResult{byStatus, err}
	}()

	today := <-todayCh
	month := <-monthCh
	purchases := <-purchCh
	top := <-topCh
	low := <-lowCh
	quotations := <-quotCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("dashboard: compras del mes: %w", purchases.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if quotations.err != nil {
		return nil, fmt.Errorf("dashboard: cotizaciones: %w", quotations.err)
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.products))
	for _, p := range top.products {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID: p.ProductID,
			Name:      p.Name,
			SKU:       p.SKU,
			Quantity:  p.Quantity,
			Revenue:   p.Revenue,
		})
	}

	byState := make(map[string]int64, len(quotations.byStatus))
	for statusID, n := range quotations.byStatus {
		if key, ok := entity.QuotationStatusKeys[statusID]; ok {
			byState[key] = n
		}
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:        today.revenue.Round(2),
		MonthlySales:      month.revenue.Round(2),
		MonthlyPurchases:  purchases.total.Round(2),
		MonthlyMargin:     month.revenue.Sub(purchases.total).Round(2),
		TopProducts:       topProducts,
		LowStockProducts:  low.n,
		QuotationsByState: byState,
		DateLabel:         monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
