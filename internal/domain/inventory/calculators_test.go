package inventory

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func ptr(v int64) *int64 { return &v }

func TestProductStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		min      *int64
		max      *int64
		want     int
	}{
		{"sin minimo siempre es Low", 500, nil, ptr(100), entity.ProductStatusLow},
		{"minimo cero cuenta como sin minimo", 500, ptr(0), ptr(100), entity.ProductStatusLow},
		{"cantidad igual al minimo es Low", 10, ptr(10), ptr(20), entity.ProductStatusLow},
		{"cantidad bajo el minimo es Low", 5, ptr(10), ptr(20), entity.ProductStatusLow},
		{"bajo minimo gana aunque no haya maximo", 5, ptr(10), nil, entity.ProductStatusLow},
		{"sin maximo y mas del doble del minimo es High", 25, ptr(10), nil, entity.ProductStatusHigh},
		{"sin maximo y exactamente el doble es Moderate", 20, ptr(10), nil, entity.ProductStatusModerate},
		{"sin maximo entre minimo y doble es Moderate", 15, ptr(10), nil, entity.ProductStatusModerate},
		{"cantidad igual al maximo es High", 20, ptr(10), ptr(20), entity.ProductStatusHigh},
		{"cantidad sobre el maximo es High", 30, ptr(10), ptr(20), entity.ProductStatusHigh},
		{"entre minimo y maximo es Moderate", 15, ptr(10), ptr(20), entity.ProductStatusModerate},
		{"cantidad cero sin umbrales es Low", 0, nil, nil, entity.ProductStatusLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductStatus(tt.quantity, tt.min, tt.max))
		})
	}
}

func TestMarkupPercentage(t *testing.T) {
	tests := []struct {
		name    string
		buying  string
		selling string
		want    int64
	}{
		{"compra cero devuelve cero sin dividir", "0", "150", 0},
		{"margen del 50 por ciento", "100", "150", 50},
		{"margen redondeado al entero mas cercano", "3", "4", 33},
		{"margen negativo cuando se vende bajo costo", "100", "80", -20},
		{"sin margen", "100", "100", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buying := decimal.RequireFromString(tt.buying)
			selling := decimal.RequireFromString(tt.selling)
			assert.Equal(t, tt.want, MarkupPercentage(buying, selling))
		})
	}
}

func TestCalculatePurchaseTotals(t *testing.T) {
	items := []entity.PurchaseItem{
		{ProductID: 1, Quantity: 10, UnitCost: decimal.RequireFromString("2.50")},
		{ProductID: 2, Quantity: 4, UnitCost: decimal.RequireFromString("10")},
		// total explícito: gana sobre cantidad*costo
		{ProductID: 3, Quantity: 2, UnitCost: decimal.RequireFromString("100"), TotalCost: decimal.RequireFromString("180")},
	}

	got := CalculatePurchaseTotals(items)

	assert.Equal(t, int64(16), got.TotalQuantity)
	assert.True(t, got.TotalCost.Equal(decimal.RequireFromString("245")),
		"costo total esperado 245, obtenido %s", got.TotalCost)
	assert.True(t, got.TotalUnitCost.Equal(decimal.RequireFromString("15.3125")),
		"costo unitario combinado esperado 15.3125, obtenido %s", got.TotalUnitCost)
}

func TestCalculatePurchaseTotals_SinItems(t *testing.T) {
	got := CalculatePurchaseTotals(nil)

	assert.Equal(t, int64(0), got.TotalQuantity)
	assert.True(t, got.TotalCost.IsZero())
	assert.True(t, got.TotalUnitCost.IsZero(), "sin cantidad el costo unitario debe ser 0, no NaN")
}

func TestCalculateSaleTotals(t *testing.T) {
	items := []entity.SaleItem{
		{
			ProductID: 1,
			Quantity:  3,
			UnitPrice: decimal.RequireFromString("100"),
			Discount:  decimal.RequireFromString("30"),
			Tax:       decimal.RequireFromString("51.30"),
		},
		{
			ProductID: 2,
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("50"),
			Discount:  decimal.Zero,
			Tax:       decimal.RequireFromString("9.50"),
		},
	}

	got := CalculateSaleTotals(items)

	assert.Equal(t, int64(4), got.TotalQuantity)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("350")))
	assert.True(t, got.Discount.Equal(decimal.RequireFromString("30")))
	assert.True(t, got.Tax.Equal(decimal.RequireFromString("60.80")))
	assert.True(t, got.Net.Equal(decimal.RequireFromString("320")))
	assert.True(t, got.GrandTotal.Equal(decimal.RequireFromString("380.80")))
}

func TestSaleLineTotal(t *testing.T) {
	item := entity.SaleItem{
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("75"),
		Discount:  decimal.RequireFromString("10"),
		Tax:       decimal.RequireFromString("26.60"),
	}
	assert.True(t, SaleLineTotal(item).Equal(decimal.RequireFromString("166.60")))
}

func TestGenerateSKU(t *testing.T) {
	now := time.Date(2024, 9, 15, 14, 30, 21, 0, time.UTC)

	sku := GenerateSKU("Electrónica", now)

	require.Regexp(t, regexp.MustCompile(`^ELE-240915143021-[A-Z0-9]{3}$`), sku)
}

func TestGenerateSKU_CategoriaCorta(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	// categorías cortas o sin letras ASCII se rellenan con X
	assert.Regexp(t, `^TVX-`, GenerateSKU("tv", now))
	assert.Regexp(t, `^XXX-`, GenerateSKU("123", now))
}
