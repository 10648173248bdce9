package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

type fixture struct {
	store      *fakeStore
	runner     *fakeTxRunner
	purchaseUC *RegisterPurchaseUseCase
	saleUC     *RegisterSaleUseCase
	transferUC *TransferUseCase
	stockUC    *StockUseCase

	product  *entity.Product
	supplier *entity.Supplier
	pointA   *entity.InventoryPoint
	pointB   *entity.InventoryPoint
	seller   *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()

	productRepo := &fakeProductRepo{store}
	supplierRepo := &fakeSupplierRepo{store}
	pointRepo := &fakePointRepo{store}
	userRepo := &fakeUserRepo{store}
	movRepo := &fakeMovementRepo{store}
	stockRepo := &fakeStockRepo{store}
	transferRepo := &fakeTransferRepo{store}
	runner := &fakeTxRunner{s: store}

	minQty, maxQty := int64(10), int64(100)
	product := &entity.Product{
		Name:         "Tornillo M8",
		SellingPrice: decimal.RequireFromString("20"),
		MinQuantity:  &minQty,
		MaxQuantity:  &maxQty,
		Status:       entity.ProductStatusLow,
	}
	require.NoError(t, productRepo.Create(product))

	supplier := &entity.Supplier{Name: "Aceros del Norte"}
	require.NoError(t, supplierRepo.Create(supplier))

	pointA := &entity.InventoryPoint{Name: "Bodega Central"}
	require.NoError(t, pointRepo.Create(pointA))
	pointB := &entity.InventoryPoint{Name: "Sucursal Este"}
	require.NoError(t, pointRepo.Create(pointB))

	seller := &entity.User{CoUserID: "EMP/0042", Email: "vendedor@example.com"}
	require.NoError(t, userRepo.Create(seller))

	return &fixture{
		store:      store,
		runner:     runner,
		purchaseUC: NewRegisterPurchaseUseCase(runner, productRepo, supplierRepo, pointRepo),
		saleUC:     NewRegisterSaleUseCase(runner, productRepo, pointRepo, userRepo),
		transferUC: NewTransferUseCase(runner, transferRepo, productRepo, pointRepo, userRepo),
		stockUC:    NewStockUseCase(runner, productRepo, pointRepo, movRepo, stockRepo),
		product:    product,
		supplier:   supplier,
		pointA:     pointA,
		pointB:     pointB,
		seller:     seller,
	}
}

// seedStock asienta una compra para dejar stock disponible en un punto.
func (f *fixture) seedStock(t *testing.T, pointID, qty int64) {
	t.Helper()
	_, err := f.purchaseUC.RegisterPurchase(context.Background(), PurchaseInputDTO{
		SupplierID:       f.supplier.ID,
		InventoryPointID: pointID,
		CreatedBy:        "EMP/0001",
		Items: []PurchaseItemInput{
			{ProductID: f.product.ID, Quantity: qty, UnitCost: decimal.RequireFromString("2.50")},
		},
	})
	require.NoError(t, err)
}

func TestRegisterPurchase(t *testing.T) {
	f := newFixture(t)

	purchase, err := f.purchaseUC.RegisterPurchase(context.Background(), PurchaseInputDTO{
		SupplierID:       f.supplier.ID,
		InventoryPointID: f.pointA.ID,
		CreatedBy:        "EMP/0001",
		Items: []PurchaseItemInput{
			{ProductID: f.product.ID, Quantity: 40, UnitCost: decimal.RequireFromString("2.50")},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, purchase.ID)

	// totales del documento
	assert.Equal(t, int64(40), purchase.TotalQuantity)
	assert.True(t, purchase.TotalCost.Equal(decimal.RequireFromString("100")))
	assert.True(t, purchase.UnitCost.Equal(decimal.RequireFromString("2.5")))

	// asiento en el libro con saldo resultante y referencia al documento
	require.Len(t, f.store.movements, 1)
	mov := f.store.movements[0]
	assert.Equal(t, entity.ChangeTypePurchase, mov.ChangeType)
	assert.Equal(t, int64(40), mov.QuantityChange)
	assert.Equal(t, int64(40), mov.ResultingStock)
	require.NotNil(t, mov.ReferenceID)
	assert.Equal(t, purchase.ID, *mov.ReferenceID)

	// derivados del producto: total y estado (40 entre 10 y 100 => Moderate)
	stored := f.store.products[f.product.ID]
	assert.Equal(t, int64(40), stored.Quantity)
	assert.Equal(t, entity.ProductStatusModerate, stored.Status)
}

func TestRegisterPurchase_SobrescribePrecioCompraYRecalculaMargen(t *testing.T) {
	f := newFixture(t)

	// precio de venta 20; comprar a costo unitario 10 debe dejar buying=10 y
	// margen round((20-10)/10*100) = 100
	_, err := f.purchaseUC.RegisterPurchase(context.Background(), PurchaseInputDTO{
		SupplierID:       f.supplier.ID,
		InventoryPointID: f.pointA.ID,
		CreatedBy:        "EMP/0001",
		Items: []PurchaseItemInput{
			{ProductID: f.product.ID, Quantity: 3, UnitCost: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	stored := f.store.products[f.product.ID]
	assert.True(t, stored.BuyingPrice.Equal(decimal.NewFromInt(10)),
		"el precio de compra debe sobrescribirse con el último costo unitario, quedó %s", stored.BuyingPrice)
	assert.Equal(t, int64(100), stored.MarkupPercentage,
		"el margen debe recalcularse contra el precio de venta vigente")

	// una segunda compra a otro costo vuelve a sobrescribir
	_, err = f.purchaseUC.RegisterPurchase(context.Background(), PurchaseInputDTO{
		SupplierID:       f.supplier.ID,
		InventoryPointID: f.pointA.ID,
		CreatedBy:        "EMP/0001",
		Items: []PurchaseItemInput{
			{ProductID: f.product.ID, Quantity: 2, UnitCost: decimal.NewFromInt(16)},
		},
	})
	require.NoError(t, err)

	stored = f.store.products[f.product.ID]
	assert.True(t, stored.BuyingPrice.Equal(decimal.NewFromInt(16)))
	assert.Equal(t, int64(25), stored.MarkupPercentage, "round((20-16)/16*100) = 25")
}

func TestRegisterPurchase_UmbralesSeLeenDentroDeLaTx(t *testing.T) {
	f := newFixture(t)

	// Otro proceso sube el mínimo a 50 justo antes de que la tx lea: con 40
	// unidades el estado debe quedar Low, no el Moderate de los umbrales viejos.
	f.runner.onBegin = func() {
		min := int64(50)
		f.store.products[f.product.ID].MinQuantity = &min
	}

	_, err := f.purchaseUC.RegisterPurchase(context.Background(), PurchaseInputDTO{
		SupplierID:       f.supplier.ID,
		InventoryPointID: f.pointA.ID,
		CreatedBy:        "EMP/0001",
		Items: []PurchaseItemInput{
			{ProductID: f.product.ID, Quantity: 40, UnitCost: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProductStatusLow, f.store.products[f.product.ID].Status,
		"el estado derivado debe calcularse con los umbrales vigentes en la tx")
}

func TestRegisterPurchase_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.purchaseUC.RegisterPurchase(ctx, PurchaseInputDTO{
		SupplierID: f.supplier.ID, InventoryPointID: f.pointA.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.purchaseUC.RegisterPurchase(ctx, PurchaseInputDTO{
		SupplierID:       f.supplier.ID,
		InventoryPointID: f.pointA.ID,
		Items:            []PurchaseItemInput{{ProductID: f.product.ID, Quantity: 0, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.purchaseUC.RegisterPurchase(ctx, PurchaseInputDTO{
		SupplierID:       999999,
		InventoryPointID: f.pointA.ID,
		Items:            []PurchaseItemInput{{ProductID: f.product.ID, Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor inexistente")

	assert.Empty(t, f.store.movements, "nada debe asentarse en el libro")
}

func TestRegisterSale(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 50)

	sale, err := f.saleUC.RegisterSale(context.Background(), SaleInputDTO{
		SaleNo:           "S-0001",
		SellerCoUserID:   f.seller.CoUserID,
		CurrencyID:       1,
		InventoryPointID: f.pointA.ID,
		Items: []SaleItemInput{
			{
				ProductID: f.product.ID,
				Quantity:  20,
				UnitPrice: decimal.RequireFromString("5"),
				Discount:  decimal.RequireFromString("10"),
				Tax:       decimal.RequireFromString("16.20"),
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, f.seller.ID, sale.SellerID)
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("100")))
	assert.True(t, sale.NetAmount.Equal(decimal.RequireFromString("90")))
	assert.True(t, sale.GrandTotal.Equal(decimal.RequireFromString("106.20")))

	// el libro registra la salida con saldo resultante
	require.Len(t, f.store.movements, 2) // compra semilla + venta
	mov := f.store.movements[1]
	assert.Equal(t, entity.ChangeTypeSale, mov.ChangeType)
	assert.Equal(t, int64(-20), mov.QuantityChange)
	assert.Equal(t, int64(30), mov.ResultingStock)

	stored := f.store.products[f.product.ID]
	assert.Equal(t, int64(30), stored.Quantity)
}

func TestRegisterSale_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 10)

	movementsBefore := len(f.store.movements)
	qtyBefore := f.store.products[f.product.ID].Quantity

	_, err := f.saleUC.RegisterSale(context.Background(), SaleInputDTO{
		SaleNo:           "S-0002",
		SellerID:         f.seller.ID,
		CurrencyID:       1,
		InventoryPointID: f.pointA.ID,
		Items: []SaleItemInput{
			{ProductID: f.product.ID, Quantity: 25, UnitPrice: decimal.NewFromInt(5)},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuff *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuff)
	assert.Equal(t, int64(10), insuff.Available)
	assert.Equal(t, int64(25), insuff.Required)

	// rollback: ni venta, ni movimiento, ni cambio de saldo
	assert.Empty(t, f.store.sales)
	assert.Len(t, f.store.movements, movementsBefore)
	assert.Equal(t, qtyBefore, f.store.products[f.product.ID].Quantity)
}

func TestRegisterSale_VendedorAmbiguoEsInvalido(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 50)

	// exactamente uno: ID interno o CoUserID, nunca ambos
	_, err := f.saleUC.RegisterSale(context.Background(), SaleInputDTO{
		SaleNo:           "S-0010",
		SellerID:         f.seller.ID,
		SellerCoUserID:   f.seller.CoUserID,
		CurrencyID:       1,
		InventoryPointID: f.pointA.ID,
		Items: []SaleItemInput{
			{ProductID: f.product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.store.sales, "la venta ambigua no debe persistirse")
}

func TestRegisterSale_VentaEnOtroPuntoNoUsaStockAjeno(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 50)

	// el stock vive en el punto A; vender desde B debe fallar aunque el total alcance
	_, err := f.saleUC.RegisterSale(context.Background(), SaleInputDTO{
		SaleNo:           "S-0003",
		SellerID:         f.seller.ID,
		CurrencyID:       1,
		InventoryPointID: f.pointB.ID,
		Items: []SaleItemInput{
			{ProductID: f.product.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTransfer_CrearNoMueveStock(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 30)
	movementsBefore := len(f.store.movements)

	transfer, err := f.transferUC.CreateTransfer(context.Background(), TransferInputDTO{
		FromPointID:    f.pointA.ID,
		ToPointID:      f.pointB.ID,
		AssignedUserID: f.seller.ID,
		CreatedBy:      "EMP/0001",
		Items:          []TransferItemInput{{ProductID: f.product.ID, Quantity: 12}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusPending, transfer.Status)
	assert.Len(t, f.store.movements, movementsBefore, "crear el documento no asienta movimientos")
}

func TestTransfer_CrearEsAtomico(t *testing.T) {
	f := newFixture(t)

	// un fallo al insertar las líneas no debe dejar una cabecera PENDING huérfana
	f.store.failTransferItems = errors.New("fallo simulado en las líneas")

	_, err := f.transferUC.CreateTransfer(context.Background(), TransferInputDTO{
		FromPointID: f.pointA.ID,
		ToPointID:   f.pointB.ID,
		CreatedBy:   "EMP/0001",
		Items:       []TransferItemInput{{ProductID: f.product.ID, Quantity: 3}},
	})
	require.Error(t, err)
	assert.Empty(t, f.store.transfers, "el documento a medias debe revertirse completo")
}

func TestTransfer_FirmarAplicaDosAsientosPorLinea(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 30)

	transfer, err := f.transferUC.CreateTransfer(context.Background(), TransferInputDTO{
		FromPointID: f.pointA.ID,
		ToPointID:   f.pointB.ID,
		CreatedBy:   "EMP/0001",
		Items:       []TransferItemInput{{ProductID: f.product.ID, Quantity: 12}},
	})
	require.NoError(t, err)

	signed, err := f.transferUC.SignTransfer(context.Background(), transfer.ID, "firma-base64", "EMP/0042")
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCompleted, signed.Status)
	assert.Equal(t, "firma-base64", signed.SignatureData)

	// dos asientos con el mismo id de transacción, ambos referenciando al traslado
	movs := f.store.movements[len(f.store.movements)-2:]
	require.Len(t, movs, 2)
	assert.Equal(t, movs[0].TransactionID, movs[1].TransactionID)
	assert.Equal(t, int64(-12), movs[0].QuantityChange)
	assert.Equal(t, f.pointA.ID, movs[0].InventoryPointID)
	assert.Equal(t, int64(12), movs[1].QuantityChange)
	assert.Equal(t, f.pointB.ID, movs[1].InventoryPointID)
	for _, m := range movs {
		assert.Equal(t, entity.ChangeTypeTransfer, m.ChangeType)
		require.NotNil(t, m.ReferenceID)
		assert.Equal(t, transfer.ID, *m.ReferenceID)
	}

	// saldos por punto: 18 en origen, 12 en destino, total sin cambios
	stockA := f.store.stocks[[2]int64{f.product.ID, f.pointA.ID}]
	stockB := f.store.stocks[[2]int64{f.product.ID, f.pointB.ID}]
	assert.Equal(t, int64(18), stockA.Quantity)
	assert.Equal(t, int64(12), stockB.Quantity)
	assert.Equal(t, int64(30), f.store.products[f.product.ID].Quantity)
}

func TestTransfer_FirmarDosVecesConflicto(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 30)

	transfer, err := f.transferUC.CreateTransfer(context.Background(), TransferInputDTO{
		FromPointID: f.pointA.ID,
		ToPointID:   f.pointB.ID,
		CreatedBy:   "EMP/0001",
		Items:       []TransferItemInput{{ProductID: f.product.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.transferUC.SignTransfer(context.Background(), transfer.ID, "firma", "EMP/0042")
	require.NoError(t, err)

	_, err = f.transferUC.SignTransfer(context.Background(), transfer.ID, "firma", "EMP/0042")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTransfer_FirmarSinStockRevierte(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 5)

	transfer, err := f.transferUC.CreateTransfer(context.Background(), TransferInputDTO{
		FromPointID: f.pointA.ID,
		ToPointID:   f.pointB.ID,
		CreatedBy:   "EMP/0001",
		Items:       []TransferItemInput{{ProductID: f.product.ID, Quantity: 20}},
	})
	require.NoError(t, err)

	_, err = f.transferUC.SignTransfer(context.Background(), transfer.ID, "firma", "EMP/0042")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// el traslado sigue PENDING y el stock intacto
	assert.Equal(t, entity.TransferStatusPending, f.store.transfers[transfer.ID].Status)
	assert.Equal(t, int64(5), f.store.stocks[[2]int64{f.product.ID, f.pointA.ID}].Quantity)
}

func TestTransfer_MismoOrigenYDestino(t *testing.T) {
	f := newFixture(t)

	_, err := f.transferUC.CreateTransfer(context.Background(), TransferInputDTO{
		FromPointID: f.pointA.ID,
		ToPointID:   f.pointA.ID,
		CreatedBy:   "EMP/0001",
		Items:       []TransferItemInput{{ProductID: f.product.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterAdjustment(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, f.pointA.ID, 20)

	t.Run("ajuste negativo dentro del saldo", func(t *testing.T) {
		mov, err := f.stockUC.RegisterAdjustment(context.Background(), AdjustmentInputDTO{
			ProductID:        f.product.ID,
			InventoryPointID: f.pointA.ID,
			ChangeType:       entity.ChangeTypeAdjustment,
			QuantityChange:   -5,
			CreatedBy:        "EMP/0001",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(15), mov.ResultingStock)
	})

	t.Run("ajuste que deja saldo negativo falla", func(t *testing.T) {
		_, err := f.stockUC.RegisterAdjustment(context.Background(), AdjustmentInputDTO{
			ProductID:        f.product.ID,
			InventoryPointID: f.pointA.ID,
			ChangeType:       entity.ChangeTypeAdjustment,
			QuantityChange:   -100,
			CreatedBy:        "EMP/0001",
		})
		assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	})

	t.Run("devolucion siempre positiva", func(t *testing.T) {
		_, err := f.stockUC.RegisterAdjustment(context.Background(), AdjustmentInputDTO{
			ProductID:        f.product.ID,
			InventoryPointID: f.pointA.ID,
			ChangeType:       entity.ChangeTypeReturn,
			QuantityChange:   -3,
			CreatedBy:        "EMP/0001",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		mov, err := f.stockUC.RegisterAdjustment(context.Background(), AdjustmentInputDTO{
			ProductID:        f.product.ID,
			InventoryPointID: f.pointA.ID,
			ChangeType:       entity.ChangeTypeReturn,
			QuantityChange:   3,
			CreatedBy:        "EMP/0001",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.ChangeTypeReturn, mov.ChangeType)
		assert.Equal(t, int64(18), mov.ResultingStock)
	})
}

func TestLedger_SaldosResultantesEncadenados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedStock(t, f.pointA.ID, 10)
	f.seedStock(t, f.pointA.ID, 15)

	_, err := f.saleUC.RegisterSale(ctx, SaleInputDTO{
		SaleNo:           "S-0009",
		SellerID:         f.seller.ID,
		CurrencyID:       1,
		InventoryPointID: f.pointA.ID,
		Items:            []SaleItemInput{{ProductID: f.product.ID, Quantity: 8, UnitPrice: decimal.NewFromInt(4)}},
	})
	require.NoError(t, err)

	// cada asiento refleja el saldo del punto después de aplicarse
	var resultings []int64
	for _, m := range f.store.movements {
		resultings = append(resultings, m.ResultingStock)
	}
	assert.Equal(t, []int64{10, 25, 17}, resultings)

	available, err := f.stockUC.GetAvailableAtPoint(ctx, f.product.ID, f.pointA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(17), available)
}
