package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// RegisterPurchaseUseCase registra una compra a proveedor de forma transaccional:
// documento + asiento positivo por cada línea en el punto receptor.
type RegisterPurchaseUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	pointRepo    repository.InventoryPointRepository
}

// NewRegisterPurchaseUseCase construye el caso de uso.
func NewRegisterPurchaseUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	pointRepo repository.InventoryPointRepository,
) *RegisterPurchaseUseCase {
	return &RegisterPurchaseUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		pointRepo:    pointRepo,
	}
}

// PurchaseItemInput línea de compra. TotalCost opcional: si es cero se deriva
// como Quantity*UnitCost.
type PurchaseItemInput struct {
	ProductID int64
	Quantity  int64
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
}

// PurchaseInputDTO entrada para registrar una compra.
type PurchaseInputDTO struct {
	SupplierID       int64
	InventoryPointID int64
	CreatedBy        string
	Items            []PurchaseItemInput
}

// RegisterPurchase valida la entrada, calcula los totales y, en una sola
// transacción, persiste el documento y asienta un movimiento PURCHASE por línea.
func (uc *RegisterPurchaseUseCase) RegisterPurchase(ctx context.Context, input PurchaseInputDTO) (*entity.Purchase, error) {
	if len(input.Items) == 0 || input.SupplierID == 0 || input.InventoryPointID == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 || item.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := uc.supplierRepo.GetByID(input.SupplierID)
	if err != nil || supplier == nil {
		return nil, domain.ErrNotFound
	}
	point, err := uc.pointRepo.GetByID(input.InventoryPointID)
	if err != nil || point == nil {
		return nil, domain.ErrNotFound
	}
	products := make(map[int64]*entity.Product, len(input.Items))
	for _, item := range input.Items {
		if _, ok := products[item.ProductID]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || p == nil {
			return nil, domain.ErrNotFound
		}
		products[item.ProductID] = p
	}

	now := time.Now()
	txID := uuid.New().String()

	items := make([]entity.PurchaseItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, entity.PurchaseItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitCost:  in.UnitCost,
			TotalCost: in.TotalCost,
		})
	}
	for i := range items {
		items[i].TotalCost = domaininv.PurchaseLineTotal(items[i])
	}
	totals := domaininv.CalculatePurchaseTotals(items)

	purchase := &entity.Purchase{
		SupplierID:       input.SupplierID,
		InventoryPointID: input.InventoryPointID,
		TotalQuantity:    totals.TotalQuantity,
		UnitCost:         totals.TotalUnitCost,
		TotalCost:        totals.TotalCost,
		CreatedBy:        input.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
		Items:            items,
	}

	err = uc.txRunner.RunTrade(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.InventoryStockRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SaleRepository,
		_ repository.TransferRepository,
	) error {
		// Relee los productos dentro de la tx: umbrales y precio de venta vigentes
		for id := range products {
			p, err := productRepo.GetByID(id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			products[id] = p
		}

		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		ledger := NewLedger(movRepo, stockRepo, productRepo)
		for _, item := range purchase.Items {
			product := products[item.ProductID]
			refID := purchase.ID
			_, err := ledger.Apply(product, Entry{
				InventoryPointID: input.InventoryPointID,
				ChangeType:       entity.ChangeTypePurchase,
				QuantityChange:   item.Quantity,
				ReferenceID:      &refID,
				TransactionID:    txID,
				CreatedBy:        input.CreatedBy,
				Now:              now,
			})
			if err != nil {
				return err
			}

			// El último costo de compra sobrescribe el precio de compra y el
			// margen se recalcula contra el precio de venta vigente.
			product.BuyingPrice = item.UnitCost
			product.MarkupPercentage = domaininv.MarkupPercentage(item.UnitCost, product.SellingPrice)
			if err := productRepo.UpdatePurchasePricing(
				product.ID, product.BuyingPrice, product.MarkupPercentage, input.CreatedBy,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
