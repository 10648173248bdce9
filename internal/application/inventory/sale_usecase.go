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

// maxSaleNoLength largo máximo del número de venta externo.
const maxSaleNoLength = 12

// RegisterSaleUseCase registra una venta de forma transaccional: documento +
// asiento negativo por cada línea en el punto de venta. Si alguna línea deja el
// stock en negativo toda la venta se revierte.
type RegisterSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	pointRepo   repository.InventoryPointRepository
	userRepo    repository.UserRepository
}

// NewRegisterSaleUseCase construye el caso de uso.
func NewRegisterSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	pointRepo repository.InventoryPointRepository,
	userRepo repository.UserRepository,
) *RegisterSaleUseCase {
	return &RegisterSaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		pointRepo:   pointRepo,
		userRepo:    userRepo,
	}
}

// SaleItemInput línea de venta. Discount y Tax son montos absolutos de la línea.
type SaleItemInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Tax       decimal.Decimal
}

// SaleInputDTO entrada para registrar una venta. El vendedor viene por
// exactamente uno de SellerID o SellerCoUserID; ambos a la vez es inválido.
type SaleInputDTO struct {
	SaleNo           string
	SellerID         int64
	SellerCoUserID   string
	CurrencyID       int64
	InventoryPointID int64
	Items            []SaleItemInput
}

// RegisterSale valida la entrada, resuelve el vendedor, calcula los totales y,
// en una sola transacción, persiste el documento y asienta un movimiento SALE
// negativo por línea.
func (uc *RegisterSaleUseCase) RegisterSale(ctx context.Context, input SaleInputDTO) (*entity.Sale, error) {
	if len(input.Items) == 0 || input.InventoryPointID == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.SaleNo == "" || len(input.SaleNo) > maxSaleNoLength {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 || item.UnitPrice.IsNegative() ||
			item.Discount.IsNegative() || item.Tax.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	seller, err := uc.resolveSeller(input)
	if err != nil {
		return nil, err
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

	items := make([]entity.SaleItem, 0, len(input.Items))
	for _, in := range input.Items {
		item := entity.SaleItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Discount:  in.Discount,
			Tax:       in.Tax,
		}
		item.TotalPrice = domaininv.SaleLineTotal(item)
		items = append(items, item)
	}
	totals := domaininv.CalculateSaleTotals(items)

	sale := &entity.Sale{
		SaleNo:           input.SaleNo,
		SellerID:         seller.ID,
		CurrencyID:       input.CurrencyID,
		InventoryPointID: input.InventoryPointID,
		TotalQuantity:    totals.TotalQuantity,
		TotalAmount:      totals.Amount,
		TotalDiscount:    totals.Discount,
		TotalTax:         totals.Tax,
		NetAmount:        totals.Net,
		GrandTotal:       totals.GrandTotal,
		CreatedAt:        now,
		Items:            items,
	}

	err = uc.txRunner.RunTrade(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.InventoryStockRepository,
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
		_ repository.TransferRepository,
	) error {
		// Relee los productos dentro de la tx para que el estado derivado use
		// umbrales vigentes y no los leídos antes de abrirla
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

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		ledger := NewLedger(movRepo, stockRepo, productRepo)
		for _, item := range sale.Items {
			refID := sale.ID
			_, err := ledger.Apply(products[item.ProductID], Entry{
				InventoryPointID: input.InventoryPointID,
				ChangeType:       entity.ChangeTypeSale,
				QuantityChange:   -item.Quantity,
				ReferenceID:      &refID,
				TransactionID:    txID,
				CreatedBy:        seller.CoUserID,
				Now:              now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (uc *RegisterSaleUseCase) resolveSeller(input SaleInputDTO) (*entity.User, error) {
	if input.SellerCoUserID != "" && input.SellerID != 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.SellerCoUserID != "" {
		seller, err := uc.userRepo.GetByCoUserID(input.SellerCoUserID)
		if err != nil || seller == nil {
			return nil, domain.ErrUserNotFound
		}
		return seller, nil
	}
	if input.SellerID == 0 {
		return nil, domain.ErrInvalidInput
	}
	seller, err := uc.userRepo.GetByID(input.SellerID)
	if err != nil || seller == nil {
		return nil, domain.ErrUserNotFound
	}
	return seller, nil
}
