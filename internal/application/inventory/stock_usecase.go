package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// StockUseCase consultas del libro de stock y ajustes manuales
// (ADJUSTMENT con signo libre, RETURN siempre positivo).
type StockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	pointRepo   repository.InventoryPointRepository
	movRepo     repository.StockMovementRepository
	stockRepo   repository.InventoryStockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	pointRepo repository.InventoryPointRepository,
	movRepo repository.StockMovementRepository,
	stockRepo repository.InventoryStockRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		pointRepo:   pointRepo,
		movRepo:     movRepo,
		stockRepo:   stockRepo,
	}
}

// AdjustmentInputDTO entrada para un ajuste o devolución manual.
type AdjustmentInputDTO struct {
	ProductID        int64
	InventoryPointID int64
	ChangeType       string // ADJUSTMENT o RETURN
	QuantityChange   int64  // con signo; RETURN debe ser positivo
	ReferenceID      *int64
	CreatedBy        string
}

// RegisterAdjustment asienta un movimiento manual en el libro dentro de una
// transacción. Mantiene las mismas garantías que el resto de operaciones:
// bloqueo de fila, saldo no negativo y recálculo de derivados.
func (uc *StockUseCase) RegisterAdjustment(ctx context.Context, input AdjustmentInputDTO) (*entity.StockMovement, error) {
	if input.ProductID == 0 || input.InventoryPointID == 0 || input.QuantityChange == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch input.ChangeType {
	case entity.ChangeTypeAdjustment:
	case entity.ChangeTypeReturn:
		if input.QuantityChange < 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	point, err := uc.pointRepo.GetByID(input.InventoryPointID)
	if err != nil || point == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	txID := uuid.New().String()

	var mov *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.InventoryStockRepository,
		productRepo repository.ProductRepository,
	) error {
		ledger := NewLedger(movRepo, stockRepo, productRepo)
		var applyErr error
		mov, applyErr = ledger.Apply(product, Entry{
			InventoryPointID: input.InventoryPointID,
			ChangeType:       input.ChangeType,
			QuantityChange:   input.QuantityChange,
			ReferenceID:      input.ReferenceID,
			TransactionID:    txID,
			CreatedBy:        input.CreatedBy,
			Now:              now,
		})
		return applyErr
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// GetCurrentStock devuelve la cantidad total del producto (suma de todos los puntos).
func (uc *StockUseCase) GetCurrentStock(_ context.Context, productID int64) (int64, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	return product.Quantity, nil
}

// GetAvailableAtPoint devuelve el saldo del producto en un punto concreto (0 si no hay fila).
func (uc *StockUseCase) GetAvailableAtPoint(_ context.Context, productID, inventoryPointID int64) (int64, error) {
	stock, err := uc.stockRepo.Get(productID, inventoryPointID)
	if err != nil {
		return 0, err
	}
	if stock == nil {
		return 0, nil
	}
	return stock.Quantity, nil
}

// ListMovementsByProduct historial de movimientos de un producto, más reciente primero.
func (uc *StockUseCase) ListMovementsByProduct(_ context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

// ListMovementsByPoint historial de movimientos de un punto de inventario.
func (uc *StockUseCase) ListMovementsByPoint(_ context.Context, inventoryPointID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByPoint(inventoryPointID, limit, offset)
}

// ListStockByPoint saldos materializados de un punto.
func (uc *StockUseCase) ListStockByPoint(_ context.Context, inventoryPointID int64) ([]*entity.InventoryStock, error) {
	return uc.stockRepo.ListByPoint(inventoryPointID)
}

// ListStockByProduct saldos del producto en cada punto.
func (uc *StockUseCase) ListStockByProduct(_ context.Context, productID int64) ([]*entity.InventoryStock, error) {
	return uc.stockRepo.ListByProduct(productID)
}
