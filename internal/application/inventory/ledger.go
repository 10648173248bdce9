package inventory

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Ledger asienta movimientos de stock dentro de una transacción. Toda mutación de
// stock del sistema pasa por aquí: bloquea la fila del punto (SELECT FOR UPDATE),
// valida que el saldo no quede negativo, apendiza el movimiento con el saldo
// resultante y recalcula los derivados del producto.
type Ledger struct {
	movRepo     repository.StockMovementRepository
	stockRepo   repository.InventoryStockRepository
	productRepo repository.ProductRepository
}

// NewLedger construye el asentador sobre repositorios atados a la misma tx.
func NewLedger(
	movRepo repository.StockMovementRepository,
	stockRepo repository.InventoryStockRepository,
	productRepo repository.ProductRepository,
) *Ledger {
	return &Ledger{movRepo: movRepo, stockRepo: stockRepo, productRepo: productRepo}
}

// Entry un movimiento a asentar. QuantityChange viene firmado según el tipo:
// compras/devoluciones positivo, ventas negativo, ajustes con su signo,
// traslados dos asientos (negativo en origen, positivo en destino).
type Entry struct {
	InventoryPointID int64
	ChangeType       string
	QuantityChange   int64
	ReferenceID      *int64
	TransactionID    string
	CreatedBy        string
	Now              time.Time
}

// Apply asienta la entrada para el producto dado y devuelve el movimiento creado.
// Actualiza product.Quantity y product.Status en memoria además de persistirlos.
func (l *Ledger) Apply(product *entity.Product, e Entry) (*entity.StockMovement, error) {
	// Bloquea la fila del punto para evitar condiciones de carrera
	stock, err := l.stockRepo.GetForUpdate(product.ID, e.InventoryPointID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = &entity.InventoryStock{
			ProductID:        product.ID,
			InventoryPointID: e.InventoryPointID,
		}
	}

	resulting := stock.Quantity + e.QuantityChange
	if resulting < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID:        product.ID,
			ProductName:      product.Name,
			InventoryPointID: e.InventoryPointID,
			Available:        stock.Quantity,
			Required:         -e.QuantityChange,
		}
	}

	stock.Quantity = resulting
	stock.UpdatedAt = e.Now
	if err := l.stockRepo.Upsert(stock); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		TransactionID:    e.TransactionID,
		ProductID:        product.ID,
		InventoryPointID: e.InventoryPointID,
		ChangeType:       e.ChangeType,
		QuantityChange:   e.QuantityChange,
		ResultingStock:   resulting,
		ReferenceID:      e.ReferenceID,
		CreatedBy:        e.CreatedBy,
		CreatedAt:        e.Now,
	}
	if err := l.movRepo.Create(mov); err != nil {
		return nil, err
	}

	// Recalcula el total del producto a través de todos los puntos y su estado
	total, err := l.stockRepo.TotalByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	status := domaininv.ProductStatus(total, product.MinQuantity, product.MaxQuantity)
	if err := l.productRepo.UpdateStockSummary(product.ID, total, status, e.CreatedBy); err != nil {
		return nil, err
	}
	product.Quantity = total
	product.Status = status

	return mov, nil
}
