package inventory

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	// Run para operaciones que solo tocan el libro de stock.
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.InventoryStockRepository,
		productRepo repository.ProductRepository,
	) error) error

	// RunTrade para compras/ventas/traslados: agrega los repositorios de documentos.
	RunTrade(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.InventoryStockRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		saleRepo repository.SaleRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
