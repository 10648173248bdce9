package inventory

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TradeQueryUseCase lecturas de documentos de compra, venta y traslado.
// Separado de los casos de uso de registro, que solo escriben.
type TradeQueryUseCase struct {
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	transferRepo repository.TransferRepository
}

// NewTradeQueryUseCase construye el caso de uso.
func NewTradeQueryUseCase(
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	transferRepo repository.TransferRepository,
) *TradeQueryUseCase {
	return &TradeQueryUseCase{
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		transferRepo: transferRepo,
	}
}

// GetPurchase obtiene una compra con sus líneas.
func (uc *TradeQueryUseCase) GetPurchase(_ context.Context, id int64) (*entity.Purchase, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListPurchases lista compras; si supplierID no es cero filtra por proveedor.
func (uc *TradeQueryUseCase) ListPurchases(_ context.Context, supplierID int64, limit, offset int) ([]*entity.Purchase, error) {
	if supplierID != 0 {
		return uc.purchaseRepo.ListBySupplier(supplierID, limit, offset)
	}
	return uc.purchaseRepo.List(limit, offset)
}

// GetSale obtiene una venta con sus líneas.
func (uc *TradeQueryUseCase) GetSale(_ context.Context, id int64) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// GetSaleByNo obtiene una venta por su número externo.
func (uc *TradeQueryUseCase) GetSaleByNo(_ context.Context, saleNo string) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetBySaleNo(saleNo)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ListSales lista ventas, más recientes primero.
func (uc *TradeQueryUseCase) ListSales(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(limit, offset)
}

// GetTransfer obtiene un traslado con sus líneas.
func (uc *TradeQueryUseCase) GetTransfer(_ context.Context, id int64) (*entity.Transfer, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// ListTransfers lista traslados; status y assignedUserID son filtros opcionales
// excluyentes (gana status si vienen ambos).
func (uc *TradeQueryUseCase) ListTransfers(_ context.Context, status string, assignedUserID int64, limit, offset int) ([]*entity.Transfer, error) {
	if status != "" {
		return uc.transferRepo.ListByStatus(status, limit, offset)
	}
	if assignedUserID != 0 {
		return uc.transferRepo.ListByAssignedUser(assignedUserID, limit, offset)
	}
	return uc.transferRepo.List(limit, offset)
}
