package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TransferUseCase gestiona traslados entre puntos. Crear el documento no toca
// stock; los asientos (salida en origen, entrada en destino) se aplican recién
// al firmar, en una sola transacción.
type TransferUseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	productRepo  repository.ProductRepository
	pointRepo    repository.InventoryPointRepository
	userRepo     repository.UserRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	pointRepo repository.InventoryPointRepository,
	userRepo repository.UserRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		productRepo:  productRepo,
		pointRepo:    pointRepo,
		userRepo:     userRepo,
	}
}

// TransferItemInput línea de traslado; la cantidad siempre es positiva.
type TransferItemInput struct {
	ProductID int64
	Quantity  int64
}

// TransferInputDTO entrada para crear un traslado.
type TransferInputDTO struct {
	FromPointID    int64
	ToPointID      int64
	AssignedUserID int64
	CreatedBy      string
	Note           string
	Items          []TransferItemInput
}

// CreateTransfer crea el documento en estado PENDING con sus líneas. No hay
// movimientos de stock hasta la firma.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input TransferInputDTO) (*entity.Transfer, error) {
	if len(input.Items) == 0 || input.FromPointID == 0 || input.ToPointID == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.FromPointID == input.ToPointID {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	from, err := uc.pointRepo.GetByID(input.FromPointID)
	if err != nil || from == nil {
		return nil, domain.ErrNotFound
	}
	to, err := uc.pointRepo.GetByID(input.ToPointID)
	if err != nil || to == nil {
		return nil, domain.ErrNotFound
	}
	if input.AssignedUserID != 0 {
		assignee, err := uc.userRepo.GetByID(input.AssignedUserID)
		if err != nil || assignee == nil {
			return nil, domain.ErrUserNotFound
		}
	}
	for _, item := range input.Items {
		p, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || p == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	items := make([]entity.TransferItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, entity.TransferItem{ProductID: in.ProductID, Quantity: in.Quantity})
	}

	transfer := &entity.Transfer{
		FromPointID:    input.FromPointID,
		ToPointID:      input.ToPointID,
		AssignedUserID: input.AssignedUserID,
		CreatedBy:      input.CreatedBy,
		Note:           input.Note,
		Status:         entity.TransferStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
		Items:          items,
	}
	// Cabecera y líneas se insertan juntas; un fallo a mitad no deja un
	// PENDING a medias.
	err = uc.txRunner.RunTrade(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.InventoryStockRepository,
		_ repository.ProductRepository,
		_ repository.PurchaseRepository,
		_ repository.SaleRepository,
		transferRepo repository.TransferRepository,
	) error {
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// SignTransfer firma un traslado PENDING y aplica los asientos: por cada línea
// una salida en el punto origen y una entrada en el destino, ambas con el mismo
// id de transacción y referenciando al traslado. Si algún origen no alcanza, la
// firma completa se revierte y el traslado sigue PENDING.
func (uc *TransferUseCase) SignTransfer(ctx context.Context, transferID int64, signatureData, signedBy string) (*entity.Transfer, error) {
	if transferID == 0 || signatureData == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()

	var signed *entity.Transfer
	err := uc.txRunner.RunTrade(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.InventoryStockRepository,
		productRepo repository.ProductRepository,
		_ repository.PurchaseRepository,
		_ repository.SaleRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status != entity.TransferStatusPending {
			return domain.ErrConflict
		}

		ledger := NewLedger(movRepo, stockRepo, productRepo)
		for _, item := range transfer.Items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil || product == nil {
				return domain.ErrNotFound
			}
			refID := transfer.ID

			// Salida en origen
			if _, err := ledger.Apply(product, Entry{
				InventoryPointID: transfer.FromPointID,
				ChangeType:       entity.ChangeTypeTransfer,
				QuantityChange:   -item.Quantity,
				ReferenceID:      &refID,
				TransactionID:    txID,
				CreatedBy:        signedBy,
				Now:              now,
			}); err != nil {
				return err
			}
			// Entrada en destino
			if _, err := ledger.Apply(product, Entry{
				InventoryPointID: transfer.ToPointID,
				ChangeType:       entity.ChangeTypeTransfer,
				QuantityChange:   item.Quantity,
				ReferenceID:      &refID,
				TransactionID:    txID,
				CreatedBy:        signedBy,
				Now:              now,
			}); err != nil {
				return err
			}
		}

		if err := transferRepo.UpdateStatus(transfer.ID, entity.TransferStatusCompleted, signatureData); err != nil {
			return err
		}
		transfer.Status = entity.TransferStatusCompleted
		transfer.SignatureData = signatureData
		transfer.UpdatedAt = now
		signed = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return signed, nil
}

// CancelTransfer cancela un traslado que sigue PENDING. Los ya firmados no se
// pueden cancelar.
func (uc *TransferUseCase) CancelTransfer(ctx context.Context, transferID int64) error {
	return uc.txRunner.RunTrade(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.InventoryStockRepository,
		_ repository.ProductRepository,
		_ repository.PurchaseRepository,
		_ repository.SaleRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer, err := transferRepo.GetByIDForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}
		if transfer.Status != entity.TransferStatusPending {
			return domain.ErrConflict
		}
		return transferRepo.UpdateStatus(transferID, entity.TransferStatusCancelled, "")
	})
}
