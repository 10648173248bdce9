package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados entre puntos.
type TransferRepository interface {
	// Create persiste la cabecera y sus líneas en estado PENDING; deja el ID en transfer.
	Create(transfer *entity.Transfer) error
	GetByID(id int64) (*entity.Transfer, error)
	// GetByIDForUpdate bloquea el traslado mientras se firma o cancela.
	GetByIDForUpdate(id int64) (*entity.Transfer, error)
	List(limit, offset int) ([]*entity.Transfer, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error)
	ListByAssignedUser(userID int64, limit, offset int) ([]*entity.Transfer, error)
	// UpdateStatus cambia el estado y guarda la firma si viene.
	UpdateStatus(id int64, status string, signatureData string) error
}
