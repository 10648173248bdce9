package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `id, from_point_id, to_point_id, assigned_user_id, created_by, note,
	status, signature_data, created_at, updated_at`

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste la cabecera y sus líneas en estado PENDING; deja los IDs en transfer.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (from_point_id, to_point_id, assigned_user_id, created_by, note,
			status, signature_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		transfer.FromPointID, transfer.ToPointID, transfer.AssignedUserID, transfer.CreatedBy,
		transfer.Note, transfer.Status, transfer.SignatureData, transfer.CreatedAt, transfer.UpdatedAt,
	).Scan(&transfer.ID)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}

	for i := range transfer.Items {
		item := &transfer.Items[i]
		item.TransferID = transfer.ID
		err := r.q.QueryRow(context.Background(),
			`INSERT INTO transfer_items (transfer_id, product_id, quantity)
			 VALUES ($1, $2, $3) RETURNING id`,
			item.TransferID, item.ProductID, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

func (r *TransferRepo) getOne(query string, id int64) (*entity.Transfer, error) {
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.FromPointID, &t.ToPointID, &t.AssignedUserID, &t.CreatedBy, &t.Note,
		&t.Status, &t.SignatureData, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT id, transfer_id, product_id, quantity FROM transfer_items WHERE transfer_id = $1 ORDER BY id`,
		t.ID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		t.Items = append(t.Items, it)
	}
	return &t, rows.Err()
}

// GetByID obtiene un traslado con sus líneas.
func (r *TransferRepo) GetByID(id int64) (*entity.Transfer, error) {
	return r.getOne(`SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene un traslado bloqueando la cabecera (SELECT FOR UPDATE)
// mientras se firma o cancela.
func (r *TransferRepo) GetByIDForUpdate(id int64) (*entity.Transfer, error) {
	return r.getOne(`SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransferRepo) list(query string, args ...any) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.FromPointID, &t.ToPointID, &t.AssignedUserID, &t.CreatedBy,
			&t.Note, &t.Status, &t.SignatureData, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// List lista traslados con paginación (sin líneas).
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	return r.list(
		`SELECT `+transferColumns+` FROM transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListByStatus lista traslados en un estado con paginación.
func (r *TransferRepo) ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error) {
	return r.list(
		`SELECT `+transferColumns+` FROM transfers WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
}

// ListByAssignedUser lista traslados asignados a un usuario.
func (r *TransferRepo) ListByAssignedUser(userID int64, limit, offset int) ([]*entity.Transfer, error) {
	return r.list(
		`SELECT `+transferColumns+` FROM transfers WHERE assigned_user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

// UpdateStatus cambia el estado y guarda la firma si viene.
func (r *TransferRepo) UpdateStatus(id int64, status string, signatureData string) error {
	query := `UPDATE transfers SET status = $2, updated_at = now() WHERE id = $1`
	args := []any{id, status}
	if signatureData != "" {
		query = `UPDATE transfers SET status = $2, signature_data = $3, updated_at = now() WHERE id = $1`
		args = append(args, signatureData)
	}
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}
