package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.QuotationDraftRepository = (*QuotationDraftRepo)(nil)

// QuotationDraftRepo implementación de QuotationDraftRepository sobre PostgreSQL.
type QuotationDraftRepo struct {
	q Querier
}

// NewQuotationDraftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationDraftRepository(q Querier) *QuotationDraftRepo {
	return &QuotationDraftRepo{q: q}
}

// Create persiste un borrador manual.
func (r *QuotationDraftRepo) Create(draft *entity.QuotationDraft) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO quotation_drafts (user_id, auto, payload, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		draft.UserID, draft.Auto, draft.Payload, draft.CreatedAt,
	).Scan(&draft.ID)
	if err != nil {
		return fmt.Errorf("insert quotation draft: %w", err)
	}
	return nil
}

// UpsertAuto reemplaza el auto-borrador del usuario (hay a lo sumo uno, garantizado
// por índice único parcial sobre (user_id) WHERE auto).
func (r *QuotationDraftRepo) UpsertAuto(draft *entity.QuotationDraft) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO quotation_drafts (user_id, auto, payload, created_at)
		 VALUES ($1, true, $2, $3)
		 ON CONFLICT (user_id) WHERE auto
		 DO UPDATE SET payload = EXCLUDED.payload, created_at = EXCLUDED.created_at
		 RETURNING id`,
		draft.UserID, draft.Payload, draft.CreatedAt,
	).Scan(&draft.ID)
	if err != nil {
		return fmt.Errorf("upsert auto draft: %w", err)
	}
	return nil
}

// GetByID obtiene un borrador.
func (r *QuotationDraftRepo) GetByID(id int64) (*entity.QuotationDraft, error) {
	var d entity.QuotationDraft
	err := r.q.QueryRow(context.Background(),
		`SELECT id, user_id, auto, payload, created_at FROM quotation_drafts WHERE id = $1`, id,
	).Scan(&d.ID, &d.UserID, &d.Auto, &d.Payload, &d.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation draft: %w", err)
	}
	return &d, nil
}

// ListByUser lista los borradores del usuario (manuales y auto).
func (r *QuotationDraftRepo) ListByUser(userID int64) ([]*entity.QuotationDraft, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, user_id, auto, payload, created_at
		 FROM quotation_drafts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list quotation drafts: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuotationDraft
	for rows.Next() {
		var d entity.QuotationDraft
		if err := rows.Scan(&d.ID, &d.UserID, &d.Auto, &d.Payload, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quotation draft: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountManualByUser cuenta los borradores manuales del usuario (tope de 5).
func (r *QuotationDraftRepo) CountManualByUser(userID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quotation_drafts WHERE user_id = $1 AND NOT auto`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotation drafts: %w", err)
	}
	return n, nil
}

// Delete borra un borrador.
func (r *QuotationDraftRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM quotation_drafts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete quotation draft: %w", err)
	}
	return nil
}

// DeleteAutoByUser borra el auto-borrador del usuario si existe.
func (r *QuotationDraftRepo) DeleteAutoByUser(userID int64) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM quotation_drafts WHERE user_id = $1 AND auto`, userID); err != nil {
		return fmt.Errorf("delete auto draft: %w", err)
	}
	return nil
}
