package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.QuotationTagRepository = (*QuotationTagRepo)(nil)

// QuotationTagRepo implementación de QuotationTagRepository sobre PostgreSQL.
type QuotationTagRepo struct {
	q Querier
}

// NewQuotationTagRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationTagRepository(q Querier) *QuotationTagRepo {
	return &QuotationTagRepo{q: q}
}

// Create persiste una etiqueta sobre una cotización.
func (r *QuotationTagRepo) Create(tag *entity.QuotationTag) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO quotation_tags (quotation_id, tagged_user_id, tagged_by, message, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		tag.QuotationID, tag.TaggedUserID, tag.TaggedBy, tag.Message, tag.CreatedAt,
	).Scan(&tag.ID)
	if err != nil {
		return fmt.Errorf("insert quotation tag: %w", err)
	}
	return nil
}

func (r *QuotationTagRepo) scanList(query string, args ...any) ([]*entity.QuotationTag, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotation tags: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuotationTag
	for rows.Next() {
		var t entity.QuotationTag
		if err := rows.Scan(&t.ID, &t.QuotationID, &t.TaggedUserID, &t.TaggedBy, &t.Message, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quotation tag: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ListByQuotation lista las etiquetas de una cotización.
func (r *QuotationTagRepo) ListByQuotation(quotationID string) ([]*entity.QuotationTag, error) {
	return r.scanList(
		`SELECT id, quotation_id, tagged_user_id, tagged_by, message, created_at
		 FROM quotation_tags WHERE quotation_id = $1 ORDER BY created_at DESC`, quotationID)
}

// ListByTaggedUser lista las etiquetas que recibió un usuario.
func (r *QuotationTagRepo) ListByTaggedUser(userID int64, limit, offset int) ([]*entity.QuotationTag, error) {
	return r.scanList(
		`SELECT id, quotation_id, tagged_user_id, tagged_by, message, created_at
		 FROM quotation_tags WHERE tagged_user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}
