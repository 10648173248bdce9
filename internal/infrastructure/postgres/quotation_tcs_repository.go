package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.QuotationTcsRepository = (*QuotationTcsRepo)(nil)

const tcsColumns = `id, type_id, delivery_days, validity_days, payment_grace_days,
	initial_payment_pct, last_payment_pct, vat_percentage, payment_words, validity_words`

// QuotationTcsRepo implementación de QuotationTcsRepository sobre PostgreSQL.
// Las plantillas se siembran por migración; desde la API solo se leen.
type QuotationTcsRepo struct {
	q Querier
}

// NewQuotationTcsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationTcsRepository(q Querier) *QuotationTcsRepo {
	return &QuotationTcsRepo{q: q}
}

func scanTcs(row interface{ Scan(...any) error }) (*entity.QuotationTcs, error) {
	var t entity.QuotationTcs
	err := row.Scan(&t.ID, &t.TypeID, &t.DeliveryDays, &t.ValidityDays, &t.PaymentGraceDays,
		&t.InitialPaymentPct, &t.LastPaymentPct, &t.VatPercentage, &t.PaymentWords, &t.ValidityWords)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID obtiene una plantilla de TCs.
func (r *QuotationTcsRepo) GetByID(id int64) (*entity.QuotationTcs, error) {
	t, err := scanTcs(r.q.QueryRow(context.Background(),
		`SELECT `+tcsColumns+` FROM quotation_tcs WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation tcs: %w", err)
	}
	return t, nil
}

// ListByType lista las plantillas de un tipo de cotización.
func (r *QuotationTcsRepo) ListByType(typeID int64) ([]*entity.QuotationTcs, error) {
	return r.scanList(`SELECT `+tcsColumns+` FROM quotation_tcs WHERE type_id = $1 ORDER BY id`, typeID)
}

// List lista todas las plantillas.
func (r *QuotationTcsRepo) List() ([]*entity.QuotationTcs, error) {
	return r.scanList(`SELECT ` + tcsColumns + ` FROM quotation_tcs ORDER BY id`)
}

func (r *QuotationTcsRepo) scanList(query string, args ...any) ([]*entity.QuotationTcs, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotation tcs: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuotationTcs
	for rows.Next() {
		t, err := scanTcs(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation tcs: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
