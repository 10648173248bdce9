package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

const quotationColumns = `id, quotation_id, co_user_id, time, type_id, category_id, currency_id,
	tcs_id, tcs_edited, vat_excluded, validity_days, payment_grace_days, initial_payment_pct,
	last_payment_pct, sub_total, vat, grand_total, status_id,
	client_name, client_contact_person, client_external_ref, client_email, client_phone,
	client_box_number, client_country, client_city, client_address,
	created_at, updated_at`

// QuotationRepo implementación de QuotationRepository sobre PostgreSQL.
// El cliente va inline en la cabecera (se captura con el documento); las líneas
// en quotation_line_items.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create persiste cabecera, cliente y líneas en una sola transacción; deja el
// ID generado en quotation. Si el Querier ya es una tx se inserta directo.
func (r *QuotationRepo) Create(quotation *entity.Quotation) error {
	ctx := context.Background()
	beginner, ok := r.q.(interface {
		Begin(ctx context.Context) (pgx.Tx, error)
	})
	if !ok {
		return r.create(quotation)
	}

	tx, err := beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := (&QuotationRepo{q: tx}).create(quotation); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *QuotationRepo) create(quotation *entity.Quotation) error {
	query := `
		INSERT INTO quotations (quotation_id, co_user_id, time, type_id, category_id, currency_id,
			tcs_id, tcs_edited, vat_excluded, validity_days, payment_grace_days, initial_payment_pct,
			last_payment_pct, sub_total, vat, grand_total, status_id,
			client_name, client_contact_person, client_external_ref, client_email, client_phone,
			client_box_number, client_country, client_city, client_address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
		RETURNING id`
	c := quotation.Client
	err := r.q.QueryRow(context.Background(), query,
		quotation.QuotationID, quotation.CoUserID, quotation.Time, quotation.TypeID,
		quotation.CategoryID, quotation.CurrencyID, quotation.TcsID, quotation.TcsEdited,
		quotation.VatExcluded, quotation.ValidityDays, quotation.PaymentGraceDays,
		quotation.InitialPaymentPct, quotation.LastPaymentPct, quotation.SubTotal,
		quotation.Vat, quotation.GrandTotal, quotation.StatusID,
		c.Name, c.ContactPerson, c.ExternalRef, c.Email, c.Phone, c.BoxNumber,
		c.Country, c.City, c.AddressLine1,
		quotation.CreatedAt, quotation.UpdatedAt,
	).Scan(&quotation.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}

	for i := range quotation.LineItems {
		item := &quotation.LineItems[i]
		item.QuotationID = quotation.ID
		err := r.q.QueryRow(context.Background(),
			`INSERT INTO quotation_line_items (quotation_id, name, description, quantity, units, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			item.QuotationID, item.Name, item.Description, item.Quantity, item.Units, item.UnitPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert quotation line item: %w", err)
		}
	}
	return nil
}

func scanQuotation(row interface{ Scan(...any) error }) (*entity.Quotation, error) {
	var q entity.Quotation
	err := row.Scan(
		&q.ID, &q.QuotationID, &q.CoUserID, &q.Time, &q.TypeID, &q.CategoryID, &q.CurrencyID,
		&q.TcsID, &q.TcsEdited, &q.VatExcluded, &q.ValidityDays, &q.PaymentGraceDays,
		&q.InitialPaymentPct, &q.LastPaymentPct, &q.SubTotal, &q.Vat, &q.GrandTotal, &q.StatusID,
		&q.Client.Name, &q.Client.ContactPerson, &q.Client.ExternalRef, &q.Client.Email,
		&q.Client.Phone, &q.Client.BoxNumber, &q.Client.Country, &q.Client.City,
		&q.Client.AddressLine1, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuotationRepo) loadItems(q *entity.Quotation) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, quotation_id, name, description, quantity, units, unit_price
		 FROM quotation_line_items WHERE quotation_id = $1 ORDER BY id`, q.ID)
	if err != nil {
		return fmt.Errorf("list quotation line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.QuotationLineItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.Name, &it.Description,
			&it.Quantity, &it.Units, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan quotation line item: %w", err)
		}
		q.LineItems = append(q.LineItems, it)
	}
	return rows.Err()
}

// GetByQuotationID obtiene una cotización (con líneas) por su id de negocio.
func (r *QuotationRepo) GetByQuotationID(quotationID string) (*entity.Quotation, error) {
	q, err := scanQuotation(r.q.QueryRow(context.Background(),
		`SELECT `+quotationColumns+` FROM quotations WHERE quotation_id = $1`, quotationID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if err := r.loadItems(q); err != nil {
		return nil, err
	}
	return q, nil
}

// filterClause arma el WHERE dinámico del filtro. Devuelve la cláusula y los args.
func filterClause(filter repository.QuotationFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.CoUserID != "" {
		add("co_user_id = $%d", filter.CoUserID)
	}
	if filter.StatusID != 0 {
		add("status_id = $%d", filter.StatusID)
	}
	if filter.ClientName != "" {
		add("client_name ILIKE $%d", "%"+filter.ClientName+"%")
	}
	if !filter.From.IsZero() {
		add("time >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		add("time <= $%d", filter.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List lista cotizaciones según filtro (sin líneas).
func (r *QuotationRepo) List(filter repository.QuotationFilter) ([]*entity.Quotation, error) {
	where, args := filterClause(filter)
	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM quotations%s ORDER BY time DESC LIMIT $%d OFFSET $%d`,
		quotationColumns, where, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// Count cuenta las cotizaciones que cumplen el filtro.
func (r *QuotationRepo) Count(filter repository.QuotationFilter) (int64, error) {
	where, args := filterClause(filter)
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM quotations`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotations: %w", err)
	}
	return n, nil
}

// SumGrandTotal suma los totales de las cotizaciones que cumplen el filtro.
func (r *QuotationRepo) SumGrandTotal(filter repository.QuotationFilter) (decimal.Decimal, error) {
	where, args := filterClause(filter)
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(grand_total), 0) FROM quotations`+where, args...).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum quotations: %w", err)
	}
	return sum, nil
}

// CountSince cuenta las emitidas desde un instante (contador mensual del ID).
func (r *QuotationRepo) CountSince(since time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quotations WHERE time >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotations since: %w", err)
	}
	return n, nil
}

// UpdateStatus cambia el estado de una cotización por su id de negocio.
func (r *QuotationRepo) UpdateStatus(quotationID string, statusID int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE quotations SET status_id = $2, updated_at = now() WHERE quotation_id = $1`,
		quotationID, statusID)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveExpiredBefore devuelve las cotizaciones en created/sent cuya validez
// venció antes del instante dado (barrido de expiración).
func (r *QuotationRepo) ListActiveExpiredBefore(now time.Time) ([]*entity.Quotation, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM quotations
		 WHERE status_id IN ($1, $2) AND time + validity_days * interval '1 day' < $3`,
		quotationColumns)
	rows, err := r.q.Query(context.Background(), query,
		entity.QuotationStatusCreated, entity.QuotationStatusSent, now)
	if err != nil {
		return nil, fmt.Errorf("list expired quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// ListActiveByStatus devuelve las cotizaciones en los estados dados que aún no
// vencen al instante dado (candidatas a recordatorio).
func (r *QuotationRepo) ListActiveByStatus(statusIDs []int, now time.Time) ([]*entity.Quotation, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM quotations
		 WHERE status_id = ANY($1) AND time + validity_days * interval '1 day' > $2`,
		quotationColumns)
	rows, err := r.q.Query(context.Background(), query, statusIDs, now)
	if err != nil {
		return nil, fmt.Errorf("list active quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}
