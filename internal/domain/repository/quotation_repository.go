package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// QuotationFilter filtros de listado de cotizaciones.
type QuotationFilter struct {
	CoUserID   string // vacío = todas
	StatusID   int    // 0 = todos
	ClientName string // subcadena, case-insensitive
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// QuotationRepository define el puerto de persistencia para cotizaciones.
type QuotationRepository interface {
	// Create persiste cabecera, cliente y líneas; deja el ID generado en quotation.
	Create(quotation *entity.Quotation) error
	GetByQuotationID(quotationID string) (*entity.Quotation, error)
	List(filter QuotationFilter) ([]*entity.Quotation, error)
	Count(filter QuotationFilter) (int64, error)
	// SumGrandTotal suma los totales de las cotizaciones que cumplen el filtro.
	SumGrandTotal(filter QuotationFilter) (decimal.Decimal, error)
	// CountSince cuenta las emitidas desde un instante (contador mensual del ID).
	CountSince(since time.Time) (int64, error)
	UpdateStatus(quotationID string, statusID int) error
	// ListActiveExpiredBefore devuelve las cotizaciones en created/sent cuya
	// validez venció antes del instante dado (barrido de expiración).
	ListActiveExpiredBefore(now time.Time) ([]*entity.Quotation, error)
	// ListActiveByStatus devuelve las cotizaciones en los estados dados que aún
	// no vencen al instante dado (candidatas a recordatorio).
	ListActiveByStatus(statusIDs []int, now time.Time) ([]*entity.Quotation, error)
}

// QuotationTcsRepository define el puerto para las plantillas de TCs.
type QuotationTcsRepository interface {
	GetByID(id int64) (*entity.QuotationTcs, error)
	ListByType(typeID int64) ([]*entity.QuotationTcs, error)
	List() ([]*entity.QuotationTcs, error)
}

// QuotationDraftRepository define el puerto para borradores de cotización.
type QuotationDraftRepository interface {
	Create(draft *entity.QuotationDraft) error
	// UpsertAuto reemplaza el auto-borrador del usuario (hay a lo sumo uno).
	UpsertAuto(draft *entity.QuotationDraft) error
	GetByID(id int64) (*entity.QuotationDraft, error)
	ListByUser(userID int64) ([]*entity.QuotationDraft, error)
	CountManualByUser(userID int64) (int64, error)
	Delete(id int64) error
	DeleteAutoByUser(userID int64) error
}

// QuotationTagRepository define el puerto para etiquetas sobre cotizaciones.
type QuotationTagRepository interface {
	Create(tag *entity.QuotationTag) error
	ListByQuotation(quotationID string) ([]*entity.QuotationTag, error)
	ListByTaggedUser(userID int64, limit, offset int) ([]*entity.QuotationTag, error)
}
