package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domainquo "github.com/jhoicas/backoffice-api/internal/domain/quotation"
)

// QuotationClientRequest datos del cliente en el body de creación.
type QuotationClientRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	ExternalRef   string `json:"external_ref"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BoxNumber     *int   `json:"box_number"`
	Country       string `json:"country"`
	City          string `json:"city"`
	AddressLine1  string `json:"address_line1"`
}

// ToInput convierte el request al tipo de entrada del dominio.
func (r QuotationClientRequest) ToInput() domainquo.ClientInput {
	return domainquo.ClientInput{
		Name:          r.Name,
		ContactPerson: r.ContactPerson,
		ExternalRef:   r.ExternalRef,
		Email:         r.Email,
		Phone:         r.Phone,
		BoxNumber:     r.BoxNumber,
		Country:       r.Country,
		City:          r.City,
		AddressLine1:  r.AddressLine1,
	}
}

// QuotationLineItemRequest línea en el body de creación. Quantity y UnitPrice
// son punteros para distinguir ausente de cero.
type QuotationLineItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Units       string           `json:"units"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// ToInput convierte el request al tipo de entrada del dominio.
func (r QuotationLineItemRequest) ToInput() domainquo.LineItemInput {
	return domainquo.LineItemInput{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		Units:       r.Units,
		UnitPrice:   r.UnitPrice,
	}
}

// LineItemInputs convierte el slice completo.
func LineItemInputs(items []QuotationLineItemRequest) []domainquo.LineItemInput {
	out := make([]domainquo.LineItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, it.ToInput())
	}
	return out
}

// CreateQuotationRequest body para POST /api/quotations. Los campos Edited*
// solo aplican si EditTcs es true.
type CreateQuotationRequest struct {
	TypeID     int64 `json:"type_id" validate:"required"`
	CategoryID int64 `json:"category_id" validate:"required"`
	CurrencyID int64 `json:"currency_id" validate:"required"`
	TcsID      int64 `json:"tcs_id" validate:"required"`

	EditTcs                 bool `json:"edit_tcs"`
	EditedValidityDays      *int `json:"edited_validity_days"`
	EditedDeliveryDays      *int `json:"edited_delivery_days"`
	EditedPaymentGraceDays  *int `json:"edited_payment_grace_days"`
	EditedInitialPaymentPct *int `json:"edited_initial_payment_percentage"`
	EditedLastPaymentPct    *int `json:"edited_last_payment_percentage"`

	VatExcluded bool `json:"vat_excluded"`

	Client QuotationClientRequest     `json:"client"`
	Items  []QuotationLineItemRequest `json:"items"`
}

// TcsInput arma la entrada de dominio combinando la plantilla con los editados.
func (r CreateQuotationRequest) TcsInput(tcs entity.QuotationTcs) domainquo.TcsInput {
	return domainquo.TcsInput{
		QuotationTcs:            tcs,
		EditedValidityDays:      r.EditedValidityDays,
		EditedDeliveryDays:      r.EditedDeliveryDays,
		EditedPaymentGraceDays:  r.EditedPaymentGraceDays,
		EditedInitialPaymentPct: r.EditedInitialPaymentPct,
		EditedLastPaymentPct:    r.EditedLastPaymentPct,
	}
}

// QuotationLineItemResponse línea en respuestas.
type QuotationLineItemResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Units       string          `json:"units"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// QuotationClientResponse cliente en respuestas.
type QuotationClientResponse struct {
	Name          string `json:"name,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	ExternalRef   string `json:"external_ref,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	BoxNumber     *int   `json:"box_number,omitempty"`
	Country       string `json:"country,omitempty"`
	City          string `json:"city,omitempty"`
	AddressLine1  string `json:"address_line1,omitempty"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	QuotationID       string                      `json:"quotation_id"`
	CoUserID          string                      `json:"co_user_id"`
	Time              time.Time                   `json:"time"`
	TypeID            int64                       `json:"type_id"`
	CategoryID        int64                       `json:"category_id"`
	CurrencyID        int64                       `json:"currency_id"`
	TcsEdited         bool                        `json:"tcs_edited"`
	VatExcluded       bool                        `json:"vat_excluded"`
	ValidityDays      int                         `json:"validity_days"`
	ExpiresAt         time.Time                   `json:"expires_at"`
	SubTotal          decimal.Decimal             `json:"sub_total"`
	Vat               decimal.Decimal             `json:"vat"`
	GrandTotal        decimal.Decimal             `json:"grand_total"`
	Status            string                      `json:"status"`
	IsExpired         bool                        `json:"is_expired"`
	Client            QuotationClientResponse     `json:"client"`
	Items             []QuotationLineItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

// NewQuotationResponse mapea la entidad a su representación HTTP.
func NewQuotationResponse(q *entity.Quotation, now time.Time) QuotationResponse {
	items := make([]QuotationLineItemResponse, 0, len(q.LineItems))
	for _, it := range q.LineItems {
		items = append(items, QuotationLineItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
			Units:       it.Units,
			UnitPrice:   it.UnitPrice,
		})
	}
	return QuotationResponse{
		QuotationID:  q.QuotationID,
		CoUserID:     q.CoUserID,
		Time:         q.Time,
		TypeID:       q.TypeID,
		CategoryID:   q.CategoryID,
		CurrencyID:   q.CurrencyID,
		TcsEdited:    q.TcsEdited,
		VatExcluded:  q.VatExcluded,
		ValidityDays: q.ValidityDays,
		ExpiresAt:    q.ExpiresAt(),
		SubTotal:     q.SubTotal,
		Vat:          q.Vat,
		GrandTotal:   q.GrandTotal,
		Status:       entity.QuotationStatusKeys[q.StatusID],
		IsExpired:    q.IsExpired(now),
		Client: QuotationClientResponse{
			Name:          q.Client.Name,
			ContactPerson: q.Client.ContactPerson,
			ExternalRef:   q.Client.ExternalRef,
			Email:         q.Client.Email,
			Phone:         q.Client.Phone,
			BoxNumber:     q.Client.BoxNumber,
			Country:       q.Client.Country,
			City:          q.Client.City,
			AddressLine1:  q.Client.AddressLine1,
		},
		Items:     items,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// QuotationSumResponse agregado de totales para GET /api/quotations/summary.
type QuotationSumResponse struct {
	Count      int64           `json:"count"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// QuotationListResponse lista paginada de cotizaciones.
type QuotationListResponse struct {
	Items []QuotationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// UpdateQuotationStatusRequest body para PATCH /api/quotations/:id/status.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=sent accepted rejected"`
}

// TcsResponse plantilla de términos y condiciones en respuestas.
type TcsResponse struct {
	ID                int64  `json:"id"`
	TypeID            int64  `json:"type_id"`
	DeliveryDays      int    `json:"delivery_days"`
	ValidityDays      int    `json:"validity_days"`
	PaymentGraceDays  *int   `json:"payment_grace_days,omitempty"`
	InitialPaymentPct *int   `json:"initial_payment_percentage,omitempty"`
	LastPaymentPct    *int   `json:"last_payment_percentage,omitempty"`
	VatPercentage     int    `json:"vat_percentage"`
	PaymentWords      string `json:"payment_words"`
	ValidityWords     string `json:"validity_words"`
}

// NewTcsResponse mapea la plantilla a su representación HTTP.
func NewTcsResponse(t *entity.QuotationTcs) TcsResponse {
	return TcsResponse{
		ID:                t.ID,
		TypeID:            t.TypeID,
		DeliveryDays:      t.DeliveryDays,
		ValidityDays:      t.ValidityDays,
		PaymentGraceDays:  t.PaymentGraceDays,
		InitialPaymentPct: t.InitialPaymentPct,
		LastPaymentPct:    t.LastPaymentPct,
		VatPercentage:     t.VatPercentage,
		PaymentWords:      t.PaymentWords,
		ValidityWords:     t.ValidityWords,
	}
}

// SaveDraftRequest body para POST /api/quotations/drafts. Payload guarda el
// formulario tal cual lo envió el cliente.
type SaveDraftRequest struct {
	Auto    bool            `json:"auto"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

// DraftResponse salida de un borrador.
type DraftResponse struct {
	ID        int64           `json:"id"`
	Auto      bool            `json:"auto"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewDraftResponse mapea la entidad a su representación HTTP.
func NewDraftResponse(d *entity.QuotationDraft) DraftResponse {
	return DraftResponse{ID: d.ID, Auto: d.Auto, Payload: d.Payload, CreatedAt: d.CreatedAt}
}

// TagQuotationRequest body para POST /api/quotations/:id/tags.
type TagQuotationRequest struct {
	TaggedUserIDs []int64 `json:"tagged_user_ids" validate:"required,min=1"`
	Message       string  `json:"message" validate:"max=500"`
}

// QuotationTagResponse etiqueta en respuestas.
type QuotationTagResponse struct {
	ID           int64     `json:"id"`
	QuotationID  string    `json:"quotation_id"`
	TaggedUserID int64     `json:"tagged_user_id"`
	TaggedBy     string    `json:"tagged_by"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewQuotationTagResponse mapea la entidad a su representación HTTP.
func NewQuotationTagResponse(tag *entity.QuotationTag) QuotationTagResponse {
	return QuotationTagResponse{
		ID:           tag.ID,
		QuotationID:  tag.QuotationID,
		TaggedUserID: tag.TaggedUserID,
		TaggedBy:     tag.TaggedBy,
		Message:      tag.Message,
		CreatedAt:    tag.CreatedAt,
	}
}
