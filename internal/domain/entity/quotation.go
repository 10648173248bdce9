package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una cotización.
const (
	QuotationStatusCreated  = 1
	QuotationStatusSent     = 2
	QuotationStatusAccepted = 3
	QuotationStatusRejected = 4
	QuotationStatusExpired  = 5
)

// QuotationStatusKeys nombres de estado expuestos por la API.
var QuotationStatusKeys = map[int]string{
	QuotationStatusCreated:  "created",
	QuotationStatusSent:     "sent",
	QuotationStatusAccepted: "accepted",
	QuotationStatusRejected: "rejected",
	QuotationStatusExpired:  "expired",
}

// QuotationStatusIDByKey resuelve el id de estado por su nombre; 0 si no existe.
func QuotationStatusIDByKey(key string) int {
	for id, k := range QuotationStatusKeys {
		if k == key {
			return id
		}
	}
	return 0
}

// QuotationTypeSupply es el tipo con días de gracia de pago; los demás tipos usan
// porcentajes de pago inicial/final que deben sumar 100.
const QuotationTypeSupply = 1

// Quotation cabecera de una cotización con sus valores efectivos de TCs
// (los de la plantilla, o los editados si TcsEdited).
type Quotation struct {
	ID                int64
	QuotationID       string // id de negocio: Qyymmdd + contador inverso de 3 dígitos
	CoUserID          string // emisor
	Time              time.Time
	TypeID            int64
	CategoryID        int64
	CurrencyID        int64
	TcsID             int64
	TcsEdited         bool
	VatExcluded       bool
	ValidityDays      int
	PaymentGraceDays  *int
	InitialPaymentPct *int
	LastPaymentPct    *int
	SubTotal          decimal.Decimal
	Vat               decimal.Decimal
	GrandTotal        decimal.Decimal // redondeado hacia arriba a la unidad
	StatusID          int
	Client            QuotationClient
	LineItems         []QuotationLineItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ExpiresAt devuelve el instante de expiración según los días de validez.
func (q *Quotation) ExpiresAt() time.Time {
	return q.Time.Add(time.Duration(q.ValidityDays) * 24 * time.Hour)
}

// IsExpired indica si la cotización ya venció en el instante dado.
func (q *Quotation) IsExpired(now time.Time) bool {
	return q.StatusID == QuotationStatusExpired || now.After(q.ExpiresAt())
}

// QuotationClient datos del cliente capturados con la cotización
// (no es un cliente registrado; se persisten con el documento).
type QuotationClient struct {
	Name          string
	ContactPerson string
	ExternalRef   string
	Email         string
	Phone         string
	BoxNumber     *int
	Country       string
	City          string
	AddressLine1  string
}

// QuotationLineItem línea de una cotización. Cantidad y precio admiten decimales.
type QuotationLineItem struct {
	ID          int64
	QuotationID int64
	Name        string
	Description string
	Quantity    decimal.Decimal
	Units       string
	UnitPrice   decimal.Decimal
}

// QuotationTcs plantilla de términos y condiciones por tipo de cotización.
// PaymentWords y ValidityWords contienen tokens {payment_grace_days_phrase},
// {initial_payment_percentage}, {last_payment_percentage}, {validity_days}.
type QuotationTcs struct {
	ID                int64
	TypeID            int64
	DeliveryDays      int
	ValidityDays      int
	PaymentGraceDays  *int
	InitialPaymentPct *int
	LastPaymentPct    *int
	VatPercentage     int
	PaymentWords      string
	ValidityWords     string
}

// QuotationDraft borrador guardado por un usuario (máximo 5 por usuario).
// Payload es el formulario serializado tal cual lo envió el cliente.
type QuotationDraft struct {
	ID        int64
	UserID    int64
	Auto      bool // true = auto-borrador (uno por usuario, se reemplaza)
	Payload   json.RawMessage
	CreatedAt time.Time
}

// QuotationTag etiqueta de un usuario sobre una cotización, con mensaje.
type QuotationTag struct {
	ID           int64
	QuotationID  string
	TaggedUserID int64
	TaggedBy     string // co_user_id del que etiqueta
	Message      string
	CreatedAt    time.Time
}
