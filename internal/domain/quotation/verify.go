package quotation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Rangos permitidos para los valores editables de los TCs.
const (
	MinValidityDays = 1
	MaxValidityDays = 365
	MinDeliveryDays = 1
	MaxDeliveryDays = 365
	MinGraceDays    = -365 // negativo = días antes de la entrega
	MaxGraceDays    = 365
)

// MaxClientFieldLength largo máximo de cada campo de cliente.
const MaxClientFieldLength = 64

// MaxLineItemNameLength largo máximo de los campos de una línea (salvo descripción).
const MaxLineItemNameLength = 30

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// VerifyTcs valida los valores editados de los TCs. Si editTcs es false no hay
// nada que validar: los valores de la plantilla ya son válidos. Devuelve nil si
// todo está bien.
func VerifyTcs(tcs TcsInput, typeID int64, editTcs bool) domain.ValidationErrors {
	if !editTcs {
		return nil
	}

	var errs domain.ValidationErrors

	if tcs.EditedValidityDays == nil || !withinRange(*tcs.EditedValidityDays, MinValidityDays, MaxValidityDays) {
		errs = append(errs, domain.ValidationError{
			Origin:  "TCs",
			Message: fmt.Sprintf("Validity out of range %d-%d days", MinValidityDays, MaxValidityDays),
		})
	}

	if tcs.EditedDeliveryDays == nil || !withinRange(*tcs.EditedDeliveryDays, MinDeliveryDays, MaxDeliveryDays) {
		errs = append(errs, domain.ValidationError{
			Origin:  "TCs",
			Message: fmt.Sprintf("Delivery days out of range %d-%d days", MinDeliveryDays, MaxDeliveryDays),
		})
	}

	if typeID == entity.QuotationTypeSupply {
		// el cero es válido (pago contra entrega), por eso la comparación es por nil
		if tcs.EditedPaymentGraceDays == nil || !withinRange(*tcs.EditedPaymentGraceDays, MinGraceDays, MaxGraceDays) {
			errs = append(errs, domain.ValidationError{
				Origin: "TCs",
				Message: fmt.Sprintf(
					"Grace period must be between %d and %d days (negative=before delivery, 0=on delivery, positive=after delivery).",
					MinGraceDays, MaxGraceDays),
			})
		}
	} else {
		initial, last := tcs.EditedInitialPaymentPct, tcs.EditedLastPaymentPct
		if initial == nil || last == nil || *initial+*last != 100 {
			errs = append(errs, domain.ValidationError{
				Origin:  "TCs",
				Message: "Payment percentages not tallying.",
			})
		}
	}

	return errs
}

// VerifyClientInfo valida los datos del cliente: al menos nombre o persona de
// contacto con 3+ caracteres, campos de máximo 64, email y teléfono con formato
// válido si vienen. Devuelve nil si todo está bien.
func VerifyClientInfo(c ClientInput) domain.ValidationErrors {
	var errs domain.ValidationErrors

	fields := map[string]string{
		"Name":          c.Name,
		"ContactPerson": c.ContactPerson,
		"ExternalRef":   c.ExternalRef,
		"Email":         c.Email,
		"Phone":         c.Phone,
		"Country":       c.Country,
		"City":          c.City,
		"AddressLine1":  c.AddressLine1,
	}
	for _, name := range []string{"Name", "ContactPerson", "ExternalRef", "Email", "Phone", "Country", "City", "AddressLine1"} {
		if len(fields[name]) > MaxClientFieldLength {
			errs = append(errs, domain.ValidationError{
				Origin:  "Client Info",
				Message: fmt.Sprintf("%s field is too long. Reduce to a max of %d Characters", name, MaxClientFieldLength),
			})
		}
	}

	if email := strings.TrimSpace(c.Email); email != "" && !emailPattern.MatchString(email) {
		errs = append(errs, domain.ValidationError{
			Origin:  "Client Info",
			Message: "Invalid email address. Correct or remove it.",
		})
	}

	if c.Phone != "" && !validPhone(c.Phone) {
		errs = append(errs, domain.ValidationError{
			Origin:  "Client Info",
			Message: "Invalid phone number. Correct or remove it.",
		})
	}

	if !hasNameOrContactPerson(c) {
		errs = append(errs, domain.ValidationError{
			Origin:  "Client Info",
			Message: "At least the client name or contact person must be provided, with at least 3 characters.",
		})
	}

	return errs
}

// VerifyClientInfoOnDraft es la validación relajada para borradores: solo exige
// nombre o persona de contacto; el resto puede estar incompleto.
func VerifyClientInfoOnDraft(c ClientInput) domain.ValidationErrors {
	if hasNameOrContactPerson(c) {
		return nil
	}
	return domain.ValidationErrors{{
		Origin:  "Client Info",
		Message: "At least the client name or contact person must be provided, with at least 3 characters.",
	}}
}

// VerifyLineItems valida las líneas: al menos una, y por línea nombre, cantidad,
// unidades y precio presentes, con largos y números válidos. Los errores de una
// misma línea se agrupan en un solo mensaje. Devuelve nil si todo está bien.
func VerifyLineItems(items []LineItemInput) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if len(items) < 1 {
		errs = append(errs, domain.ValidationError{
			Origin:  "Line Items",
			Message: "No items provided.",
		})
	}

	for i, item := range items {
		var missing, tooShort, tooLong, invalid []string

		if strings.TrimSpace(item.Name) == "" {
			missing = append(missing, "Name")
		} else if len(item.Name) > MaxLineItemNameLength {
			tooLong = append(tooLong, "Name")
		}

		if strings.TrimSpace(item.Units) == "" {
			missing = append(missing, "Units")
		} else {
			if len(item.Units) > MaxLineItemNameLength {
				tooLong = append(tooLong, "Units")
			}
			if len(strings.TrimSpace(item.Units)) <= 1 {
				tooShort = append(tooShort, "Units")
			}
		}

		if item.Quantity == nil || item.Quantity.IsZero() {
			missing = append(missing, "Quantity")
		} else if item.Quantity.IsNegative() {
			invalid = append(invalid, "Quantity")
		}

		if item.UnitPrice == nil || item.UnitPrice.IsZero() {
			missing = append(missing, "UnitPrice")
		} else if item.UnitPrice.IsNegative() {
			invalid = append(invalid, "UnitPrice")
		}

		if len(missing)+len(tooShort)+len(tooLong)+len(invalid) == 0 {
			continue
		}

		msg := fmt.Sprintf("Line item %d:", i+1)
		if len(missing) > 0 {
			msg += fmt.Sprintf(" %s field(s) missing.", strings.Join(missing, ", "))
		}
		if len(tooShort) > 0 {
			msg += fmt.Sprintf(" %s field(s) too short.", strings.Join(tooShort, ", "))
		}
		if len(tooLong) > 0 {
			msg += fmt.Sprintf(" %s field(s) too long.", strings.Join(tooLong, ", "))
		}
		if len(invalid) > 0 {
			msg += fmt.Sprintf(" %s field(s) invalid.", strings.Join(invalid, ", "))
		}
		msg += " Correct or remove item."

		errs = append(errs, domain.ValidationError{Origin: "Line Items", Message: msg})
	}

	return errs
}

func hasNameOrContactPerson(c ClientInput) bool {
	return len(strings.TrimSpace(c.Name)) > 2 || len(strings.TrimSpace(c.ContactPerson)) > 2
}

// validPhone acepta dígitos con prefijo + opcional, entre 9 y 15 dígitos.
func validPhone(phone string) bool {
	p := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	p = strings.TrimPrefix(p, "+")
	if len(p) < 9 || len(p) > 15 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func withinRange(v, min, max int) bool { return v >= min && v <= max }
