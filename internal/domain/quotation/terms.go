package quotation

import (
	"fmt"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Tokens reconocidos en las plantillas de términos y condiciones.
const (
	tokenGraceDaysPhrase = "{payment_grace_days_phrase}"
	tokenGraceDays       = "{payment_grace_days}"
	tokenInitialPct      = "{initial_payment_percentage}"
	tokenLastPct         = "{last_payment_percentage}"
	tokenValidityDays    = "{validity_days}"
)

// HumanizeGraceDays convierte los días de gracia en una frase legible:
// nil -> "N/A", <= -365 -> "Advance payment", negativo -> "N days before delivery",
// 0 -> "On delivery day", positivo -> "N days after delivery".
func HumanizeGraceDays(days *int) string {
	if days == nil {
		return "N/A"
	}
	d := *days
	switch {
	case d <= -365:
		return "Advance payment"
	case d < 0:
		return fmt.Sprintf("%d %s before delivery", -d, pluralDays(-d))
	case d == 0:
		return "On delivery day"
	default:
		return fmt.Sprintf("%d %s after delivery", d, pluralDays(d))
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

// PaymentPhrase renderiza la frase de pago de la plantilla sustituyendo sus
// tokens con los valores efectivos. Para el tipo suministro usa los días de
// gracia (humanizados si la plantilla trae el token de frase); para los demás
// tipos sustituye los porcentajes inicial y final.
func PaymentPhrase(tcs TcsInput, typeID int64, edited bool) string {
	words := tcs.PaymentWords

	if typeID == entity.QuotationTypeSupply {
		days := tcs.EffectiveGraceDays(edited)
		if strings.Contains(words, tokenGraceDaysPhrase) {
			return strings.ReplaceAll(words, tokenGraceDaysPhrase, HumanizeGraceDays(days))
		}
		// plantillas antiguas con el número crudo
		return strings.ReplaceAll(words, tokenGraceDays, intOrNA(days))
	}

	initial, last := tcs.EffectivePaymentPcts(edited)
	words = strings.ReplaceAll(words, tokenInitialPct, intOrNA(initial))
	return strings.ReplaceAll(words, tokenLastPct, intOrNA(last))
}

// ValidityPhrase renderiza la frase de validez sustituyendo {validity_days}
// con los días efectivos.
func ValidityPhrase(tcs TcsInput, edited bool) string {
	return strings.ReplaceAll(tcs.ValidityWords, tokenValidityDays, intOrNA(tcs.EffectiveValidityDays(edited)))
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}
