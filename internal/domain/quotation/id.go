package quotation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxMonthlyQuotations tope del contador inverso mensual del identificador.
const maxMonthlyQuotations = 1000

// GenerateQuotationID genera el identificador de negocio: "Q" + yymmdd + contador
// inverso de 3 dígitos sobre las cotizaciones ya emitidas en el mes. Si el mes
// desborda el tope, el sufijo pasa a contar hacia arriba desde 1000 (4 dígitos),
// lo que mantiene la unicidad.
func GenerateQuotationID(now time.Time, existingMonthCount int64) string {
	firstPart := fmt.Sprintf("Q%s", now.Format("060102"))

	count := existingMonthCount + 1
	reverse := maxMonthlyQuotations - count
	var lastPart string
	if reverse > 0 {
		lastPart = fmt.Sprintf("%03d", reverse)
	} else {
		lastPart = fmt.Sprintf("%03d", maxMonthlyQuotations+count)
	}

	return firstPart + lastPart
}

// ValidateQuotationID valida la forma del identificador de negocio:
// prefijo Q y 9 o 10 dígitos (el décimo aparece solo en meses desbordados).
func ValidateQuotationID(id string) bool {
	if !strings.HasPrefix(id, "Q") {
		return false
	}
	if len(id) != 10 && len(id) != 11 {
		return false
	}
	_, err := strconv.ParseInt(id[1:], 10, 64)
	return err == nil
}

// MonthStart devuelve el inicio del mes de un instante, para contar las
// cotizaciones emitidas en el mes en curso.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
