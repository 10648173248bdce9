package inventory

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"
)

const skuSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSKU genera el código SKU al crear un producto:
// prefijo de 3 letras de la categoría + timestamp yymmddHHMMSS + sufijo aleatorio de 3.
// Ej: ELE-240915143021-K7Q
func GenerateSKU(categoryName string, now time.Time) string {
	prefix := skuPrefix(categoryName)
	ts := now.Format("060102150405")

	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = skuSuffixAlphabet[rand.IntN(len(skuSuffixAlphabet))]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, ts, suffix)
}

// skuPrefix toma las primeras 3 letras de la categoría en mayúsculas, rellenando con X.
func skuPrefix(categoryName string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(categoryName) {
		if unicode.IsLetter(r) && r < 128 {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	for b.Len() < 3 {
		b.WriteByte('X')
	}
	return b.String()
}
