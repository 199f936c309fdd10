package csvimport

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLocaleNumber convierte un número con coma decimal ("4,5") a decimal.
// Entrada vacía o no numérica produce cero, nunca error: los campos de
// importe del CSV del distribuidor llegan vacíos con frecuencia y una fila
// así no debe abortar la importación.
//
// No se soportan separadores de miles ("1.234,56" produce cero); el export
// del distribuidor no los usa.
func ParseLocaleNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}
