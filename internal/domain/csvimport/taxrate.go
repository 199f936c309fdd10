package csvimport

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licencias-api/internal/domain/entity"
)

// DefaultTaxRate tasa de IVA usada cuando ninguna estrategia resuelve una
// tasa (19% alemán, el mercado del distribuidor).
var DefaultTaxRate = decimal.NewFromInt(19)

// Porcentaje dentro del nombre de la cuenta, ej. "Abziehbare Vorsteuer 19 %".
var accountRatePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// ResolveTaxRate resuelve la tasa de IVA de una cuenta contable.
// Precedencia: campo tax_rate explícito → campo rate genérico → porcentaje
// extraído del nombre de la cuenta → DefaultTaxRate. Extraer la tasa de un
// nombre libre es frágil; por eso es el penúltimo recurso y la precedencia
// completa se prueba en aislamiento.
func ResolveTaxRate(account *entity.Account) decimal.Decimal {
	if account == nil {
		return DefaultTaxRate
	}
	if account.TaxRate.GreaterThan(decimal.Zero) {
		return account.TaxRate
	}
	if account.Rate.GreaterThan(decimal.Zero) {
		return account.Rate
	}
	for _, name := range []string{account.AccountName, account.Name} {
		if m := accountRatePattern.FindStringSubmatch(name); m != nil {
			if d, err := decimal.NewFromString(m[1]); err == nil {
				return d
			}
		}
	}
	return DefaultTaxRate
}
