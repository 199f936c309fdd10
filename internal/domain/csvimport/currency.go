package csvimport

import "strings"

// Tabla estática de monedas tal como aparecen en los CSV del distribuidor:
// códigos ISO 4217 y nombres completos en inglés.
var currencyCodes = map[string]string{
	"EUR": "EUR",
	"USD": "USD",
	"GBP": "GBP",
	"CHF": "CHF",
	"SEK": "SEK",
	"DKK": "DKK",

	"EURO":           "EUR",
	"US DOLLAR":      "USD",
	"DOLLAR":         "USD",
	"BRITISH POUND":  "GBP",
	"POUND STERLING": "GBP",
	"SWISS FRANC":    "CHF",
	"SWEDISH KRONA":  "SEK",
	"DANISH KRONE":   "DKK",
}

// MapCurrencyCode normaliza el código o nombre de moneda del CSV.
// Precedencia: tabla estática → moneda conocida por el almacén
// (knownCurrency) → moneda por defecto configurada. En el último caso
// fellBack es true para que quien llama lo registre como advertencia; una
// moneda desconocida no es un error duro.
func MapCurrencyCode(raw string, knownCurrency func(string) bool, defaultCurrency string) (code string, fellBack bool) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if c, ok := currencyCodes[key]; ok {
		return c, false
	}
	if key != "" && knownCurrency != nil && knownCurrency(key) {
		return key, false
	}
	return defaultCurrency, true
}
