package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency moneda habilitada en el sistema.
type Currency struct {
	Code    string // ISO 4217
	Name    string
	Enabled bool
}

// CurrencyExchange tasa de cambio entre dos monedas para una fecha.
type CurrencyExchange struct {
	ID         string
	From       string
	To         string
	Date       time.Time
	Rate       decimal.Decimal
	ForSelling bool
	ForBuying  bool
}
