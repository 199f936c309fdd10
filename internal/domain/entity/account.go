package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account cuenta contable. El importador la usa solo para resolver la tasa
// de IVA de la línea de impuestos: TaxRate o Rate pueden venir en cero y en
// ese caso la tasa se intenta extraer del nombre ("... 19 % ...").
type Account struct {
	ID          string
	CompanyID   string
	Name        string // identificador legible, ej. "1520 - Abziehbare Vorsteuer 19 %"
	AccountName string
	TaxRate     decimal.Decimal
	Rate        decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
