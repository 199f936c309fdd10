package entity

import "time"

// Company representa la empresa operadora (tenant). DefaultCurrency es la
// moneda a la que se convierten los totales de las facturas importadas y la
// moneda de respaldo cuando el CSV trae una desconocida.
type Company struct {
	ID              string
	Name            string
	TaxID           string
	DefaultCurrency string
	Address         string
	Phone           string
	Email           string
	Status          string // active, suspended, inactive
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
