package entity

import "time"

// Customer representa un cliente de facturación.
// ReferenceNumber es el número de cliente interno que llega en el CSV del
// distribuidor (columna Customer Reference Number), distinto del ID del registro.
type Customer struct {
	ID              string
	CompanyID       string
	Name            string
	ReferenceNumber string
	TaxID           string
	Email           string
	Phone           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
