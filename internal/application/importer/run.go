package importer

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Estados por cliente durante una importación. Un cliente o llega a "saved"
// con su factura completa o queda en "rejected"; no hay persistencia parcial.
const (
	statePending       = "pending"
	stateItemsResolved = "items_resolved"
	stateSaved         = "saved"
	stateRejected      = "rejected"
)

// ImportRun estado acumulado de una importación en curso. Los errores
// recuperables (por fila o por cliente) se registran aquí como texto y la
// importación continúa; solo fallas fuera de estos bloques abortan todo.
type ImportRun struct {
	LicensesBefore      decimal.Decimal
	LicensesAfter       decimal.Decimal
	InvoicesCreated     int
	SuccessfulCustomers []string
	CreatedItems        []string
	Errors              []string
}

// Errorf registra un error recuperable.
func (r *ImportRun) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
