package csvimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ReportInput datos del reporte de conciliación. La diferencia entre
// LicensesBefore y LicensesAfter es la señal de conciliación: licencias
// "perdidas" en validaciones fallidas.
type ReportInput struct {
	LicensesBefore      decimal.Decimal
	LicensesAfter       decimal.Decimal
	InvoicesCreated     int
	SuccessfulCustomers []string
	CreatedItems        []string
	Errors              []string
}

// BuildReport renderiza el reporte de conciliación en texto plano.
// Orden fijo: resumen → clientes exitosos → artículos creados → errores.
// Las etiquetas van en alemán: el reporte lo consume el equipo contable del
// cliente final y así lo produce el sistema desde siempre.
func BuildReport(in ReportInput) string {
	lines := []string{
		fmt.Sprintf("Gesamtzahl Lizenzen vorher: %s", in.LicensesBefore),
		fmt.Sprintf("Gesamtzahl Lizenzen nachher: %s", in.LicensesAfter),
		fmt.Sprintf("Gesamtzahl erz. Rechnungen: %d", in.InvoicesCreated),
	}
	if len(in.SuccessfulCustomers) > 0 {
		lines = append(lines, fmt.Sprintf("Erfolgreiche Kunden: %s", strings.Join(in.SuccessfulCustomers, ", ")))
	}
	if len(in.CreatedItems) > 0 {
		lines = append(lines, fmt.Sprintf("\nNeu angelegte Artikel (%d):", len(in.CreatedItems)))
		for _, item := range in.CreatedItems {
			lines = append(lines, "- "+item)
		}
	}
	if len(in.Errors) > 0 {
		lines = append(lines, fmt.Sprintf("\nFehler (%d):", len(in.Errors)))
		for _, e := range in.Errors {
			lines = append(lines, "- "+e)
		}
	}
	return strings.Join(lines, "\n")
}
