package csvimport_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Licencias-api/internal/domain/csvimport"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
)

// TestResolveTaxRate_Precedencia la cadena de resolución es: tax_rate
// explícito → rate genérico → porcentaje en el nombre → default fijo.
func TestResolveTaxRate_Precedencia(t *testing.T) {
	acc := &entity.Account{
		Name:        "1520 - Abziehbare Vorsteuer 7 %",
		AccountName: "Abziehbare Vorsteuer 7 %",
		TaxRate:     decimal.NewFromInt(19),
		Rate:        decimal.NewFromInt(5),
	}
	assert.Equal(t, "19", csvimport.ResolveTaxRate(acc).String(), "tax_rate explícito gana sobre todo")

	acc.TaxRate = decimal.Zero
	assert.Equal(t, "5", csvimport.ResolveTaxRate(acc).String(), "rate genérico gana sobre el nombre")

	acc.Rate = decimal.Zero
	assert.Equal(t, "7", csvimport.ResolveTaxRate(acc).String(), "sin campos, se extrae el porcentaje del nombre")
}

func TestResolveTaxRate_PorcentajeDecimalEnNombre(t *testing.T) {
	acc := &entity.Account{AccountName: "Reduced VAT 10.5 % output"}
	assert.Equal(t, "10.5", csvimport.ResolveTaxRate(acc).String())
}

func TestResolveTaxRate_DefaultFijo(t *testing.T) {
	acc := &entity.Account{Name: "4400 - Erlöse", AccountName: "Erlöse"}
	assert.Equal(t, "19", csvimport.ResolveTaxRate(acc).String(), "sin ninguna pista, aplica el 19% por defecto")

	assert.Equal(t, "19", csvimport.ResolveTaxRate(nil).String(), "cuenta inexistente también cae al default")
}
