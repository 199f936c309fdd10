package importer_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Licencias-api/internal/application/importer"
	"github.com/jhoicas/Licencias-api/internal/domain/csvimport"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/pkg/logger"
)

func resolvedLine(code, currency string, qty, rate int64) *importer.ResolvedLine {
	return &importer.ResolvedLine{
		AggregatedLine: csvimport.AggregatedLine{
			CustomerRef: "C1",
			ProductCode: code,
			ProductName: "Producto " + code,
			Currency:    currency,
			TotalQty:    decimal.NewFromInt(qty),
			Rate:        decimal.NewFromInt(rate),
			TotalAmount: decimal.NewFromInt(qty * rate),
		},
		ItemCode:    "ART-" + code,
		ItemName:    "Producto " + code,
		Description: "Producto " + code,
	}
}

type assemblerEnv struct {
	accounts   *fakeAccounts
	currencies *fakeCurrencies
	invoices   *fakeInvoices
	assembler  *importer.InvoiceAssembler
	customer   *entity.Customer
	company    *entity.Company
	settings   *entity.ImportSettings
}

func newAssemblerEnv() *assemblerEnv {
	env := &assemblerEnv{
		accounts: &fakeAccounts{byName: map[string]*entity.Account{
			"1776 - Umsatzsteuer 19 %": {Name: "1776 - Umsatzsteuer 19 %", TaxRate: decimal.NewFromInt(19)},
		}},
		currencies: &fakeCurrencies{
			known: map[string]bool{"EUR": true, "USD": true},
			rates: map[string]decimal.Decimal{},
		},
		invoices: &fakeInvoices{},
		customer: &entity.Customer{ID: "cust1", CompanyID: "co1", Name: "Acme GmbH", ReferenceNumber: "C1"},
		company:  &entity.Company{ID: "co1", Name: "Operadora", DefaultCurrency: "EUR"},
		settings: testSettings(),
	}
	env.assembler = importer.NewInvoiceAssembler(env.accounts, env.currencies, env.invoices, logger.Nop())
	return env
}

func TestAssembleFacturaBasica(t *testing.T) {
	env := newAssemblerEnv()
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "EUR", 5, 10),
	}, run)

	require.NotNil(t, inv, "la factura debe crearse")
	require.Len(t, env.invoices.saved, 1)
	assert.Empty(t, run.Errors)

	assert.Equal(t, "cust1", inv.CustomerID)
	assert.Equal(t, "EUR", inv.Currency)
	assert.True(t, inv.ConversionRate.Equal(decimal.NewFromInt(1)), "misma moneda implica tasa 1.0")
	assert.Equal(t, inv.PostingDate.AddDate(0, 1, 0), inv.DueDate, "vencimiento a un mes")
	assert.False(t, inv.UpdateStock)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "ART-P1", inv.Items[0].ItemCode)
	assert.Equal(t, "P1", inv.Items[0].CustomerItemCode)
	assert.True(t, inv.Items[0].Qty.Equal(decimal.NewFromInt(5)))
	assert.True(t, inv.NetTotal.Equal(decimal.NewFromInt(50)))

	require.Len(t, inv.Taxes, 1)
	assert.Equal(t, entity.ChargeTypeOnNetTotal, inv.Taxes[0].ChargeType)
	assert.Equal(t, "1776 - Umsatzsteuer 19 %", inv.Taxes[0].AccountHead)
	assert.Equal(t, "VAT 19%", inv.Taxes[0].Description)
	assert.True(t, inv.Taxes[0].Amount.Equal(decimal.RequireFromString("9.5")))
	assert.True(t, inv.GrandTotal.Equal(decimal.RequireFromString("59.5")), "total = neto + IVA redondeado: %s", inv.GrandTotal)
}

func TestAssembleDescuentoPorNombreExacto(t *testing.T) {
	env := newAssemblerEnv()
	env.settings.Discounts = []entity.CustomerDiscount{
		{CustomerName: "Otra SA", DiscountPercent: decimal.NewFromInt(50)},
		{CustomerName: "Acme GmbH ", DiscountPercent: decimal.NewFromInt(10)},
		{CustomerName: "Acme GmbH", DiscountPercent: decimal.NewFromInt(99)},
	}
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "EUR", 5, 10),
	}, run)

	require.NotNil(t, inv)
	assert.True(t, inv.DiscountPercentage.Equal(decimal.NewFromInt(10)), "gana la primera coincidencia exacta (con nombre recortado)")
	// neto 50, con descuento 45, IVA 19% = 8.55
	assert.True(t, inv.GrandTotal.Equal(decimal.RequireFromString("53.55")), "total con descuento: %s", inv.GrandTotal)
}

func TestAssembleDescuentoNegativoSeIgnora(t *testing.T) {
	env := newAssemblerEnv()
	env.settings.Discounts = []entity.CustomerDiscount{
		{CustomerName: "Acme GmbH", DiscountPercent: decimal.NewFromInt(-15)},
	}
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "EUR", 5, 10),
	}, run)

	require.NotNil(t, inv)
	assert.True(t, inv.DiscountPercentage.IsZero(), "un porcentaje negativo no debe convertirse en recargo")
	assert.True(t, inv.GrandTotal.Equal(decimal.RequireFromString("59.5")), "total sin descuento: %s", inv.GrandTotal)
}

func TestAssembleSinCuentaDeImpuestos(t *testing.T) {
	env := newAssemblerEnv()
	env.settings.TaxAccount = ""
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "EUR", 5, 10),
	}, run)

	require.NotNil(t, inv, "la factura se crea igual, solo que sin línea de impuesto")
	require.Len(t, env.invoices.saved, 1)
	assert.Empty(t, inv.Taxes)
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(50)))
	require.Len(t, run.Errors, 1)
	assert.Equal(t, "No tax account configured for customer C1", run.Errors[0])
}

func TestAssembleSupresionDeTotalCero(t *testing.T) {
	env := newAssemblerEnv()
	env.settings.SuppressZeroInvoices = true
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "EUR", 5, 0),
	}, run)

	assert.Nil(t, inv)
	assert.Empty(t, env.invoices.saved, "una factura suprimida no se guarda")
	assert.Empty(t, run.Errors, "la supresión no es un error")
}

func TestAssembleTotalCeroSinSupresion(t *testing.T) {
	env := newAssemblerEnv()
	env.settings.SuppressZeroInvoices = false
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "EUR", 5, 0),
	}, run)

	require.NotNil(t, inv)
	assert.True(t, inv.GrandTotal.IsZero())
	require.Len(t, env.invoices.saved, 1)
}

func TestAssembleTasaDeCambio(t *testing.T) {
	env := newAssemblerEnv()
	env.currencies.rates["USD/EUR"] = decimal.RequireFromString("0.9")
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "USD", 5, 10),
	}, run)

	require.NotNil(t, inv)
	assert.Equal(t, "USD", inv.Currency)
	assert.True(t, inv.ConversionRate.Equal(decimal.RequireFromString("0.9")))
}

func TestAssembleSinTasaDeCambioRegistrada(t *testing.T) {
	env := newAssemblerEnv()
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "USD", 5, 10),
	}, run)

	require.NotNil(t, inv)
	assert.True(t, inv.ConversionRate.Equal(decimal.NewFromInt(1)), "sin tasa registrada se usa 1.0")
	assert.Empty(t, run.Errors)
}

func TestAssembleMonedaDesconocidaCaeALaDeLaEmpresa(t *testing.T) {
	env := newAssemblerEnv()
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "Dublonen", 5, 10),
	}, run)

	require.NotNil(t, inv)
	assert.Equal(t, "EUR", inv.Currency)
}

func TestAssembleTarifaNegativaDescartaLaLinea(t *testing.T) {
	env := newAssemblerEnv()
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "EUR", 5, 10),
		resolvedLine("P2", "EUR", 3, -4),
	}, run)

	require.NotNil(t, inv)
	require.Len(t, inv.Items, 1, "la línea con tarifa negativa se descarta, el resto sigue")
	assert.Equal(t, "ART-P1", inv.Items[0].ItemCode)
	require.Len(t, run.Errors, 1)
	assert.Contains(t, run.Errors[0], "Error adding item P2 to invoice for customer C1")
}

func TestAssembleFalloAlGuardar(t *testing.T) {
	env := newAssemblerEnv()
	env.invoices.createErr = errors.New("conexión perdida")
	run := &importer.ImportRun{}

	inv := env.assembler.Assemble(env.customer, env.company, env.settings, []*importer.ResolvedLine{
		resolvedLine("P1", "EUR", 5, 10),
	}, run)

	assert.Nil(t, inv)
	require.Len(t, run.Errors, 1)
	assert.Equal(t, "Error creating invoice for customer C1: conexión perdida", run.Errors[0])
}
