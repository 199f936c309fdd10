package importer_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Licencias-api/internal/application/importer"
	"github.com/jhoicas/Licencias-api/internal/domain"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/pkg/logger"
)

const testCSVHeader = "Customer Reference Number;Product Code;Product;Licenses Count;Customer Price Per License;Customer Total;Currency"

type importEnv struct {
	items      *fakeItems
	customers  *fakeCustomers
	companies  *fakeCompanies
	accounts   *fakeAccounts
	currencies *fakeCurrencies
	invoices   *fakeInvoices
	settings   *fakeSettings
	files      *fakeFiles
	uc         *importer.ImportUseCase
}

func newImportEnv() *importEnv {
	log := logger.Nop()
	env := &importEnv{
		items: newFakeItems(),
		customers: &fakeCustomers{byRef: map[string]*entity.Customer{
			"C1": {ID: "cust1", CompanyID: "co1", Name: "Acme GmbH", ReferenceNumber: "C1"},
		}},
		companies: &fakeCompanies{company: &entity.Company{ID: "co1", Name: "Operadora", DefaultCurrency: "EUR"}},
		accounts: &fakeAccounts{byName: map[string]*entity.Account{
			"1776 - Umsatzsteuer 19 %": {Name: "1776 - Umsatzsteuer 19 %", TaxRate: decimal.NewFromInt(19)},
		}},
		currencies: &fakeCurrencies{known: map[string]bool{"EUR": true}, rates: map[string]decimal.Decimal{}},
		invoices:   &fakeInvoices{},
		settings:   &fakeSettings{settings: testSettings()},
		files:      &fakeFiles{},
	}
	env.items.byExt["P1"] = &entity.Item{ID: "i1", CompanyID: "co1", Code: "ART-001", Name: "Spam Filter", ExternalArticleNumber: "P1"}

	resolver := importer.NewItemResolver(env.items, log)
	assembler := importer.NewInvoiceAssembler(env.accounts, env.currencies, env.invoices, log)
	env.uc = importer.NewImportUseCase(env.settings, env.customers, env.companies, env.files, resolver, assembler, log)
	return env
}

func csvWith(rows ...string) string {
	return strings.Join(append([]string{testCSVHeader}, rows...), "\n")
}

func TestProcessCSVImportacionCompleta(t *testing.T) {
	env := newImportEnv()
	content := csvWith(
		"C1;P1;Spam Filter;2;10;20;EUR",
		"C1;P1;Spam Filter;3;10;30;EUR",
	)

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", content, "licenses.csv")

	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 1, resp.InvoicesCreated)
	assert.Equal(t, 0, resp.ErrorsCount)
	assert.Equal(t, "Import completed. 1 invoices created successfully. 0 errors logged.", resp.Message)

	// Las dos filas del mismo (cliente, producto) se agregan en una línea.
	require.Len(t, env.invoices.saved, 1)
	inv := env.invoices.saved[0]
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Qty.Equal(decimal.NewFromInt(5)))
	assert.True(t, inv.Items[0].Amount.Equal(decimal.NewFromInt(50)))

	assert.Contains(t, resp.Report, "Gesamtzahl Lizenzen vorher: 5")
	assert.Contains(t, resp.Report, "Gesamtzahl Lizenzen nachher: 5")
	assert.Contains(t, resp.Report, "Gesamtzahl erz. Rechnungen: 1")
	assert.Contains(t, resp.Report, "Erfolgreiche Kunden: C1")
	assert.NotContains(t, resp.Report, "Fehler")

	// Historial y resultado quedan anexados a la configuración.
	require.Len(t, env.settings.history, 1)
	require.Len(t, env.settings.results, 1)
	assert.Equal(t, resp.Report, env.settings.results[0].Report)

	// El CSV crudo queda archivado con nombre prefijado por timestamp.
	require.Len(t, env.files.files, 1)
	assert.True(t, strings.HasSuffix(env.files.files[0].FileName, "_licenses.csv"), "nombre archivado: %s", env.files.files[0].FileName)
	assert.Equal(t, env.files.files[0].FileName, env.settings.history[0].FileRef)
}

func TestProcessCSVContenidoBase64(t *testing.T) {
	env := newImportEnv()
	content := base64.StdEncoding.EncodeToString([]byte(csvWith("C1;P1;Spam Filter;5;10;50;EUR")))

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", content, "licenses.csv")

	require.NoError(t, err)
	assert.Equal(t, 1, resp.InvoicesCreated)
	assert.Equal(t, 0, resp.ErrorsCount)
}

func TestProcessCSVContenidoWindows1252(t *testing.T) {
	env := newImportEnv()
	// 0xFC es la ü en Windows-1252 y no es UTF-8 válido por sí sola.
	content := csvWith("C1;OTHER;M\xfcller Beratung;2;10;20;EUR")

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", content, "licenses.csv")

	require.NoError(t, err)
	assert.Equal(t, 1, resp.InvoicesCreated)
	assert.Equal(t, 0, resp.ErrorsCount)

	require.Len(t, env.items.created, 1)
	assert.Equal(t, "Müller Beratung", env.items.created[0].Name, "el umlaut debe llegar reencodado a UTF-8")
	require.Len(t, env.invoices.saved, 1)
	assert.Equal(t, "Müller Beratung", env.invoices.saved[0].Items[0].ItemCode)
	assert.Contains(t, resp.Report, "Müller Beratung")
}

func TestProcessCSVClienteInexistente(t *testing.T) {
	env := newImportEnv()
	content := csvWith(
		"C1;P1;Spam Filter;2;10;20;EUR",
		"C9;P1;Spam Filter;3;10;30;EUR",
	)

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", content, "licenses.csv")

	require.NoError(t, err, "un cliente inexistente no aborta la importación")
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 1, resp.InvoicesCreated)
	assert.Equal(t, 1, resp.ErrorsCount)
	assert.Contains(t, resp.Report, "- Customer not found for reference number: C9")

	// Las licencias del cliente fallido cuentan antes pero no después.
	assert.Contains(t, resp.Report, "Gesamtzahl Lizenzen vorher: 5")
	assert.Contains(t, resp.Report, "Gesamtzahl Lizenzen nachher: 2")
}

func TestProcessCSVSinArticulosValidos(t *testing.T) {
	env := newImportEnv()
	content := csvWith("C1;P1;Spam Filter;0;10;0;EUR")

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", content, "licenses.csv")

	require.NoError(t, err)
	assert.Equal(t, 0, resp.InvoicesCreated)
	assert.Equal(t, 1, resp.ErrorsCount)
	assert.Contains(t, resp.Report, "- No valid items found for customer C1")
	assert.Empty(t, env.invoices.saved)
}

func TestProcessCSVCreaArticuloOther(t *testing.T) {
	env := newImportEnv()
	content := csvWith("C1;OTHER;Consulting Stunden;3;100;300;EUR")

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", content, "licenses.csv")

	require.NoError(t, err)
	assert.Equal(t, 1, resp.InvoicesCreated)
	require.Len(t, env.items.created, 1)
	assert.Contains(t, resp.Report, "Neu angelegte Artikel (1):")
	assert.Contains(t, resp.Report, "- Consulting Stunden")
}

func TestProcessCSVSupresionDeTotalCero(t *testing.T) {
	env := newImportEnv()
	env.settings.settings.SuppressZeroInvoices = true
	content := csvWith("C1;P1;Spam Filter;5;0;0;EUR")

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", content, "licenses.csv")

	require.NoError(t, err)
	assert.Equal(t, 0, resp.InvoicesCreated)
	assert.Equal(t, 0, resp.ErrorsCount, "la supresión no cuenta como error")
	assert.Empty(t, env.invoices.saved)
	assert.NotContains(t, resp.Report, "Erfolgreiche Kunden", "el cliente suprimido no aparece entre los exitosos")
}

func TestProcessCSVConfiguracionInexistente(t *testing.T) {
	env := newImportEnv()

	_, err := env.uc.ProcessCSV(context.Background(), "nope", csvWith(), "licenses.csv")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessCSVArchivadoFallidoNoAborta(t *testing.T) {
	env := newImportEnv()
	env.files.saveErr = errors.New("almacén caído")

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", csvWith("C1;P1;Spam Filter;5;10;50;EUR"), "licenses.csv")

	require.NoError(t, err, "el archivado es mejor-esfuerzo")
	assert.Equal(t, 1, resp.InvoicesCreated)
	require.Len(t, env.settings.history, 1)
	assert.Equal(t, "licenses.csv", env.settings.history[0].FileRef, "sin archivo guardado se referencia el nombre original")
}

func TestProcessCSVFilasInvalidasReportadasPorLinea(t *testing.T) {
	env := newImportEnv()
	content := csvWith(
		";P1;Spam Filter;2;10;20;EUR",
		"C1;;Spam Filter;3;10;30;EUR",
		"C1;P1;Spam Filter;5;10;50;EUR",
	)

	resp, err := env.uc.ProcessCSV(context.Background(), "s1", content, "licenses.csv")

	require.NoError(t, err)
	assert.Equal(t, 1, resp.InvoicesCreated)
	assert.Equal(t, 2, resp.ErrorsCount)
	assert.Contains(t, resp.Report, "- Missing Customer Reference Number in line 2")
	assert.Contains(t, resp.Report, "- Missing Product Code in line 3")
}
