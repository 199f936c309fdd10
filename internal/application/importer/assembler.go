package importer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licencias-api/internal/domain/csvimport"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
	"github.com/jhoicas/Licencias-api/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// Una tarifa negativa en una línea resuelta indica datos corruptos del CSV;
// la línea se descarta pero la factura sigue con las demás.
var errNegativeRate = errors.New("tarifa negativa")

// InvoiceAssembler construye y guarda una factura de venta por cliente a
// partir de sus líneas resueltas. Cada factura se guarda completa o no se
// guarda; los fallos al armar una línea son por línea y el resto continúa.
type InvoiceAssembler struct {
	accounts   repository.AccountRepository
	currencies repository.CurrencyRepository
	invoices   repository.InvoiceRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewInvoiceAssembler construye el assembler.
func NewInvoiceAssembler(
	accounts repository.AccountRepository,
	currencies repository.CurrencyRepository,
	invoices repository.InvoiceRepository,
	log *logger.Logger,
) *InvoiceAssembler {
	return &InvoiceAssembler{
		accounts:   accounts,
		currencies: currencies,
		invoices:   invoices,
		log:        log,
		now:        time.Now,
	}
}

// Assemble arma y persiste la factura de un cliente. Devuelve nil si la
// factura no se creó (sin líneas válidas, total cero suprimido o fallo al
// guardar); los motivos quedan registrados en el run.
func (a *InvoiceAssembler) Assemble(
	customer *entity.Customer,
	company *entity.Company,
	settings *entity.ImportSettings,
	lines []*ResolvedLine,
	run *ImportRun,
) *entity.SalesInvoice {
	now := a.now()
	inv := &entity.SalesInvoice{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		CustomerID:  customer.ID,
		PostingDate: now,
		DueDate:     now.AddDate(0, 1, 0),
		UpdateStock: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// La moneda de la factura se resuelve una sola vez, desde la primera
	// línea; no por línea.
	inv.Currency = a.resolveCurrency(lines[0].Currency, company)
	inv.ConversionRate = a.resolveConversionRate(inv.Currency, company.DefaultCurrency, now)
	inv.DiscountPercentage = customerDiscount(customer.Name, settings.Discounts)

	for _, line := range lines {
		if err := appendLine(inv, line); err != nil {
			run.Errorf("Error adding item %s to invoice for customer %s: %v", line.ProductCode, customer.ReferenceNumber, err)
		}
	}
	if len(inv.Items) == 0 {
		return nil
	}

	var net decimal.Decimal
	for _, it := range inv.Items {
		net = net.Add(it.Amount)
	}
	inv.NetTotal = net
	discounted := net.Mul(oneHundred.Sub(inv.DiscountPercentage)).Div(oneHundred)

	if settings.TaxAccount == "" {
		run.Errorf("No tax account configured for customer %s", customer.ReferenceNumber)
	} else {
		a.appendTax(inv, company.ID, settings.TaxAccount, discounted, customer.ReferenceNumber, run)
	}

	inv.GrandTotal = discounted.Add(inv.TaxTotal).Round(2)

	if settings.SuppressZeroInvoices && inv.GrandTotal.IsZero() {
		// Ni éxito ni error: el cliente simplemente no aparece entre los
		// exitosos.
		a.log.Debug().Str("customer_ref", customer.ReferenceNumber).Msg("factura con total cero suprimida")
		return nil
	}

	if err := a.invoices.Create(inv); err != nil {
		run.Errorf("Error creating invoice for customer %s: %v", customer.ReferenceNumber, err)
		return nil
	}
	return inv
}

// resolveCurrency normaliza la moneda del CSV; desconocida cae a la moneda
// por defecto de la empresa con una advertencia.
func (a *InvoiceAssembler) resolveCurrency(raw string, company *entity.Company) string {
	code, fellBack := csvimport.MapCurrencyCode(raw, func(c string) bool {
		ok, err := a.currencies.Exists(c)
		return err == nil && ok
	}, company.DefaultCurrency)
	if fellBack {
		a.log.Warn().Str("raw", raw).Str("fallback", company.DefaultCurrency).Msg("moneda del CSV desconocida, usando la moneda por defecto")
	}
	return code
}

// resolveConversionRate busca la tasa (moneda factura -> moneda empresa)
// habilitada para venta a la fecha. Sin tasa registrada se usa 1.0: la
// falta de tasa nunca bloquea la creación de la factura.
func (a *InvoiceAssembler) resolveConversionRate(from, to string, date time.Time) decimal.Decimal {
	if from == to || to == "" {
		return decimal.NewFromInt(1)
	}
	rate, err := a.currencies.GetExchangeRate(from, to, date)
	if err != nil || rate == nil || !rate.GreaterThan(decimal.Zero) {
		a.log.Warn().Str("from", from).Str("to", to).Msg("sin tasa de cambio registrada, usando 1.0")
		return decimal.NewFromInt(1)
	}
	return *rate
}

func (a *InvoiceAssembler) appendTax(inv *entity.SalesInvoice, companyID, taxAccount string, netAfterDiscount decimal.Decimal, customerRef string, run *ImportRun) {
	account, err := a.accounts.GetByName(companyID, taxAccount)
	if err != nil {
		run.Errorf("Error adding tax to invoice for customer %s: %v", customerRef, err)
		return
	}
	rate := csvimport.ResolveTaxRate(account)
	amount := netAfterDiscount.Mul(rate).Div(oneHundred)
	inv.Taxes = append(inv.Taxes, entity.SalesInvoiceTax{
		ID:          uuid.New().String(),
		InvoiceID:   inv.ID,
		ChargeType:  entity.ChargeTypeOnNetTotal,
		AccountHead: taxAccount,
		Rate:        rate,
		Description: "VAT " + rate.String() + "%",
		Amount:      amount,
	})
	inv.TaxTotal = inv.TaxTotal.Add(amount)
}

func appendLine(inv *entity.SalesInvoice, line *ResolvedLine) error {
	if line.Rate.IsNegative() {
		return errNegativeRate
	}
	desc := line.Description
	if desc == "" {
		desc = line.ItemName
	}
	if desc == "" {
		desc = line.ProductName
	}
	inv.Items = append(inv.Items, entity.SalesInvoiceItem{
		ID:               uuid.New().String(),
		InvoiceID:        inv.ID,
		ItemCode:         line.ItemCode,
		CustomerItemCode: line.ProductCode,
		Description:      desc,
		Qty:              line.TotalQty,
		Rate:             line.Rate,
		Amount:           line.TotalAmount,
	})
	return nil
}

// customerDiscount busca el descuento por coincidencia exacta de nombre;
// gana la primera fila que coincida. Solo se aplican descuentos positivos:
// un porcentaje cero o negativo en la tabla equivale a no tener descuento.
func customerDiscount(customerName string, discounts []entity.CustomerDiscount) decimal.Decimal {
	name := strings.TrimSpace(customerName)
	for _, d := range discounts {
		if strings.TrimSpace(d.CustomerName) == name && name != "" {
			if d.DiscountPercent.GreaterThan(decimal.Zero) {
				return d.DiscountPercent
			}
			return decimal.Zero
		}
	}
	return decimal.Zero
}
