package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Columnas del CSV del distribuidor.
const (
	colCustomerRef  = "Customer Reference Number"
	colProductCode  = "Product Code"
	colLicenses     = "Licenses Count"
	colPricePerUnit = "Customer Price Per License"
	colTotal        = "Customer Total"
	colProduct      = "Product"
	colCurrency     = "Currency"
)

// OtherProductCode centinela para artículos ad-hoc fuera del catálogo; la
// línea se factura contra un artículo creado al vuelo desde el nombre del
// producto.
const OtherProductCode = "OTHER"

// IsOtherProduct indica si el código es el centinela OTHER (sin distinguir
// mayúsculas).
func IsOtherProduct(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), OtherProductCode)
}

// AggregateKey clave estructurada (cliente, producto). Para el centinela
// OTHER el identificador del producto se deriva del nombre: dos productos
// ad-hoc distintos no deben colapsar bajo una sola clave.
type AggregateKey struct {
	CustomerRef string
	ProductID   string
}

// NewAggregateKey construye la clave de agregación de una fila.
func NewAggregateKey(customerRef, productCode, productName string) AggregateKey {
	productID := productCode
	if IsOtherProduct(productCode) {
		productID = OtherProductCode + ":" + strings.TrimSpace(productName)
	}
	return AggregateKey{CustomerRef: customerRef, ProductID: productID}
}

// AggregatedLine suma de todas las filas que comparten una AggregateKey.
// TotalQty y TotalAmount se acumulan; Rate conserva el valor de la última
// fila procesada para la clave (orden-dependiente a propósito, cubierto
// por tests).
type AggregatedLine struct {
	CustomerRef string
	ProductCode string
	ProductName string
	Currency    string
	TotalQty    decimal.Decimal
	Rate        decimal.Decimal
	TotalAmount decimal.Decimal
}

// GroupResult salida del parseo y agrupación.
type GroupResult struct {
	// ByCustomer líneas agregadas por cliente. Un cliente cuyas líneas
	// fueron todas descartadas queda con la lista vacía: el importador aún
	// debe reportarlo como "sin artículos válidos".
	ByCustomer map[string][]*AggregatedLine
	// CustomerOrder clientes en orden de primera aparición en el CSV.
	CustomerOrder []string
	// LicensesBefore suma de |Licenses Count| de todas las filas válidas.
	LicensesBefore decimal.Decimal
	// Errors errores por fila, en orden de aparición.
	Errors []string
}

// ParseAndGroup lee el CSV (delimitado por punto y coma, con fila de
// encabezado) y agrega cantidades e importes por (cliente, producto).
// Filas sin Customer Reference Number o sin Product Code se omiten con un
// error que nombra su número de línea (índice base cero + 2 por el
// encabezado); el procesamiento continúa. Tras agrupar, los agregados con
// cantidad total <= 0 se descartan.
func ParseAndGroup(r io.Reader) (*GroupResult, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}

	res := &GroupResult{ByCustomer: make(map[string][]*AggregatedLine)}
	if len(records) == 0 {
		return res, nil
	}

	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		idx[strings.TrimSpace(h)] = i
	}
	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	byKey := make(map[AggregateKey]*AggregatedLine)
	var keyOrder []AggregateKey

	for i, rec := range records[1:] {
		lineNr := i + 2

		customerRef := field(rec, colCustomerRef)
		productCode := field(rec, colProductCode)
		if customerRef == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Missing Customer Reference Number in line %d", lineNr))
			continue
		}
		if productCode == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Missing Product Code in line %d", lineNr))
			continue
		}

		qty := ParseLocaleNumber(field(rec, colLicenses))
		res.LicensesBefore = res.LicensesBefore.Add(qty.Abs())

		productName := field(rec, colProduct)
		key := NewAggregateKey(customerRef, productCode, productName)
		line, ok := byKey[key]
		if !ok {
			line = &AggregatedLine{CustomerRef: customerRef, ProductCode: productCode}
			byKey[key] = line
			keyOrder = append(keyOrder, key)
		}

		line.TotalQty = line.TotalQty.Add(qty)
		line.TotalAmount = line.TotalAmount.Add(ParseLocaleNumber(field(rec, colTotal)))
		line.Rate = ParseLocaleNumber(field(rec, colPricePerUnit)) // la última fila gana
		if productName != "" {
			line.ProductName = productName
		}

		currency := field(rec, colCurrency)
		switch {
		case currency == "":
		case line.Currency == "":
			line.Currency = currency
		case !strings.EqualFold(line.Currency, currency):
			res.Errors = append(res.Errors, fmt.Sprintf(
				"Currency mismatch for customer %s, product %s: %s vs %s (line %d)",
				customerRef, line.ProductCode, line.Currency, currency, lineNr))
		}
	}

	for _, key := range keyOrder {
		if _, ok := res.ByCustomer[key.CustomerRef]; !ok {
			res.ByCustomer[key.CustomerRef] = nil
			res.CustomerOrder = append(res.CustomerOrder, key.CustomerRef)
		}
		line := byKey[key]
		if !line.TotalQty.GreaterThan(decimal.Zero) {
			continue // descartado; el cliente queda sin líneas válidas
		}
		res.ByCustomer[key.CustomerRef] = append(res.ByCustomer[key.CustomerRef], line)
	}
	return res, nil
}
