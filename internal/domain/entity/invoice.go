package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cargo soportados en líneas de impuesto.
const ChargeTypeOnNetTotal = "On Net Total"

// SalesInvoice cabecera de una factura de venta generada por el importador.
// Una factura se persiste completa (cabecera + líneas + impuestos) o no se
// persiste; nunca a medias.
type SalesInvoice struct {
	ID                 string
	CompanyID          string
	CustomerID         string
	PostingDate        time.Time
	DueDate            time.Time
	Currency           string
	ConversionRate     decimal.Decimal // multiplicador hacia la moneda por defecto de la empresa
	DiscountPercentage decimal.Decimal // descuento adicional a nivel factura (0-100)
	NetTotal           decimal.Decimal // suma de líneas antes de descuento
	TaxTotal           decimal.Decimal
	GrandTotal         decimal.Decimal // neto con descuento + impuestos
	UpdateStock        bool
	Items              []SalesInvoiceItem
	Taxes              []SalesInvoiceTax
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SalesInvoiceItem línea de factura. CustomerItemCode conserva el Product
// Code original del CSV aunque el artículo del catálogo tenga otro código.
type SalesInvoiceItem struct {
	ID               string
	InvoiceID        string
	ItemCode         string
	CustomerItemCode string
	Description      string
	Qty              decimal.Decimal
	Rate             decimal.Decimal
	Amount           decimal.Decimal
}

// SalesInvoiceTax línea de impuesto de la factura.
type SalesInvoiceTax struct {
	ID          string
	InvoiceID   string
	ChargeType  string
	AccountHead string
	Rate        decimal.Decimal // porcentaje (ej. 19)
	Description string
	Amount      decimal.Decimal
}
