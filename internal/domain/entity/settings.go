package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportSettings configuración del importador de CSV de licencias.
// Es el registro al que se anexan el historial y los resultados de cada
// importación.
type ImportSettings struct {
	ID                   string
	CompanyID            string
	TaxAccount           string // cuenta para la línea de IVA; vacío = sin línea de impuesto
	DefaultItemGroup     string // grupo para artículos creados desde el centinela OTHER
	SuppressZeroInvoices bool   // descartar facturas cuyo total quede en cero
	Discounts            []CustomerDiscount
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CustomerDiscount descuento por cliente. La coincidencia es exacta por
// nombre de cliente; gana la primera fila que coincida.
type CustomerDiscount struct {
	ID              string
	SettingsID      string
	CustomerName    string
	DiscountPercent decimal.Decimal
	Idx             int
}

// ImportHistoryEntry fila del historial de importaciones.
type ImportHistoryEntry struct {
	ID         string
	SettingsID string
	ImportDate time.Time
	FileRef    string // nombre del archivo almacenado (o el original si falló el archivado)
}

// ImportResultEntry resultado de una importación con su reporte renderizado.
type ImportResultEntry struct {
	ID         string
	SettingsID string
	Date       time.Time
	FileRef    string
	Report     string
}
