package dto

import "time"

// ImportRequest carga de una importación de CSV de licencias.
// FileContent puede venir en base64 o como texto plano; el importador
// intenta primero base64.
type ImportRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	FileContent string `json:"file_content" validate:"required"`
}

// ImportResponse contrato de salida del importador.
type ImportResponse struct {
	Status          string `json:"status"` // success | error
	Message         string `json:"message"`
	InvoicesCreated int    `json:"invoices_created,omitempty"`
	ErrorsCount     int    `json:"errors_count,omitempty"`
	Report          string `json:"report,omitempty"`
}

// CustomerDiscountResponse fila de la tabla de descuentos por cliente.
type CustomerDiscountResponse struct {
	CustomerName    string `json:"customer_name"`
	DiscountPercent string `json:"discount_percent"`
}

// SettingsResponse configuración del importador.
type SettingsResponse struct {
	ID                   string                     `json:"id"`
	CompanyID            string                     `json:"company_id"`
	TaxAccount           string                     `json:"tax_account"`
	DefaultItemGroup     string                     `json:"default_item_group"`
	SuppressZeroInvoices bool                       `json:"suppress_zero_invoices"`
	Discounts            []CustomerDiscountResponse `json:"discounts"`
}

// ImportResultResponse resultado almacenado de una importación.
type ImportResultResponse struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	FileRef string    `json:"file_ref"`
	Report  string    `json:"report"`
}
