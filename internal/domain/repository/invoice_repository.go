package repository

import "github.com/jhoicas/Licencias-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para SalesInvoice.
// Create persiste cabecera, líneas e impuestos de forma atómica: una factura
// nunca queda guardada a medias.
type InvoiceRepository interface {
	Create(invoice *entity.SalesInvoice) error
	GetByID(id string) (*entity.SalesInvoice, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.SalesInvoice, error)
}
