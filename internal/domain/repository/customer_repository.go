package repository

import "github.com/jhoicas/Licencias-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// GetByReferenceNumber es la búsqueda que usa el importador: el CSV trae el
// número de cliente interno, no el ID del registro.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByReferenceNumber(companyID, referenceNumber string) (*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
}
