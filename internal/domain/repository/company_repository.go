package repository

import "github.com/jhoicas/Licencias-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	GetByID(id string) (*entity.Company, error)
}
