package repository

import "github.com/jhoicas/Licencias-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para Account.
type AccountRepository interface {
	GetByName(companyID, name string) (*entity.Account, error)
}
