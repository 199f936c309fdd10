package repository

import "github.com/jhoicas/Licencias-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmailAndCompany(email, companyID string) (*entity.User, error)
	// FindByEmail alias semántico para uso en auth.
	FindByEmail(email string) (*entity.User, error)
}
