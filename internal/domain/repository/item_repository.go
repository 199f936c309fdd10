package repository

import "github.com/jhoicas/Licencias-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item.
type ItemRepository interface {
	Create(item *entity.Item) error
	// GetByCode busca por código exacto de artículo (reutilización de
	// artículos OTHER creados en importaciones previas).
	GetByCode(companyID, code string) (*entity.Item, error)
	// GetByExternalArticleNumber busca por el número de artículo externo
	// que llega como Product Code en el CSV.
	GetByExternalArticleNumber(companyID, externalArticleNumber string) (*entity.Item, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error)
}
