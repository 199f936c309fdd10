package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Licencias-api/internal/domain"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, company_id, code, name, description, external_article_number,
		item_group, stock_uom, is_stock_item, is_sales_item, created_at, updated_at`

// Create persiste un artículo nuevo (incluye los creados al vuelo desde el
// centinela OTHER).
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.Code, item.Name, item.Description, item.ExternalArticleNumber,
		item.ItemGroup, item.StockUOM, item.IsStockItem, item.IsSalesItem, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByCode obtiene un artículo por su código exacto. (nil, nil) si no existe.
func (r *ItemRepo) GetByCode(companyID, code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, code))
}

// GetByExternalArticleNumber obtiene un artículo por el número de artículo
// externo que llega como Product Code en el CSV. (nil, nil) si no existe.
func (r *ItemRepo) GetByExternalArticleNumber(companyID, externalArticleNumber string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 AND external_article_number = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, externalArticleNumber))
}

// ListByCompany lista artículos de la empresa con paginación.
func (r *ItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *ItemRepo) scanOne(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	if err := scanItem(row, &it); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func scanItem(row pgx.Row, it *entity.Item) error {
	return row.Scan(
		&it.ID, &it.CompanyID, &it.Code, &it.Name, &it.Description, &it.ExternalArticleNumber,
		&it.ItemGroup, &it.StockUOM, &it.IsStockItem, &it.IsSalesItem, &it.CreatedAt, &it.UpdatedAt,
	)
}
