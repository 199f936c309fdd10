package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// GetByName obtiene una cuenta contable por su nombre. (nil, nil) si no existe.
func (r *AccountRepo) GetByName(companyID, name string) (*entity.Account, error) {
	query := `
		SELECT id, company_id, name, account_name, tax_rate, rate, created_at, updated_at
		FROM accounts WHERE company_id = $1 AND name = $2`
	var a entity.Account
	err := r.q.QueryRow(context.Background(), query, companyID, name).Scan(
		&a.ID, &a.CompanyID, &a.Name, &a.AccountName, &a.TaxRate, &a.Rate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}
