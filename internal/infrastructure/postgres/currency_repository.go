package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licencias-api/internal/domain"
	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

// CurrencyRepo implementación de CurrencyRepository (usable con pool o tx).
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

// Exists indica si el código ISO está habilitado en el sistema.
func (r *CurrencyRepo) Exists(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM currencies WHERE code = $1 AND enabled)`, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check currency: %w", err)
	}
	return exists, nil
}

// GetExchangeRate devuelve la tasa de venta (from -> to) más reciente cuya
// fecha no supere la dada. (nil, nil) si no hay tasa registrada.
func (r *CurrencyRepo) GetExchangeRate(from, to string, date time.Time) (*decimal.Decimal, error) {
	query := `
		SELECT rate FROM currency_exchanges
		WHERE from_currency = $1 AND to_currency = $2 AND date <= $3 AND for_selling
		ORDER BY date DESC LIMIT 1`
	var rate decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, from, to, date).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange rate: %w", err)
	}
	return &rate, nil
}

// CreateExchange persiste una tasa de cambio.
func (r *CurrencyRepo) CreateExchange(exchange *entity.CurrencyExchange) error {
	query := `
		INSERT INTO currency_exchanges (id, from_currency, to_currency, date, rate, for_selling, for_buying)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		exchange.ID, exchange.From, exchange.To, exchange.Date, exchange.Rate,
		exchange.ForSelling, exchange.ForBuying,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert exchange rate: %w", err)
	}
	return nil
}
