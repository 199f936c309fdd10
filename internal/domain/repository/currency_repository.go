package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licencias-api/internal/domain/entity"
)

// CurrencyRepository define el puerto para monedas y tasas de cambio.
type CurrencyRepository interface {
	// Exists indica si el código ISO está habilitado en el sistema.
	Exists(code string) (bool, error)
	// GetExchangeRate devuelve la tasa (from -> to) vigente para la fecha,
	// habilitada para venta. (nil, nil) si no hay tasa registrada.
	GetExchangeRate(from, to string, date time.Time) (*decimal.Decimal, error)
	CreateExchange(exchange *entity.CurrencyExchange) error
}
