package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository (usable con pool o tx).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetByID obtiene la configuración del importador con su tabla de descuentos
// cargada en el orden definido. (nil, nil) si no existe.
func (r *SettingsRepo) GetByID(id string) (*entity.ImportSettings, error) {
	ctx := context.Background()
	query := `
		SELECT id, company_id, tax_account, default_item_group, suppress_zero_invoices, created_at, updated_at
		FROM import_settings WHERE id = $1`
	var s entity.ImportSettings
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.TaxAccount, &s.DefaultItemGroup, &s.SuppressZeroInvoices,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import settings: %w", err)
	}

	discountQuery := `
		SELECT id, settings_id, customer_name, discount_percent, idx
		FROM import_customer_discounts WHERE settings_id = $1 ORDER BY idx`
	rows, err := r.q.Query(ctx, discountQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list customer discounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.CustomerDiscount
		if err := rows.Scan(&d.ID, &d.SettingsID, &d.CustomerName, &d.DiscountPercent, &d.Idx); err != nil {
			return nil, fmt.Errorf("scan customer discount: %w", err)
		}
		s.Discounts = append(s.Discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// AddHistory anexa una fila al historial de importaciones.
func (r *SettingsRepo) AddHistory(entry *entity.ImportHistoryEntry) error {
	query := `
		INSERT INTO import_history (id, settings_id, import_date, file_ref)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.SettingsID, entry.ImportDate, entry.FileRef,
	)
	if err != nil {
		return fmt.Errorf("insert import history: %w", err)
	}
	return nil
}

// AddResult anexa el resultado de una importación con su reporte.
func (r *SettingsRepo) AddResult(entry *entity.ImportResultEntry) error {
	query := `
		INSERT INTO import_results (id, settings_id, date, file_ref, report)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.SettingsID, entry.Date, entry.FileRef, entry.Report,
	)
	if err != nil {
		return fmt.Errorf("insert import result: %w", err)
	}
	return nil
}

// GetResult obtiene un resultado de importación por ID. (nil, nil) si no
// existe o pertenece a otra configuración.
func (r *SettingsRepo) GetResult(settingsID, resultID string) (*entity.ImportResultEntry, error) {
	query := `
		SELECT id, settings_id, date, file_ref, report
		FROM import_results WHERE settings_id = $1 AND id = $2`
	var e entity.ImportResultEntry
	err := r.q.QueryRow(context.Background(), query, settingsID, resultID).Scan(
		&e.ID, &e.SettingsID, &e.Date, &e.FileRef, &e.Report,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import result: %w", err)
	}
	return &e, nil
}

// ListResults lista los resultados de la configuración, los más recientes
// primero.
func (r *SettingsRepo) ListResults(settingsID string, limit, offset int) ([]*entity.ImportResultEntry, error) {
	query := `
		SELECT id, settings_id, date, file_ref, report
		FROM import_results WHERE settings_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, settingsID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list import results: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportResultEntry
	for rows.Next() {
		var e entity.ImportResultEntry
		if err := rows.Scan(&e.ID, &e.SettingsID, &e.Date, &e.FileRef, &e.Report); err != nil {
			return nil, fmt.Errorf("scan import result: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
