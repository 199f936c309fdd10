package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository. A diferencia de los demás
// adaptadores recibe el pool directamente: Create abre su propia transacción
// para que cabecera, líneas e impuestos queden guardados todos o ninguno.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository construye el adaptador con el pool.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// Create persiste la factura completa en una transacción.
func (r *InvoiceRepo) Create(invoice *entity.SalesInvoice) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	headerQuery := `
		INSERT INTO sales_invoices (id, company_id, customer_id, posting_date, due_date, currency,
			conversion_rate, discount_percentage, net_total, tax_total, grand_total, update_stock,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.Exec(ctx, headerQuery,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.PostingDate, invoice.DueDate,
		invoice.Currency, invoice.ConversionRate, invoice.DiscountPercentage,
		invoice.NetTotal, invoice.TaxTotal, invoice.GrandTotal, invoice.UpdateStock,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO sales_invoice_items (id, invoice_id, item_code, customer_item_code, description, qty, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range invoice.Items {
		if _, err := tx.Exec(ctx, itemQuery,
			it.ID, it.InvoiceID, it.ItemCode, it.CustomerItemCode, it.Description, it.Qty, it.Rate, it.Amount,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}

	taxQuery := `
		INSERT INTO sales_invoice_taxes (id, invoice_id, charge_type, account_head, rate, description, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, tax := range invoice.Taxes {
		if _, err := tx.Exec(ctx, taxQuery,
			tax.ID, tax.InvoiceID, tax.ChargeType, tax.AccountHead, tax.Rate, tax.Description, tax.Amount,
		); err != nil {
			return fmt.Errorf("insert invoice tax: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const invoiceColumns = `id, company_id, customer_id, posting_date, due_date, currency,
		conversion_rate, discount_percentage, net_total, tax_total, grand_total, update_stock,
		created_at, updated_at`

// GetByID obtiene la factura con líneas e impuestos. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.SalesInvoice, error) {
	ctx := context.Background()
	query := `SELECT ` + invoiceColumns + ` FROM sales_invoices WHERE id = $1`
	var inv entity.SalesInvoice
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.PostingDate, &inv.DueDate, &inv.Currency,
		&inv.ConversionRate, &inv.DiscountPercentage, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.UpdateStock, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Items, err = r.loadItems(ctx, id); err != nil {
		return nil, err
	}
	if inv.Taxes, err = r.loadTaxes(ctx, id); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListByCustomer lista cabeceras de factura del cliente con paginación.
func (r *InvoiceRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.SalesInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM sales_invoices
		WHERE customer_id = $1 ORDER BY posting_date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesInvoice
	for rows.Next() {
		var inv entity.SalesInvoice
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.PostingDate, &inv.DueDate, &inv.Currency,
			&inv.ConversionRate, &inv.DiscountPercentage, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
			&inv.UpdateStock, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) loadItems(ctx context.Context, invoiceID string) ([]entity.SalesInvoiceItem, error) {
	query := `
		SELECT id, invoice_id, item_code, customer_item_code, description, qty, rate, amount
		FROM sales_invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []entity.SalesInvoiceItem
	for rows.Next() {
		var it entity.SalesInvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ItemCode, &it.CustomerItemCode, &it.Description, &it.Qty, &it.Rate, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *InvoiceRepo) loadTaxes(ctx context.Context, invoiceID string) ([]entity.SalesInvoiceTax, error) {
	query := `
		SELECT id, invoice_id, charge_type, account_head, rate, description, amount
		FROM sales_invoice_taxes WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice taxes: %w", err)
	}
	defer rows.Close()
	var taxes []entity.SalesInvoiceTax
	for rows.Next() {
		var tax entity.SalesInvoiceTax
		if err := rows.Scan(&tax.ID, &tax.InvoiceID, &tax.ChargeType, &tax.AccountHead, &tax.Rate, &tax.Description, &tax.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice tax: %w", err)
		}
		taxes = append(taxes, tax)
	}
	return taxes, rows.Err()
}
