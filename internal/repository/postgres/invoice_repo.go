package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstkit/internal/domain"
	"gstkit/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) GetSalesInvoice(ctx context.Context, name string) (*domain.SalesInvoice, error) {
	var inv domain.SalesInvoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM sales_invoices WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetSalesInvoice: %w", err)
	}

	err = r.db.SelectContext(ctx, &inv.Items,
		`SELECT item_code, item_name, gst_hsn_code, net_amount
		 FROM sales_invoice_items WHERE parent = $1 ORDER BY idx`, name)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetSalesInvoice items: %w", err)
	}

	err = r.db.SelectContext(ctx, &inv.Taxes,
		`SELECT description, account_head, category, rate, item_wise_tax_detail
		 FROM sales_invoice_taxes WHERE parent = $1 ORDER BY idx`, name)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetSalesInvoice taxes: %w", err)
	}
	return &inv, nil
}
