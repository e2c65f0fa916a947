package port

import (
	"context"
	"time"

	"gstkit/internal/domain"
)

// AddressRepository defines the contract for address lookups.
type AddressRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Address, error)
}

// InvoiceRepository defines the contract for sales invoice lookups.
// GetSalesInvoice returns the invoice with its items and tax rows loaded.
type InvoiceRepository interface {
	GetSalesInvoice(ctx context.Context, name string) (*domain.SalesInvoice, error)
}

// GSTSettingsRepository defines the contract for the GST account settings of a company.
type GSTSettingsRepository interface {
	ListAccounts(ctx context.Context, company string) ([]domain.GSTAccount, error)
}

// TaxTemplateRepository defines the contract for taxes-and-charges templates.
type TaxTemplateRepository interface {
	// FindDefault returns the enabled inter-state template of the company when
	// interState is set, otherwise its enabled default template.
	// It returns domain.ErrNotFound when there is none.
	FindDefault(ctx context.Context, kind domain.TemplateKind, company string, interState bool) (*domain.TaxTemplate, error)
	ListTaxes(ctx context.Context, kind domain.TemplateKind, name string) ([]domain.TaxRow, error)
}

// PayrollRepository defines the contract for the payroll records HRA
// exemption is computed from.
type PayrollRepository interface {
	GetComponents(ctx context.Context, company string) (*domain.PayrollComponents, error)
	// GetActiveAssignment returns the latest submitted salary structure
	// assignment starting on or before the given date, or domain.ErrNotFound.
	GetActiveAssignment(ctx context.Context, employee string, on time.Time) (*domain.SalaryAssignment, error)
	StructureHasEarning(ctx context.Context, structure, component string) (bool, error)
	ListSubmittedProofs(ctx context.Context, employee, payrollPeriod string) ([]domain.ProofSubmission, error)
}

// SalarySlipPreviewer produces the earnings of a draft salary slip for an
// employee on a salary structure without saving it.
type SalarySlipPreviewer interface {
	PreviewEarnings(ctx context.Context, structure, employee string) ([]domain.SalaryComponentAmount, error)
}
