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

type taxTemplateRepo struct {
	db *sqlx.DB
}

// NewTaxTemplateRepo creates a new PostgreSQL-backed TaxTemplateRepository.
func NewTaxTemplateRepo(db *sqlx.DB) port.TaxTemplateRepository {
	return &taxTemplateRepo{db: db}
}

func (r *taxTemplateRepo) FindDefault(ctx context.Context, kind domain.TemplateKind, company string, interState bool) (*domain.TaxTemplate, error) {
	query := `SELECT * FROM tax_templates
		WHERE kind = $1 AND company = $2 AND disabled = FALSE AND is_default = TRUE
		ORDER BY name LIMIT 1`
	if interState {
		query = `SELECT * FROM tax_templates
			WHERE kind = $1 AND company = $2 AND disabled = FALSE AND is_inter_state = TRUE
			ORDER BY name LIMIT 1`
	}

	var tmpl domain.TaxTemplate
	err := r.db.GetContext(ctx, &tmpl, query, kind, company)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxTemplateRepo.FindDefault: %w", err)
	}
	return &tmpl, nil
}

func (r *taxTemplateRepo) ListTaxes(ctx context.Context, kind domain.TemplateKind, name string) ([]domain.TaxRow, error) {
	var rows []domain.TaxRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT description, account_head, category, rate
		 FROM tax_template_rows WHERE kind = $1 AND template = $2 ORDER BY idx`, kind, name)
	if err != nil {
		return nil, fmt.Errorf("taxTemplateRepo.ListTaxes: %w", err)
	}
	return rows, nil
}
