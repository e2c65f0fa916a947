package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gstkit/internal/domain"
	"gstkit/internal/port"
)

type structurePreviewer struct {
	db *sqlx.DB
}

// NewStructurePreviewer creates a SalarySlipPreviewer that reads the fixed
// earning amounts of a salary structure. It stands in for a full payroll
// engine, which would evaluate formulas per employee.
func NewStructurePreviewer(db *sqlx.DB) port.SalarySlipPreviewer {
	return &structurePreviewer{db: db}
}

func (r *structurePreviewer) PreviewEarnings(ctx context.Context, structure, _ string) ([]domain.SalaryComponentAmount, error) {
	var earnings []domain.SalaryComponentAmount
	err := r.db.SelectContext(ctx, &earnings,
		`SELECT salary_component, amount FROM salary_structure_earnings
		 WHERE structure = $1 ORDER BY idx`, structure)
	if err != nil {
		return nil, fmt.Errorf("structurePreviewer.PreviewEarnings: %w", err)
	}
	return earnings, nil
}
