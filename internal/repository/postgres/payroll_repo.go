package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gstkit/internal/domain"
	"gstkit/internal/port"
)

type payrollRepo struct {
	db *sqlx.DB
}

// NewPayrollRepo creates a new PostgreSQL-backed PayrollRepository.
func NewPayrollRepo(db *sqlx.DB) port.PayrollRepository {
	return &payrollRepo{db: db}
}

func (r *payrollRepo) GetComponents(ctx context.Context, company string) (*domain.PayrollComponents, error) {
	var c domain.PayrollComponents
	err := r.db.GetContext(ctx, &c,
		"SELECT company, basic_component, hra_component FROM payroll_components WHERE company = $1", company)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("payrollRepo.GetComponents: %w", err)
	}
	return &c, nil
}

func (r *payrollRepo) GetActiveAssignment(ctx context.Context, employee string, on time.Time) (*domain.SalaryAssignment, error) {
	var a domain.SalaryAssignment
	err := r.db.GetContext(ctx, &a,
		`SELECT a.employee, a.salary_structure, a.from_date, s.payroll_frequency
		 FROM salary_assignments a
		 JOIN salary_structures s ON s.name = a.salary_structure
		 WHERE a.employee = $1 AND a.docstatus = 1 AND a.from_date <= $2
		 ORDER BY a.from_date DESC LIMIT 1`, employee, on)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("payrollRepo.GetActiveAssignment: %w", err)
	}
	return &a, nil
}

func (r *payrollRepo) StructureHasEarning(ctx context.Context, structure, component string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM salary_structure_earnings
			WHERE structure = $1 AND salary_component = $2
		)`, structure, component)
	if err != nil {
		return false, fmt.Errorf("payrollRepo.StructureHasEarning: %w", err)
	}
	return exists, nil
}

func (r *payrollRepo) ListSubmittedProofs(ctx context.Context, employee, payrollPeriod string) ([]domain.ProofSubmission, error) {
	var proofs []domain.ProofSubmission
	err := r.db.SelectContext(ctx, &proofs,
		`SELECT * FROM proof_submissions
		 WHERE employee = $1 AND payroll_period = $2 AND docstatus = 1
		 ORDER BY name`, employee, payrollPeriod)
	if err != nil {
		return nil, fmt.Errorf("payrollRepo.ListSubmittedProofs: %w", err)
	}
	return proofs, nil
}
