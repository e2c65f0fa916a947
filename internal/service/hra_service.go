package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gstkit/internal/domain"
	"gstkit/internal/hra"
	"gstkit/internal/port"
)

// HRAService computes HRA exemptions for declarations and rent proofs.
type HRAService interface {
	DeclarationExemption(ctx context.Context, decl *domain.TaxExemptionDeclaration) (*hra.Exemption, error)
	// ProofExemption returns nil when the proof carries no rent payment.
	ProofExemption(ctx context.Context, proof *domain.ProofSubmission) (*hra.PeriodExemption, error)
}

type hraService struct {
	payroll port.PayrollRepository
	slips   port.SalarySlipPreviewer
	now     func() time.Time
	log     *zap.Logger
}

// NewHRAService creates a new HRAService implementation.
func NewHRAService(payroll port.PayrollRepository, slips port.SalarySlipPreviewer, log *zap.Logger) HRAService {
	if log == nil {
		log = zap.NewNop()
	}
	return &hraService{payroll: payroll, slips: slips, now: time.Now, log: log}
}

func (s *hraService) DeclarationExemption(ctx context.Context, decl *domain.TaxExemptionDeclaration) (*hra.Exemption, error) {
	in, err := s.loadInput(ctx, decl.Company, decl.Employee, decl.DocStatus)
	if err != nil {
		return nil, err
	}
	in.MonthlyHouseRent = decl.MonthlyHouseRent
	in.RentedInMetroCity = decl.RentedInMetroCity

	ex, err := hra.AnnualEligibleExemption(in)
	if err != nil {
		return nil, err
	}
	s.log.Debug("hra exemption calculated",
		zap.String("employee", decl.Employee),
		zap.Float64("annual_exemption", ex.AnnualExemption),
	)
	return &ex, nil
}

func (s *hraService) ProofExemption(ctx context.Context, proof *domain.ProofSubmission) (*hra.PeriodExemption, error) {
	if proof.HouseRentPaymentAmount == 0 {
		return nil, nil
	}
	prior, err := s.payroll.ListSubmittedProofs(ctx, proof.Employee, proof.PayrollPeriod)
	if err != nil {
		return nil, fmt.Errorf("hraService.ProofExemption: %w", err)
	}
	if err := hra.ValidateRentDates(proof, prior); err != nil {
		return nil, err
	}

	in, err := s.loadInput(ctx, proof.Company, proof.Employee, proof.DocStatus)
	if err != nil {
		return nil, err
	}
	return hra.CalculatePeriodExemption(proof, prior, in)
}

// loadInput fetches the payroll records the exemption depends on, stopping at
// the first one whose absence already decides the result.
func (s *hraService) loadInput(ctx context.Context, company, employee string, status domain.DocStatus) (hra.Input, error) {
	in := hra.Input{DocStatus: status}

	components, err := s.payroll.GetComponents(ctx, company)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return in, nil
	case err != nil:
		return in, fmt.Errorf("hraService.loadInput: %w", err)
	}
	in.Components = *components
	if components.BasicComponent == "" || components.HRAComponent == "" {
		return in, nil
	}

	assignment, err := s.payroll.GetActiveAssignment(ctx, employee, s.now())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return in, nil
	case err != nil:
		return in, fmt.Errorf("hraService.loadInput: %w", err)
	}
	in.Assignment = assignment

	in.HasHRAEarning, err = s.payroll.StructureHasEarning(ctx, assignment.SalaryStructure, components.HRAComponent)
	if err != nil {
		return in, fmt.Errorf("hraService.loadInput: %w", err)
	}
	if !in.HasHRAEarning {
		return in, nil
	}

	in.Earnings, err = s.slips.PreviewEarnings(ctx, assignment.SalaryStructure, employee)
	if err != nil {
		return in, fmt.Errorf("hraService.loadInput: %w", err)
	}
	return in, nil
}
