package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gstkit/internal/domain"
)

// MockPayrollRepo is a mock implementation of port.PayrollRepository.
type MockPayrollRepo struct {
	mock.Mock
}

func (m *MockPayrollRepo) GetComponents(ctx context.Context, company string) (*domain.PayrollComponents, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollComponents), args.Error(1)
}

func (m *MockPayrollRepo) GetActiveAssignment(ctx context.Context, employee string, on time.Time) (*domain.SalaryAssignment, error) {
	args := m.Called(ctx, employee, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalaryAssignment), args.Error(1)
}

func (m *MockPayrollRepo) StructureHasEarning(ctx context.Context, structure, component string) (bool, error) {
	args := m.Called(ctx, structure, component)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayrollRepo) ListSubmittedProofs(ctx context.Context, employee, payrollPeriod string) ([]domain.ProofSubmission, error) {
	args := m.Called(ctx, employee, payrollPeriod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProofSubmission), args.Error(1)
}
