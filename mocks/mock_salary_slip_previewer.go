package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstkit/internal/domain"
)

// MockSalarySlipPreviewer is a mock implementation of port.SalarySlipPreviewer.
type MockSalarySlipPreviewer struct {
	mock.Mock
}

func (m *MockSalarySlipPreviewer) PreviewEarnings(ctx context.Context, structure, employee string) ([]domain.SalaryComponentAmount, error) {
	args := m.Called(ctx, structure, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryComponentAmount), args.Error(1)
}
