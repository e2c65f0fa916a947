package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstkit/internal/domain"
	"gstkit/internal/hra"
)

// MockHRAService is a mock implementation of service.HRAService.
type MockHRAService struct {
	mock.Mock
}

func (m *MockHRAService) DeclarationExemption(ctx context.Context, decl *domain.TaxExemptionDeclaration) (*hra.Exemption, error) {
	args := m.Called(ctx, decl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hra.Exemption), args.Error(1)
}

func (m *MockHRAService) ProofExemption(ctx context.Context, proof *domain.ProofSubmission) (*hra.PeriodExemption, error) {
	args := m.Called(ctx, proof)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hra.PeriodExemption), args.Error(1)
}
