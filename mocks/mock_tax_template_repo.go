package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstkit/internal/domain"
)

// MockTaxTemplateRepo is a mock implementation of port.TaxTemplateRepository.
type MockTaxTemplateRepo struct {
	mock.Mock
}

func (m *MockTaxTemplateRepo) FindDefault(ctx context.Context, kind domain.TemplateKind, company string, interState bool) (*domain.TaxTemplate, error) {
	args := m.Called(ctx, kind, company, interState)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxTemplate), args.Error(1)
}

func (m *MockTaxTemplateRepo) ListTaxes(ctx context.Context, kind domain.TemplateKind, name string) ([]domain.TaxRow, error) {
	args := m.Called(ctx, kind, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxRow), args.Error(1)
}
