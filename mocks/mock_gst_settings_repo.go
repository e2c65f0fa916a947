package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstkit/internal/domain"
)

// MockGSTSettingsRepo is a mock implementation of port.GSTSettingsRepository.
type MockGSTSettingsRepo struct {
	mock.Mock
}

func (m *MockGSTSettingsRepo) ListAccounts(ctx context.Context, company string) ([]domain.GSTAccount, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GSTAccount), args.Error(1)
}
