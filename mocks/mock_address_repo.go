package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstkit/internal/domain"
)

// MockAddressRepo is a mock implementation of port.AddressRepository.
type MockAddressRepo struct {
	mock.Mock
}

func (m *MockAddressRepo) GetByName(ctx context.Context, name string) (*domain.Address, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}
