package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstkit/internal/domain"
	"gstkit/internal/service"
)

// MockEWayBillService is a mock implementation of service.EWayBillService.
type MockEWayBillService struct {
	mock.Mock
}

func (m *MockEWayBillService) Generate(ctx context.Context, docType domain.DocumentType, names []string) (*service.EWayBillFile, error) {
	args := m.Called(ctx, docType, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EWayBillFile), args.Error(1)
}
