package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstkit/internal/domain"
	"gstkit/internal/gst"
	"gstkit/internal/service"
)

// MockGSTService is a mock implementation of service.GSTService.
type MockGSTService struct {
	mock.Mock
}

func (m *MockGSTService) ValidateGSTIN(ctx context.Context, in gst.GSTINInput) (gst.StatePatch, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(gst.StatePatch), args.Error(1)
}

func (m *MockGSTService) CheckDigit(ctx context.Context, id, label string) error {
	args := m.Called(ctx, id, label)
	return args.Error(0)
}

func (m *MockGSTService) States() []gst.RegionCode {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]gst.RegionCode)
}

func (m *MockGSTService) RegionalDetails(ctx context.Context, doc *domain.PartyDocument) (*service.RegionalDetails, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RegionalDetails), args.Error(1)
}

func (m *MockGSTService) TaxBreakup(ctx context.Context, invoice string, accountWise bool) (*gst.HSNBreakup, error) {
	args := m.Called(ctx, invoice, accountWise)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gst.HSNBreakup), args.Error(1)
}
