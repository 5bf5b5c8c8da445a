package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docdesk/internal/domain"
	"docdesk/internal/service"
)

// MockCounterpartyService is a mock implementation of service.CounterpartyService.
type MockCounterpartyService struct {
	mock.Mock
}

func (m *MockCounterpartyService) Create(ctx context.Context, kind domain.CounterpartyKind, input *service.CounterpartyInput) (*domain.Counterparty, error) {
	args := m.Called(ctx, kind, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) GetByID(ctx context.Context, kind domain.CounterpartyKind, id string) (*domain.Counterparty, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) List(ctx context.Context, kind domain.CounterpartyKind, query, status string) ([]domain.Counterparty, error) {
	args := m.Called(ctx, kind, query, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) Update(ctx context.Context, kind domain.CounterpartyKind, id string, input *service.CounterpartyInput) (*domain.Counterparty, error) {
	args := m.Called(ctx, kind, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) Delete(ctx context.Context, kind domain.CounterpartyKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}
