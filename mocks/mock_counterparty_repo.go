package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docdesk/internal/domain"
)

// MockCounterpartyRepo is a mock implementation of port.CounterpartyRepository.
type MockCounterpartyRepo struct {
	mock.Mock
}

func (m *MockCounterpartyRepo) Create(ctx context.Context, cp *domain.Counterparty) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCounterpartyRepo) GetByID(ctx context.Context, kind domain.CounterpartyKind, id string) (*domain.Counterparty, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepo) List(ctx context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepo) Update(ctx context.Context, cp *domain.Counterparty) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCounterpartyRepo) Delete(ctx context.Context, kind domain.CounterpartyKind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}
