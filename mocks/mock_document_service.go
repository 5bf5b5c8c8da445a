package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"docdesk/internal/domain"
	"docdesk/internal/normalize"
	"docdesk/internal/service"
	"docdesk/internal/validator"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Preview(ctx context.Context, input *service.CreateDocumentInput) (*normalize.Result, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*normalize.Result), args.Error(1)
}

func (m *MockDocumentService) Create(ctx context.Context, input *service.CreateDocumentInput) (*normalize.Result, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*normalize.Result), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, id string) (*domain.DocumentData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentData), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, input *service.ListDocumentsInput) ([]domain.DocumentData, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentData), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, id string, record json.RawMessage) (*normalize.Result, error) {
	args := m.Called(ctx, id, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*normalize.Result), args.Error(1)
}

func (m *MockDocumentService) UpdateStatus(ctx context.Context, id, status string) (*domain.DocumentData, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentData), args.Error(1)
}

func (m *MockDocumentService) Convert(ctx context.Context, id, targetType string) (*domain.DocumentData, error) {
	args := m.Called(ctx, id, targetType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentData), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) Validate(ctx context.Context, id string) (*validator.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.Report), args.Error(1)
}
