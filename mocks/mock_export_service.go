package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docdesk/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
// Write callbacks registered with Run can fill w.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportDocuments(ctx context.Context, input *service.ListDocumentsInput, format string, w io.Writer) (string, error) {
	args := m.Called(ctx, input, format, w)
	return args.String(0), args.Error(1)
}

func (m *MockExportService) DocumentWorkbook(ctx context.Context, id string, w io.Writer) (string, error) {
	args := m.Called(ctx, id, w)
	return args.String(0), args.Error(1)
}

func (m *MockExportService) ExportInventory(ctx context.Context, w io.Writer) (string, error) {
	args := m.Called(ctx, w)
	return args.String(0), args.Error(1)
}

func (m *MockExportService) Archive(ctx context.Context, id string) (*service.ArchiveResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}
