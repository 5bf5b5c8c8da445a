package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docdesk/internal/domain"
	"docdesk/internal/repository/memory"
	"docdesk/internal/service"
	"docdesk/mocks"
)

func TestInventoryService_Create_Defaults(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	svc := service.NewInventoryService(repo, zerolog.Nop())
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.InventoryItem")).Return(nil)

	item, err := svc.Create(context.Background(), &service.InventoryInput{SKU: " PMP-01 ", Name: "Pump", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "PMP-01", item.SKU)
	assert.Equal(t, "Nos", item.Unit)
	repo.AssertExpectations(t)
}

func TestInventoryService_Create_Invalid(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	svc := service.NewInventoryService(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, &service.InventoryInput{Name: "Pump"})
	assert.ErrorIs(t, err, domain.ErrSKURequired)
	_, err = svc.Create(ctx, &service.InventoryInput{SKU: "P"})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
	_, err = svc.Create(ctx, &service.InventoryInput{SKU: "P", Name: "Pump", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInventoryService_AdjustStock(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	svc := service.NewInventoryService(repo, zerolog.Nop())

	repo.On("AdjustQuantity", mock.Anything, "i1", -2.0).Return(&domain.InventoryItem{ID: "i1", Quantity: 1, ReorderLevel: 2}, nil)
	repo.On("AdjustQuantity", mock.Anything, "i1", -5.0).Return(nil, domain.ErrInsufficientStock)

	item, err := svc.AdjustStock(context.Background(), "i1", -2)
	require.NoError(t, err)
	assert.Equal(t, domain.StockLow, item.StockStatus())

	_, err = svc.AdjustStock(context.Background(), "i1", -5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestInventoryService_Import_Upserts(t *testing.T) {
	repo := memory.NewInventoryRepo()
	svc := service.NewInventoryService(repo, zerolog.Nop())
	ctx := context.Background()

	existing, err := svc.Create(ctx, &service.InventoryInput{SKU: "PMP-01", Name: "Pump", Quantity: 1})
	require.NoError(t, err)

	summary, err := svc.Import(ctx, []domain.InventoryItem{
		{SKU: "pmp-01", Name: "Pump Mk II", Quantity: 8},
		{SKU: "VLV-02", Name: "Valve", Quantity: 4, UnitPrice: 350},
		{SKU: "", Name: "No code"},
		{SKU: "BAD-1", Name: "Bad", Quantity: -3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, summary.Skipped, 2)
	assert.Equal(t, 3, summary.Skipped[0].Row)
	assert.Equal(t, "BAD-1", summary.Skipped[1].SKU)

	updated, err := svc.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pump Mk II", updated.Name)
	assert.Equal(t, 8.0, updated.Quantity)

	items, err := svc.List(ctx, "", domain.StockInStock)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestInventoryService_Import_RepositoryFailureAborts(t *testing.T) {
	repo := new(mocks.MockInventoryRepo)
	svc := service.NewInventoryService(repo, zerolog.Nop())
	boom := errors.New("connection reset")
	repo.On("GetBySKU", mock.Anything, "X-1").Return(nil, boom)

	_, err := svc.Import(context.Background(), []domain.InventoryItem{{SKU: "X-1", Name: "X"}})
	assert.ErrorIs(t, err, boom)
}
