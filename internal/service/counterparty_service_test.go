package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docdesk/internal/domain"
	"docdesk/internal/service"
	"docdesk/mocks"
)

func TestCounterpartyService_Create_DerivesState(t *testing.T) {
	repo := new(mocks.MockCounterpartyRepo)
	svc := service.NewCounterpartyService(repo, zerolog.Nop())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Counterparty")).Return(nil)

	cp, err := svc.Create(context.Background(), domain.CounterpartyClient, &service.CounterpartyInput{
		Name:  "  Hosur Motors ",
		GSTIN: "29aabch1234f1z5",
	})

	require.NoError(t, err)
	assert.Equal(t, "Hosur Motors", cp.Name)
	assert.Equal(t, domain.CounterpartyClient, cp.Kind)
	assert.Equal(t, "29AABCH1234F1Z5", cp.GSTIN)
	assert.Equal(t, "29", cp.StateCode)
	assert.Equal(t, "Karnataka", cp.State)
	assert.Equal(t, domain.CounterpartyActive, cp.Status)
	repo.AssertExpectations(t)
}

func TestCounterpartyService_Create_StateCodeFromName(t *testing.T) {
	repo := new(mocks.MockCounterpartyRepo)
	svc := service.NewCounterpartyService(repo, zerolog.Nop())
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	cp, err := svc.Create(context.Background(), domain.CounterpartyVendor, &service.CounterpartyInput{
		Name:  "Steel Traders",
		State: "tamil nadu",
	})

	require.NoError(t, err)
	assert.Equal(t, "33", cp.StateCode)
	assert.Equal(t, "tamil nadu", cp.State)
}

func TestCounterpartyService_Create_Invalid(t *testing.T) {
	repo := new(mocks.MockCounterpartyRepo)
	svc := service.NewCounterpartyService(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CounterpartyClient, &service.CounterpartyInput{Name: " "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.Create(ctx, domain.CounterpartyClient, &service.CounterpartyInput{Name: "X", GSTIN: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)

	_, err = svc.Create(ctx, domain.CounterpartyClient, &service.CounterpartyInput{Name: "X", Status: "Dormant"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCounterpartyService_List_Filters(t *testing.T) {
	repo := new(mocks.MockCounterpartyRepo)
	svc := service.NewCounterpartyService(repo, zerolog.Nop())

	repo.On("List", mock.Anything, domain.CounterpartyClient).Return([]domain.Counterparty{
		{Name: "Kovai Pumps", Status: domain.CounterpartyActive},
		{Name: "Hosur Motors", Status: domain.CounterpartyInactive},
		{Name: "Kovai Valves", Status: domain.CounterpartyInactive},
	}, nil)

	got, err := svc.List(context.Background(), domain.CounterpartyClient, "kovai", domain.CounterpartyInactive)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kovai Valves", got[0].Name)
}

func TestCounterpartyService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockCounterpartyRepo)
	svc := service.NewCounterpartyService(repo, zerolog.Nop())

	repo.On("Update", mock.Anything, mock.MatchedBy(func(cp *domain.Counterparty) bool {
		return cp.ID == "v1" && cp.Kind == domain.CounterpartyVendor
	})).Return(domain.ErrCounterpartyNotFound)

	_, err := svc.Update(context.Background(), domain.CounterpartyVendor, "v1", &service.CounterpartyInput{Name: "Steel Traders"})
	assert.ErrorIs(t, err, domain.ErrCounterpartyNotFound)
	repo.AssertExpectations(t)
}
