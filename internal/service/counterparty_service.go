package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"docdesk/internal/domain"
	"docdesk/internal/filter"
	"docdesk/internal/port"
	"docdesk/internal/tax"
)

// CounterpartyInput is the DTO for creating or replacing a client or vendor.
type CounterpartyInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	State         string `json:"state"`
	StateCode     string `json:"stateCode"`
	Status        string `json:"status"`
}

// CounterpartyService defines client and vendor management.
type CounterpartyService interface {
	Create(ctx context.Context, kind domain.CounterpartyKind, input *CounterpartyInput) (*domain.Counterparty, error)
	GetByID(ctx context.Context, kind domain.CounterpartyKind, id string) (*domain.Counterparty, error)
	List(ctx context.Context, kind domain.CounterpartyKind, query, status string) ([]domain.Counterparty, error)
	Update(ctx context.Context, kind domain.CounterpartyKind, id string, input *CounterpartyInput) (*domain.Counterparty, error)
	Delete(ctx context.Context, kind domain.CounterpartyKind, id string) error
}

type counterpartyService struct {
	repo port.CounterpartyRepository
	log  zerolog.Logger
}

// NewCounterpartyService creates a new CounterpartyService implementation.
func NewCounterpartyService(repo port.CounterpartyRepository, log zerolog.Logger) CounterpartyService {
	return &counterpartyService{
		repo: repo,
		log:  log.With().Str("component", "counterparty_service").Logger(),
	}
}

// build validates input and fills the state fields it implies: the code from
// the GSTIN prefix or the state name, and the name from the code.
func buildCounterparty(kind domain.CounterpartyKind, input *CounterpartyInput) (*domain.Counterparty, error) {
	cp := &domain.Counterparty{
		Kind:          kind,
		Name:          strings.TrimSpace(input.Name),
		ContactPerson: strings.TrimSpace(input.ContactPerson),
		Phone:         strings.TrimSpace(input.Phone),
		Email:         strings.TrimSpace(input.Email),
		Address:       strings.TrimSpace(input.Address),
		GSTIN:         strings.ToUpper(strings.TrimSpace(input.GSTIN)),
		State:         strings.TrimSpace(input.State),
		StateCode:     strings.TrimSpace(input.StateCode),
		Status:        strings.TrimSpace(input.Status),
	}
	if cp.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if cp.GSTIN != "" && !tax.ValidGSTIN(cp.GSTIN) {
		return nil, domain.ErrInvalidGSTIN
	}
	switch cp.Status {
	case "":
		cp.Status = domain.CounterpartyActive
	case domain.CounterpartyActive, domain.CounterpartyInactive:
	default:
		return nil, domain.ErrInvalidStatus
	}

	if cp.StateCode == "" {
		if code, ok := tax.StateCodeFromGSTIN(cp.GSTIN); ok {
			cp.StateCode = code
		} else if code, ok := tax.StateCodeFor(cp.State); ok {
			cp.StateCode = code
		}
	}
	if cp.State == "" {
		if name, ok := tax.StateName(cp.StateCode); ok {
			cp.State = name
		}
	}
	return cp, nil
}

func (s *counterpartyService) Create(ctx context.Context, kind domain.CounterpartyKind, input *CounterpartyInput) (*domain.Counterparty, error) {
	cp, err := buildCounterparty(kind, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, cp); err != nil {
		return nil, err
	}
	s.log.Info().Str("kind", string(kind)).Str("id", cp.ID).Msg("counterparty created")
	return cp, nil
}

func (s *counterpartyService) GetByID(ctx context.Context, kind domain.CounterpartyKind, id string) (*domain.Counterparty, error) {
	return s.repo.GetByID(ctx, kind, id)
}

func (s *counterpartyService) List(ctx context.Context, kind domain.CounterpartyKind, query, status string) ([]domain.Counterparty, error) {
	parties, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	return filter.Apply(parties, query, status), nil
}

func (s *counterpartyService) Update(ctx context.Context, kind domain.CounterpartyKind, id string, input *CounterpartyInput) (*domain.Counterparty, error) {
	cp, err := buildCounterparty(kind, input)
	if err != nil {
		return nil, err
	}
	cp.ID = id
	if err := s.repo.Update(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

func (s *counterpartyService) Delete(ctx context.Context, kind domain.CounterpartyKind, id string) error {
	return s.repo.Delete(ctx, kind, id)
}
