package memory

import (
	"context"

	"github.com/google/uuid"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

type counterpartyRepo struct {
	parties *ordered[domain.Counterparty]
}

// NewCounterpartyRepo creates an empty in-memory CounterpartyRepository.
func NewCounterpartyRepo() port.CounterpartyRepository {
	return &counterpartyRepo{parties: newOrdered[domain.Counterparty]()}
}

func (r *counterpartyRepo) Create(_ context.Context, cp *domain.Counterparty) error {
	r.parties.mu.Lock()
	defer r.parties.mu.Unlock()

	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	ts := now()
	cp.CreatedAt = ts
	cp.UpdatedAt = ts
	r.parties.put(cp.ID, *cp)
	return nil
}

func (r *counterpartyRepo) GetByID(_ context.Context, kind domain.CounterpartyKind, id string) (*domain.Counterparty, error) {
	r.parties.mu.RLock()
	defer r.parties.mu.RUnlock()

	cp, ok := r.parties.items[id]
	if !ok || cp.Kind != kind {
		return nil, domain.ErrCounterpartyNotFound
	}
	return &cp, nil
}

func (r *counterpartyRepo) List(_ context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error) {
	r.parties.mu.RLock()
	defer r.parties.mu.RUnlock()

	return r.parties.values(func(cp domain.Counterparty) bool { return cp.Kind == kind }), nil
}

func (r *counterpartyRepo) Update(_ context.Context, cp *domain.Counterparty) error {
	r.parties.mu.Lock()
	defer r.parties.mu.Unlock()

	existing, ok := r.parties.items[cp.ID]
	if !ok || existing.Kind != cp.Kind {
		return domain.ErrCounterpartyNotFound
	}
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = now()
	r.parties.put(cp.ID, *cp)
	return nil
}

func (r *counterpartyRepo) Delete(_ context.Context, kind domain.CounterpartyKind, id string) error {
	r.parties.mu.Lock()
	defer r.parties.mu.Unlock()

	existing, ok := r.parties.items[id]
	if !ok || existing.Kind != kind {
		return domain.ErrCounterpartyNotFound
	}
	r.parties.remove(id)
	return nil
}
