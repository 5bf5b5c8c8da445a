package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

const counterpartyColumns = `id, kind, name, contact_person, phone, email, address,
	gstin, state, state_code, status, created_at, updated_at`

type counterpartyRepo struct {
	db *sqlx.DB
}

// NewCounterpartyRepo creates a new PostgreSQL-backed CounterpartyRepository.
func NewCounterpartyRepo(db *sqlx.DB) port.CounterpartyRepository {
	return &counterpartyRepo{db: db}
}

func (r *counterpartyRepo) Create(ctx context.Context, cp *domain.Counterparty) error {
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO counterparties (`+counterpartyColumns+`) VALUES (
			:id, :kind, :name, :contact_person, :phone, :email, :address,
			:gstin, :state, :state_code, :status, :created_at, :updated_at)`, cp)
	if err != nil {
		return fmt.Errorf("counterpartyRepo.Create: %w", err)
	}
	return nil
}

func (r *counterpartyRepo) GetByID(ctx context.Context, kind domain.CounterpartyKind, id string) (*domain.Counterparty, error) {
	if !validID(id) {
		return nil, domain.ErrCounterpartyNotFound
	}
	var cp domain.Counterparty
	err := r.db.GetContext(ctx, &cp,
		"SELECT "+counterpartyColumns+" FROM counterparties WHERE id = $1 AND kind = $2", id, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCounterpartyNotFound
		}
		return nil, fmt.Errorf("counterpartyRepo.GetByID: %w", err)
	}
	return &cp, nil
}

func (r *counterpartyRepo) List(ctx context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error) {
	var parties []domain.Counterparty
	err := r.db.SelectContext(ctx, &parties,
		"SELECT "+counterpartyColumns+" FROM counterparties WHERE kind = $1 ORDER BY created_at, id", kind)
	if err != nil {
		return nil, fmt.Errorf("counterpartyRepo.List: %w", err)
	}
	return parties, nil
}

func (r *counterpartyRepo) Update(ctx context.Context, cp *domain.Counterparty) error {
	if !validID(cp.ID) {
		return domain.ErrCounterpartyNotFound
	}
	cp.UpdatedAt = time.Now().UTC()
	err := r.db.GetContext(ctx, &cp.CreatedAt,
		`UPDATE counterparties SET
			name = $3, contact_person = $4, phone = $5, email = $6, address = $7,
			gstin = $8, state = $9, state_code = $10, status = $11, updated_at = $12
		 WHERE id = $1 AND kind = $2 RETURNING created_at`,
		cp.ID, cp.Kind, cp.Name, cp.ContactPerson, cp.Phone, cp.Email, cp.Address,
		cp.GSTIN, cp.State, cp.StateCode, cp.Status, cp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCounterpartyNotFound
		}
		return fmt.Errorf("counterpartyRepo.Update: %w", err)
	}
	return nil
}

func (r *counterpartyRepo) Delete(ctx context.Context, kind domain.CounterpartyKind, id string) error {
	if !validID(id) {
		return domain.ErrCounterpartyNotFound
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM counterparties WHERE id = $1 AND kind = $2", id, kind)
	if err != nil {
		return fmt.Errorf("counterpartyRepo.Delete: %w", err)
	}
	if err := checkAffected(result.RowsAffected()); err != nil {
		if errors.Is(err, errNoRowsAffected) {
			return domain.ErrCounterpartyNotFound
		}
		return fmt.Errorf("counterpartyRepo.Delete: %w", err)
	}
	return nil
}
