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

const inventoryColumns = `id, sku, name, description, hsn_sac, unit, unit_price,
	quantity, reorder_level, created_at, updated_at`

type inventoryRepo struct {
	db *sqlx.DB
}

// NewInventoryRepo creates a new PostgreSQL-backed InventoryRepository.
func NewInventoryRepo(db *sqlx.DB) port.InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO inventory_items (`+inventoryColumns+`) VALUES (
			:id, :sku, :name, :description, :hsn_sac, :unit, :unit_price,
			:quantity, :reorder_level, :created_at, :updated_at)`, item)
	if err != nil {
		if isUniqueViolation(err, "inventory_items_sku_key") {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("inventoryRepo.Create: %w", err)
	}
	return nil
}

func (r *inventoryRepo) get(ctx context.Context, op, where string, arg interface{}) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := r.db.GetContext(ctx, &item, "SELECT "+inventoryColumns+" FROM inventory_items WHERE "+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("inventoryRepo.%s: %w", op, err)
	}
	return &item, nil
}

func (r *inventoryRepo) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	if !validID(id) {
		return nil, domain.ErrInventoryItemNotFound
	}
	return r.get(ctx, "GetByID", "id = $1", id)
}

func (r *inventoryRepo) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	return r.get(ctx, "GetBySKU", "lower(sku) = lower($1)", sku)
}

func (r *inventoryRepo) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT "+inventoryColumns+" FROM inventory_items ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("inventoryRepo.List: %w", err)
	}
	return items, nil
}

func (r *inventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	if !validID(item.ID) {
		return domain.ErrInventoryItemNotFound
	}
	item.UpdatedAt = time.Now().UTC()
	err := r.db.GetContext(ctx, &item.CreatedAt,
		`UPDATE inventory_items SET
			sku = $2, name = $3, description = $4, hsn_sac = $5, unit = $6,
			unit_price = $7, quantity = $8, reorder_level = $9, updated_at = $10
		 WHERE id = $1 RETURNING created_at`,
		item.ID, item.SKU, item.Name, item.Description, item.HSNSAC, item.Unit,
		item.UnitPrice, item.Quantity, item.ReorderLevel, item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInventoryItemNotFound
		}
		if isUniqueViolation(err, "inventory_items_sku_key") {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("inventoryRepo.Update: %w", err)
	}
	return nil
}

// AdjustQuantity applies delta in a single guarded UPDATE. When no row
// changes, a follow-up lookup separates a missing item from short stock.
func (r *inventoryRepo) AdjustQuantity(ctx context.Context, id string, delta float64) (*domain.InventoryItem, error) {
	if !validID(id) {
		return nil, domain.ErrInventoryItemNotFound
	}
	var item domain.InventoryItem
	err := r.db.GetContext(ctx, &item,
		`UPDATE inventory_items SET quantity = quantity + $2, updated_at = $3
		 WHERE id = $1 AND quantity + $2 >= 0
		 RETURNING `+inventoryColumns, id, delta, time.Now().UTC())
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inventoryRepo.AdjustQuantity: %w", err)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domain.ErrInsufficientStock
}

func (r *inventoryRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrInventoryItemNotFound
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM inventory_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("inventoryRepo.Delete: %w", err)
	}
	if err := checkAffected(result.RowsAffected()); err != nil {
		if errors.Is(err, errNoRowsAffected) {
			return domain.ErrInventoryItemNotFound
		}
		return fmt.Errorf("inventoryRepo.Delete: %w", err)
	}
	return nil
}
