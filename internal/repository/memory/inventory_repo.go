package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"docdesk/internal/domain"
	"docdesk/internal/money"
	"docdesk/internal/port"
)

type inventoryRepo struct {
	items *ordered[domain.InventoryItem]
}

// NewInventoryRepo creates an empty in-memory InventoryRepository.
func NewInventoryRepo() port.InventoryRepository {
	return &inventoryRepo{items: newOrdered[domain.InventoryItem]()}
}

func (r *inventoryRepo) skuTaken(item *domain.InventoryItem) bool {
	for _, id := range r.items.order {
		other := r.items.items[id]
		if other.ID != item.ID && strings.EqualFold(other.SKU, item.SKU) {
			return true
		}
	}
	return false
}

func (r *inventoryRepo) Create(_ context.Context, item *domain.InventoryItem) error {
	r.items.mu.Lock()
	defer r.items.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.SKU != "" && r.skuTaken(item) {
		return domain.ErrDuplicateSKU
	}
	ts := now()
	item.CreatedAt = ts
	item.UpdatedAt = ts
	r.items.put(item.ID, *item)
	return nil
}

func (r *inventoryRepo) GetByID(_ context.Context, id string) (*domain.InventoryItem, error) {
	r.items.mu.RLock()
	defer r.items.mu.RUnlock()

	item, ok := r.items.items[id]
	if !ok {
		return nil, domain.ErrInventoryItemNotFound
	}
	return &item, nil
}

func (r *inventoryRepo) GetBySKU(_ context.Context, sku string) (*domain.InventoryItem, error) {
	r.items.mu.RLock()
	defer r.items.mu.RUnlock()

	for _, id := range r.items.order {
		item := r.items.items[id]
		if strings.EqualFold(item.SKU, sku) {
			return &item, nil
		}
	}
	return nil, domain.ErrInventoryItemNotFound
}

func (r *inventoryRepo) List(_ context.Context) ([]domain.InventoryItem, error) {
	r.items.mu.RLock()
	defer r.items.mu.RUnlock()

	return r.items.values(nil), nil
}

func (r *inventoryRepo) Update(_ context.Context, item *domain.InventoryItem) error {
	r.items.mu.Lock()
	defer r.items.mu.Unlock()

	existing, ok := r.items.items[item.ID]
	if !ok {
		return domain.ErrInventoryItemNotFound
	}
	if item.SKU != "" && r.skuTaken(item) {
		return domain.ErrDuplicateSKU
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = now()
	r.items.put(item.ID, *item)
	return nil
}

func (r *inventoryRepo) AdjustQuantity(_ context.Context, id string, delta float64) (*domain.InventoryItem, error) {
	r.items.mu.Lock()
	defer r.items.mu.Unlock()

	item, ok := r.items.items[id]
	if !ok {
		return nil, domain.ErrInventoryItemNotFound
	}
	qty := money.Sum(item.Quantity, delta)
	if qty < 0 {
		return nil, domain.ErrInsufficientStock
	}
	item.Quantity = qty
	item.UpdatedAt = now()
	r.items.put(id, item)
	return &item, nil
}

func (r *inventoryRepo) Delete(_ context.Context, id string) error {
	r.items.mu.Lock()
	defer r.items.mu.Unlock()

	if !r.items.remove(id) {
		return domain.ErrInventoryItemNotFound
	}
	return nil
}
