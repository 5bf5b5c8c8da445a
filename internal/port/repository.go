package port

import (
	"context"

	"docdesk/internal/domain"
)

// DocumentRepository defines the contract for canonical document persistence.
// Lists return documents in creation order.
type DocumentRepository interface {
	// Create stores doc and sets its timestamps. A document number already used
	// by another document of the same type yields domain.ErrDuplicateDocumentNumber.
	Create(ctx context.Context, doc *domain.DocumentData) error
	GetByID(ctx context.Context, id string) (*domain.DocumentData, error)
	// List returns documents of docType, or every document when docType is empty.
	List(ctx context.Context, docType domain.DocumentType) ([]domain.DocumentData, error)
	// Update replaces the stored document with the same ID.
	Update(ctx context.Context, doc *domain.DocumentData) error
	Delete(ctx context.Context, id string) error
	// NextSequence returns the next number in docType's numbering sequence.
	NextSequence(ctx context.Context, docType domain.DocumentType) (int, error)
}

// CounterpartyRepository defines the contract for client and vendor persistence.
type CounterpartyRepository interface {
	Create(ctx context.Context, cp *domain.Counterparty) error
	GetByID(ctx context.Context, kind domain.CounterpartyKind, id string) (*domain.Counterparty, error)
	List(ctx context.Context, kind domain.CounterpartyKind) ([]domain.Counterparty, error)
	Update(ctx context.Context, cp *domain.Counterparty) error
	Delete(ctx context.Context, kind domain.CounterpartyKind, id string) error
}

// InventoryRepository defines the contract for inventory persistence.
type InventoryRepository interface {
	// Create stores item; a SKU already in use yields domain.ErrDuplicateSKU.
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	// AdjustQuantity atomically adds delta to the stocked quantity. A result
	// below zero yields domain.ErrInsufficientStock and leaves stock unchanged.
	AdjustQuantity(ctx context.Context, id string, delta float64) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}
