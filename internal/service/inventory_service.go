package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"docdesk/internal/domain"
	"docdesk/internal/filter"
	"docdesk/internal/port"
)

const defaultInventoryUnit = "Nos"

// InventoryInput is the DTO for creating or replacing an inventory item.
type InventoryInput struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	HSNSAC       string  `json:"hsnSac"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorderLevel"`
}

// ImportSummary reports the outcome of a bulk inventory import.
type ImportSummary struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Skipped []ImportIssue `json:"skipped"`
}

// ImportIssue describes a row that could not be imported.
type ImportIssue struct {
	Row    int    `json:"row"`
	SKU    string `json:"sku"`
	Reason string `json:"reason"`
}

// InventoryService defines inventory management.
type InventoryService interface {
	Create(ctx context.Context, input *InventoryInput) (*domain.InventoryItem, error)
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context, query, status string) ([]domain.InventoryItem, error)
	Update(ctx context.Context, id string, input *InventoryInput) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta float64) (*domain.InventoryItem, error)
	// Import upserts rows by SKU. Rows that fail validation are reported and
	// skipped; repository failures abort the import.
	Import(ctx context.Context, rows []domain.InventoryItem) (*ImportSummary, error)
}

type inventoryService struct {
	repo port.InventoryRepository
	log  zerolog.Logger
}

// NewInventoryService creates a new InventoryService implementation.
func NewInventoryService(repo port.InventoryRepository, log zerolog.Logger) InventoryService {
	return &inventoryService{
		repo: repo,
		log:  log.With().Str("component", "inventory_service").Logger(),
	}
}

func buildInventoryItem(input *InventoryInput) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{
		SKU:          strings.TrimSpace(input.SKU),
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		HSNSAC:       strings.TrimSpace(input.HSNSAC),
		Unit:         strings.TrimSpace(input.Unit),
		UnitPrice:    input.UnitPrice,
		Quantity:     input.Quantity,
		ReorderLevel: input.ReorderLevel,
	}
	if item.SKU == "" {
		return nil, domain.ErrSKURequired
	}
	if item.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if item.UnitPrice < 0 || item.Quantity < 0 || item.ReorderLevel < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if item.Unit == "" {
		item.Unit = defaultInventoryUnit
	}
	return item, nil
}

func inventoryInput(item *domain.InventoryItem) *InventoryInput {
	return &InventoryInput{
		SKU:          item.SKU,
		Name:         item.Name,
		Description:  item.Description,
		HSNSAC:       item.HSNSAC,
		Unit:         item.Unit,
		UnitPrice:    item.UnitPrice,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
	}
}

func (s *inventoryService) Create(ctx context.Context, input *InventoryInput) (*domain.InventoryItem, error) {
	item, err := buildInventoryItem(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *inventoryService) List(ctx context.Context, query, status string) ([]domain.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(items, query, status), nil
}

func (s *inventoryService) Update(ctx context.Context, id string, input *InventoryInput) (*domain.InventoryItem, error) {
	item, err := buildInventoryItem(input)
	if err != nil {
		return nil, err
	}
	item.ID = id
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *inventoryService) AdjustStock(ctx context.Context, id string, delta float64) (*domain.InventoryItem, error) {
	item, err := s.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if item.StockStatus() != domain.StockInStock {
		s.log.Warn().
			Str("sku", item.SKU).
			Float64("quantity", item.Quantity).
			Str("stock_status", item.StockStatus()).
			Msg("stock at or below reorder level")
	}
	return item, nil
}

func (s *inventoryService) Import(ctx context.Context, rows []domain.InventoryItem) (*ImportSummary, error) {
	summary := &ImportSummary{Skipped: []ImportIssue{}}
	for i := range rows {
		item, err := buildInventoryItem(inventoryInput(&rows[i]))
		if err != nil {
			summary.Skipped = append(summary.Skipped, ImportIssue{Row: i + 1, SKU: rows[i].SKU, Reason: err.Error()})
			continue
		}

		existing, err := s.repo.GetBySKU(ctx, item.SKU)
		switch {
		case errors.Is(err, domain.ErrInventoryItemNotFound):
			if err := s.repo.Create(ctx, item); err != nil {
				return nil, err
			}
			summary.Created++
		case err != nil:
			return nil, err
		default:
			item.ID = existing.ID
			if err := s.repo.Update(ctx, item); err != nil {
				return nil, err
			}
			summary.Updated++
		}
	}
	s.log.Info().
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Int("skipped", len(summary.Skipped)).
		Msg("inventory import finished")
	return summary, nil
}
