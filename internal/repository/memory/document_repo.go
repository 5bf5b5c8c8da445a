package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

type documentRepo struct {
	docs     *ordered[domain.DocumentData]
	counters map[domain.DocumentType]int
}

// NewDocumentRepo creates an empty in-memory DocumentRepository.
func NewDocumentRepo() port.DocumentRepository {
	return &documentRepo{
		docs:     newOrdered[domain.DocumentData](),
		counters: make(map[domain.DocumentType]int),
	}
}

// cloneDocument deep-copies doc so stored party pointers and item slices are
// never aliased by callers.
func cloneDocument(doc *domain.DocumentData) (domain.DocumentData, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return domain.DocumentData{}, err
	}
	var out domain.DocumentData
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.DocumentData{}, err
	}
	return out, nil
}

func (r *documentRepo) numberTaken(doc *domain.DocumentData) bool {
	for _, id := range r.docs.order {
		other := r.docs.items[id]
		if other.ID != doc.ID && other.DocumentType == doc.DocumentType && other.DocumentNumber == doc.DocumentNumber {
			return true
		}
	}
	return false
}

func (r *documentRepo) Create(_ context.Context, doc *domain.DocumentData) error {
	r.docs.mu.Lock()
	defer r.docs.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if _, exists := r.docs.items[doc.ID]; exists {
		return fmt.Errorf("documentRepo.Create: id %s already exists", doc.ID)
	}
	if doc.DocumentNumber != "" && r.numberTaken(doc) {
		return domain.ErrDuplicateDocumentNumber
	}
	ts := now()
	doc.CreatedAt = ts
	doc.UpdatedAt = ts

	stored, err := cloneDocument(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	r.docs.put(doc.ID, stored)
	return nil
}

func (r *documentRepo) GetByID(_ context.Context, id string) (*domain.DocumentData, error) {
	r.docs.mu.RLock()
	defer r.docs.mu.RUnlock()

	doc, ok := r.docs.items[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	out, err := cloneDocument(&doc)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &out, nil
}

func (r *documentRepo) List(_ context.Context, docType domain.DocumentType) ([]domain.DocumentData, error) {
	r.docs.mu.RLock()
	defer r.docs.mu.RUnlock()

	matches := r.docs.values(func(d domain.DocumentData) bool {
		return docType == "" || d.DocumentType == docType
	})
	out := make([]domain.DocumentData, 0, len(matches))
	for i := range matches {
		doc, err := cloneDocument(&matches[i])
		if err != nil {
			return nil, fmt.Errorf("documentRepo.List: %w", err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *documentRepo) Update(_ context.Context, doc *domain.DocumentData) error {
	r.docs.mu.Lock()
	defer r.docs.mu.Unlock()

	existing, ok := r.docs.items[doc.ID]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	if doc.DocumentNumber != "" && r.numberTaken(doc) {
		return domain.ErrDuplicateDocumentNumber
	}
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = now()

	stored, err := cloneDocument(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	r.docs.put(doc.ID, stored)
	return nil
}

func (r *documentRepo) Delete(_ context.Context, id string) error {
	r.docs.mu.Lock()
	defer r.docs.mu.Unlock()

	if !r.docs.remove(id) {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) NextSequence(_ context.Context, docType domain.DocumentType) (int, error) {
	r.docs.mu.Lock()
	defer r.docs.mu.Unlock()

	r.counters[docType]++
	return r.counters[docType], nil
}
