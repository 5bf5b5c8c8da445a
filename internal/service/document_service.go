package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"docdesk/internal/domain"
	"docdesk/internal/filter"
	"docdesk/internal/normalize"
	"docdesk/internal/port"
	"docdesk/internal/validator"
)

// maxNumberAttempts bounds retries when a generated document number collides
// with one entered by hand.
const maxNumberAttempts = 5

// dateLayout is the layout used for dates the service fills in.
const dateLayout = "2006-01-02"

// CreateDocumentInput is the DTO for creating a document from a raw record.
type CreateDocumentInput struct {
	DocumentType string          `json:"documentType"`
	Record       json.RawMessage `json:"record"`
}

// ListDocumentsInput is the DTO for listing documents.
type ListDocumentsInput struct {
	DocumentType string
	Query        string
	Status       string
}

// DocumentService defines the document management contract.
type DocumentService interface {
	// Preview normalizes a record without storing it.
	Preview(ctx context.Context, input *CreateDocumentInput) (*normalize.Result, error)
	Create(ctx context.Context, input *CreateDocumentInput) (*normalize.Result, error)
	GetByID(ctx context.Context, id string) (*domain.DocumentData, error)
	List(ctx context.Context, input *ListDocumentsInput) ([]domain.DocumentData, error)
	// Update replaces the whole document with a freshly normalized record of
	// the same type.
	Update(ctx context.Context, id string, record json.RawMessage) (*normalize.Result, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.DocumentData, error)
	Convert(ctx context.Context, id, targetType string) (*domain.DocumentData, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, id string) (*validator.Report, error)
}

type documentService struct {
	repo       port.DocumentRepository
	normalizer *normalize.Normalizer
	validator  *validator.Engine
	log        zerolog.Logger
	now        func() time.Time
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	repo port.DocumentRepository,
	normalizer *normalize.Normalizer,
	validationEngine *validator.Engine,
	log zerolog.Logger,
) DocumentService {
	return &documentService{
		repo:       repo,
		normalizer: normalizer,
		validator:  validationEngine,
		log:        log.With().Str("component", "document_service").Logger(),
		now:        time.Now,
	}
}

func parseType(s string) (domain.DocumentType, error) {
	t, ok := domain.ParseDocumentType(s)
	if !ok {
		return "", domain.ErrInvalidDocumentType
	}
	return t, nil
}

func (s *documentService) decode(input *CreateDocumentInput) (normalize.Record, error) {
	docType, err := parseType(input.DocumentType)
	if err != nil {
		return normalize.Record{}, err
	}
	return normalize.DecodeRecord(docType, input.Record)
}

func (s *documentService) Preview(_ context.Context, input *CreateDocumentInput) (*normalize.Result, error) {
	rec, err := s.decode(input)
	if err != nil {
		return nil, err
	}
	res := s.normalizer.Normalize(rec)
	return &res, nil
}

func (s *documentService) Create(ctx context.Context, input *CreateDocumentInput) (*normalize.Result, error) {
	rec, err := s.decode(input)
	if err != nil {
		return nil, err
	}
	res := s.normalizer.Normalize(rec)
	doc := &res.Document
	doc.ID = uuid.New().String()
	if doc.Date == "" {
		doc.Date = s.now().Format(dateLayout)
	}

	if err := s.store(ctx, doc); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("document_id", doc.ID).
		Str("document_type", string(doc.DocumentType)).
		Str("document_number", doc.DocumentNumber).
		Int("defaulted", len(res.Defaulted)).
		Msg("document created")
	return &res, nil
}

// store persists a new document, generating its number when none was given.
func (s *documentService) store(ctx context.Context, doc *domain.DocumentData) error {
	if doc.DocumentNumber != "" {
		return s.repo.Create(ctx, doc)
	}
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		seq, err := s.repo.NextSequence(ctx, doc.DocumentType)
		if err != nil {
			return fmt.Errorf("generating document number: %w", err)
		}
		doc.DocumentNumber = fmt.Sprintf("%s-%04d", doc.DocumentType.NumberPrefix(), seq)
		err = s.repo.Create(ctx, doc)
		if !errors.Is(err, domain.ErrDuplicateDocumentNumber) {
			return err
		}
		s.log.Warn().Str("document_number", doc.DocumentNumber).Msg("generated number already taken, retrying")
	}
	return domain.ErrDuplicateDocumentNumber
}

func (s *documentService) GetByID(ctx context.Context, id string) (*domain.DocumentData, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, input *ListDocumentsInput) ([]domain.DocumentData, error) {
	var docType domain.DocumentType
	if input.DocumentType != "" {
		t, err := parseType(input.DocumentType)
		if err != nil {
			return nil, err
		}
		docType = t
	}
	docs, err := s.repo.List(ctx, docType)
	if err != nil {
		return nil, err
	}
	return filter.Documents(docs, input.Query, input.Status), nil
}

func (s *documentService) Update(ctx context.Context, id string, record json.RawMessage) (*normalize.Result, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec, err := normalize.DecodeRecord(existing.DocumentType, record)
	if err != nil {
		return nil, err
	}

	res := s.normalizer.Normalize(rec)
	doc := &res.Document
	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	if doc.DocumentNumber == "" {
		doc.DocumentNumber = existing.DocumentNumber
	}
	if doc.Date == "" {
		doc.Date = existing.Date
	}
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	s.log.Info().Str("document_id", id).Msg("document replaced")
	return &res, nil
}

func (s *documentService) UpdateStatus(ctx context.Context, id, status string) (*domain.DocumentData, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.DocumentType.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	doc.Status = status
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Convert derives a new document of targetType from the source document. The
// copy is renormalized so its taxes and words follow the target's rules, and
// the source is marked Converted.
func (s *documentService) Convert(ctx context.Context, id, targetType string) (*domain.DocumentData, error) {
	target, err := parseType(targetType)
	if err != nil {
		return nil, err
	}
	src, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !src.DocumentType.CanConvertTo(target) {
		return nil, domain.ErrInvalidConversion
	}

	draft := *src
	draft.ID = ""
	draft.DocumentType = target
	draft.DocumentNumber = ""
	draft.ReferenceNumber = src.DocumentNumber
	draft.Status = target.DefaultStatus()
	draft.Date = s.now().Format(dateLayout)

	converted := s.normalizer.NormalizeDocument(draft).Document
	converted.ID = uuid.New().String()
	if err := s.store(ctx, &converted); err != nil {
		return nil, err
	}

	src.Status = domain.StatusConverted
	if err := s.repo.Update(ctx, src); err != nil {
		return nil, fmt.Errorf("marking source converted: %w", err)
	}
	s.log.Info().
		Str("source_id", src.ID).
		Str("document_id", converted.ID).
		Str("target_type", string(target)).
		Msg("document converted")
	return &converted, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *documentService) Validate(ctx context.Context, id string) (*validator.Report, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.validator.Validate(ctx, doc), nil
}
