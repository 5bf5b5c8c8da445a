package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"docdesk/internal/domain"
	"docdesk/internal/export"
	"docdesk/internal/port"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ArchiveResult describes an uploaded document workbook.
type ArchiveResult struct {
	Key       string `json:"key"`
	Location  string `json:"location"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expiresIn"`
}

// ExportService renders documents and inventory for download and archives
// single-document workbooks to object storage.
type ExportService interface {
	// ExportDocuments writes the filtered document list to w and returns the
	// download filename.
	ExportDocuments(ctx context.Context, input *ListDocumentsInput, format string, w io.Writer) (string, error)
	// DocumentWorkbook writes one document as a workbook and returns its filename.
	DocumentWorkbook(ctx context.Context, id string, w io.Writer) (string, error)
	ExportInventory(ctx context.Context, w io.Writer) (string, error)
	Archive(ctx context.Context, id string) (*ArchiveResult, error)
}

type exportService struct {
	documents     DocumentService
	inventory     InventoryService
	storage       port.ObjectStorage
	presignExpiry int64
	log           zerolog.Logger
	now           func() time.Time
}

// NewExportService creates a new ExportService. storage may be nil, in which
// case Archive returns domain.ErrStorageDisabled.
func NewExportService(
	documents DocumentService,
	inventory InventoryService,
	storage port.ObjectStorage,
	presignExpiry int64,
	log zerolog.Logger,
) ExportService {
	return &exportService{
		documents:     documents,
		inventory:     inventory,
		storage:       storage,
		presignExpiry: presignExpiry,
		log:           log.With().Str("component", "export_service").Logger(),
		now:           time.Now,
	}
}

func listBaseName(input *ListDocumentsInput) string {
	if t, ok := domain.ParseDocumentType(input.DocumentType); ok {
		return string(t)
	}
	return "documents"
}

func (s *exportService) ExportDocuments(ctx context.Context, input *ListDocumentsInput, format string, w io.Writer) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return "", domain.ErrInvalidExportFormat
	}

	docs, err := s.documents.List(ctx, input)
	if err != nil {
		return "", err
	}

	if format == FormatXLSX {
		err = export.WriteDocumentsXLSX(w, docs)
	} else {
		err = export.WriteCSV(w, docs)
	}
	if err != nil {
		return "", fmt.Errorf("exporting documents: %w", err)
	}
	return export.BuildFilename(listBaseName(input), format, s.now()), nil
}

func documentFilename(doc *domain.DocumentData) string {
	return export.SanitizeFilename(doc.DocumentNumber) + ".xlsx"
}

func (s *exportService) DocumentWorkbook(ctx context.Context, id string, w io.Writer) (string, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := export.WriteDocumentXLSX(w, doc); err != nil {
		return "", fmt.Errorf("rendering workbook: %w", err)
	}
	return documentFilename(doc), nil
}

func (s *exportService) ExportInventory(ctx context.Context, w io.Writer) (string, error) {
	items, err := s.inventory.List(ctx, "", "")
	if err != nil {
		return "", err
	}
	if err := export.WriteInventoryXLSX(w, items); err != nil {
		return "", fmt.Errorf("exporting inventory: %w", err)
	}
	return export.BuildFilename("inventory", FormatXLSX, s.now()), nil
}

func (s *exportService) Archive(ctx context.Context, id string) (*ArchiveResult, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageDisabled
	}
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteDocumentXLSX(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}

	key := fmt.Sprintf("archives/%s/%s/%s",
		strings.ToLower(export.SanitizeFilename(string(doc.DocumentType))),
		doc.ID, documentFilename(doc))
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: export.XLSXContentType,
		Size:        int64(buf.Len()),
		Metadata: map[string]string{
			"document-id":     doc.ID,
			"document-type":   string(doc.DocumentType),
			"document-number": doc.DocumentNumber,
		},
	})
	if err != nil {
		s.log.Error().Err(err).Str("document_id", id).Msg("archive upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, key, s.presignExpiry)
	if err != nil {
		// An archive nobody can download is removed again.
		if derr := s.storage.Delete(ctx, key); derr != nil {
			s.log.Warn().Err(derr).Str("key", key).Msg("removing unsigned archive failed")
		}
		return nil, fmt.Errorf("presigning archive: %w", err)
	}
	s.log.Info().Str("document_id", id).Str("key", key).Msg("document archived")
	return &ArchiveResult{Key: key, Location: out.Location, URL: url, ExpiresIn: s.presignExpiry}, nil
}
