package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

// documentRow is the storage shape of a canonical document. The searchable
// header columns are duplicated out of the jsonb body.
type documentRow struct {
	ID             string    `db:"id"`
	DocumentType   string    `db:"document_type"`
	DocumentNumber string    `db:"document_number"`
	Status         string    `db:"status"`
	Data           []byte    `db:"data"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (row *documentRow) document() (*domain.DocumentData, error) {
	var doc domain.DocumentData
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return nil, err
	}
	doc.ID = row.ID
	doc.CreatedAt = row.CreatedAt
	doc.UpdatedAt = row.UpdatedAt
	return &doc, nil
}

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.DocumentData) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, document_type, document_number, status, data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		doc.ID, doc.DocumentType, doc.DocumentNumber, doc.Status, string(data), doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "documents_type_number_key") {
			return domain.ErrDuplicateDocumentNumber
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*domain.DocumentData, error) {
	if !validID(id) {
		return nil, domain.ErrDocumentNotFound
	}
	var row documentRow
	err := r.db.GetContext(ctx, &row,
		"SELECT id, document_type, document_number, status, data, created_at, updated_at FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	doc, err := row.document()
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) List(ctx context.Context, docType domain.DocumentType) ([]domain.DocumentData, error) {
	var rows []documentRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, document_type, document_number, status, data, created_at, updated_at
		 FROM documents WHERE ($1 = '' OR document_type = $1)
		 ORDER BY seq`, string(docType))
	if err != nil {
		return nil, fmt.Errorf("documentRepo.List: %w", err)
	}

	docs := make([]domain.DocumentData, 0, len(rows))
	for i := range rows {
		doc, err := rows[i].document()
		if err != nil {
			return nil, fmt.Errorf("documentRepo.List: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.DocumentData) error {
	if !validID(doc.ID) {
		return domain.ErrDocumentNotFound
	}
	doc.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}

	err = r.db.GetContext(ctx, &doc.CreatedAt,
		`UPDATE documents SET document_type = $2, document_number = $3, status = $4, data = $5, updated_at = $6
		 WHERE id = $1 RETURNING created_at`,
		doc.ID, doc.DocumentType, doc.DocumentNumber, doc.Status, string(data), doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrDocumentNotFound
		}
		if isUniqueViolation(err, "documents_type_number_key") {
			return domain.ErrDuplicateDocumentNumber
		}
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrDocumentNotFound
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if err := checkAffected(result.RowsAffected()); err != nil {
		if errors.Is(err, errNoRowsAffected) {
			return domain.ErrDocumentNotFound
		}
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	return nil
}

func (r *documentRepo) NextSequence(ctx context.Context, docType domain.DocumentType) (int, error) {
	var next int
	err := r.db.GetContext(ctx, &next,
		`INSERT INTO document_counters (document_type, last_value) VALUES ($1, 1)
		 ON CONFLICT (document_type) DO UPDATE SET last_value = document_counters.last_value + 1
		 RETURNING last_value`, string(docType))
	if err != nil {
		return 0, fmt.Errorf("documentRepo.NextSequence: %w", err)
	}
	return next, nil
}
