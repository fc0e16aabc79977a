package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	"github.com/chriscouch/ledgercore/internal/models"
)

type PgxDocumentTypeRepository struct {
	BaseRepository
}

// newPgxDocumentTypeRepository creates a new repository for the
// document-type catalog.
func newPgxDocumentTypeRepository(pool *pgxpool.Pool) portsrepo.DocumentTypeRepositoryFacade {
	return &PgxDocumentTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentTypeRepositoryFacade = (*PgxDocumentTypeRepository)(nil)

const documentTypeColumns = `document_type_id, name, created_at, created_by, last_updated_at, last_updated_by`

func scanDocumentType(row pgx.Row) (*domain.DocumentType, error) {
	var dt domain.DocumentType
	err := row.Scan(
		&dt.DocumentTypeID,
		&dt.Name,
		&dt.CreatedAt,
		&dt.CreatedBy,
		&dt.LastUpdatedAt,
		&dt.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

// FindDocumentTypeByName retrieves a document type by its unique name.
func (r *PgxDocumentTypeRepository) FindDocumentTypeByName(ctx context.Context, name string) (*domain.DocumentType, error) {
	query := `SELECT ` + documentTypeColumns + ` FROM document_types WHERE name = $1;`
	dt, err := scanDocumentType(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document type %q: %w", name, err)
	}
	return dt, nil
}

// UpsertDocumentType inserts the type or returns the existing row with the
// same name.
func (r *PgxDocumentTypeRepository) UpsertDocumentType(ctx context.Context, docType domain.DocumentType) (*domain.DocumentType, error) {
	query := `
		INSERT INTO document_types (` + documentTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING ` + documentTypeColumns + `;
	`
	dt, err := scanDocumentType(r.Pool.QueryRow(ctx, query,
		docType.DocumentTypeID,
		docType.Name,
		docType.CreatedAt,
		docType.CreatedBy,
		docType.LastUpdatedAt,
		docType.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert document type %q: %w", docType.Name, err)
	}
	return dt, nil
}

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for the document registry.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, ledger_id, document_type_id, reference, number, party_type, party_id, date, due_date, created_at, created_by, last_updated_at, last_updated_by`

func toModelDocument(d domain.Document) models.Document {
	m := models.Document{
		DocumentID:     d.DocumentID,
		LedgerID:       d.LedgerID,
		DocumentTypeID: d.DocumentTypeID,
		Reference:      d.Reference,
		Number:         d.Number,
		Date:           d.Date,
		DueDate:        d.DueDate,
	}
	m.CreatedAt = d.CreatedAt
	m.CreatedBy = d.CreatedBy
	m.LastUpdatedAt = d.LastUpdatedAt
	m.LastUpdatedBy = d.LastUpdatedBy
	if d.Party != nil {
		partyType := d.Party.Type
		partyID := d.Party.ID
		m.PartyType = &partyType
		m.PartyID = &partyID
	}
	return m
}

func toDomainDocument(m models.Document) domain.Document {
	d := domain.Document{
		DocumentID:     m.DocumentID,
		LedgerID:       m.LedgerID,
		DocumentTypeID: m.DocumentTypeID,
		Reference:      m.Reference,
		Number:         m.Number,
		Date:           m.Date,
		DueDate:        m.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.PartyType != nil && m.PartyID != nil {
		d.Party = &domain.Party{Type: *m.PartyType, ID: *m.PartyID}
	}
	return d
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.LedgerID,
		&m.DocumentTypeID,
		&m.Reference,
		&m.Number,
		&m.PartyType,
		&m.PartyID,
		&m.Date,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	doc := toDomainDocument(m)
	return &doc, nil
}

// FindDocument retrieves a document by its identity tuple.
func (r *PgxDocumentRepository) FindDocument(ctx context.Context, ledgerID, documentTypeID, reference string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE ledger_id = $1 AND document_type_id = $2 AND reference = $3;
	`
	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, ledgerID, documentTypeID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %q: %w", reference, err)
	}
	return doc, nil
}

// FindDocumentByID retrieves a document by id.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}

// InsertDocument persists a new document row.
func (r *PgxDocumentRepository) InsertDocument(ctx context.Context, doc domain.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	m := toModelDocument(doc)
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.LedgerID,
		m.DocumentTypeID,
		m.Reference,
		m.Number,
		m.PartyType,
		m.PartyID,
		m.Date,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert document %q: %w", doc.Reference, err)
	}
	return nil
}

// UpdateDocument overwrites the stored metadata of an existing document,
// including its type and reference. Moving the document onto an identity
// another document already holds maps to ErrConflict.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	query := `
		UPDATE documents
		SET document_type_id = $2, reference = $3, number = $4, party_type = $5,
		    party_id = $6, date = $7, due_date = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE document_id = $1;
	`
	m := toModelDocument(doc)
	tag, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.DocumentTypeID,
		m.Reference,
		m.Number,
		m.PartyType,
		m.PartyID,
		m.Date,
		m.DueDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: another document already holds reference %q", apperrors.ErrConflict, doc.Reference)
		}
		return fmt.Errorf("failed to update document %s: %w", doc.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
