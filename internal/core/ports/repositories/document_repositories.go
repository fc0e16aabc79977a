package repositories

import (
	"context"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// DocumentTypeRepositoryFacade defines operations for the document-type catalog
type DocumentTypeRepositoryFacade interface {
	// FindDocumentTypeByName retrieves a document type by its unique name.
	FindDocumentTypeByName(ctx context.Context, name string) (*domain.DocumentType, error)

	// UpsertDocumentType inserts the type or returns the existing row with the
	// same name.
	UpsertDocumentType(ctx context.Context, docType domain.DocumentType) (*domain.DocumentType, error)
}

// DocumentReader defines read operations for document registry data
type DocumentReader interface {
	// FindDocument retrieves a document by its identity tuple.
	FindDocument(ctx context.Context, ledgerID, documentTypeID, reference string) (*domain.Document, error)

	// FindDocumentByID retrieves a document by id.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
}

// DocumentWriter defines write operations for document registry data
type DocumentWriter interface {
	// InsertDocument persists a new document row.
	InsertDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocument overwrites the stored metadata (reference, number, party,
	// dates) of an existing document.
	UpdateDocument(ctx context.Context, doc domain.Document) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
