package services

import (
	"context"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// DocumentTypeSvc is the fixed catalog of document-type names.
type DocumentTypeSvc interface {
	// GetDocumentTypeID resolves a type name to its id. The type must have
	// been created first; looking it up before creation is an error.
	GetDocumentTypeID(ctx context.Context, name string) (string, error)

	// CreateDocumentType idempotently registers a type name and returns its id.
	CreateDocumentType(ctx context.Context, name, creatorUserID string) (string, error)
}

// DocumentReaderSvc defines read operations over the document registry
type DocumentReaderSvc interface {
	// GetDocumentID resolves (type, reference) to the stored document, or
	// apperrors.ErrNotFound when the document was never registered. Memoized.
	GetDocumentID(ctx context.Context, typeName, reference string) (string, error)

	// GetDocumentByID retrieves a stored document.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
}

// DocumentWriterSvc defines write operations over the document registry
type DocumentWriterSvc interface {
	// GetOrCreateDocument returns the existing id for the input's identity, or
	// registers the document. An existing match is returned untouched; stored
	// metadata is only ever changed through UpdateDocument.
	GetOrCreateDocument(ctx context.Context, input domain.DocumentInput, creatorUserID string) (string, error)

	// CreateDocument unconditionally registers a new document and memoizes it.
	CreateDocument(ctx context.Context, input domain.DocumentInput, creatorUserID string) (string, error)

	// UpdateDocument overwrites the stored metadata of an existing document.
	UpdateDocument(ctx context.Context, documentID string, input domain.DocumentInput, updaterUserID string) error
}

// DocumentSvcFacade combines the document-registry service interfaces
type DocumentSvcFacade interface {
	DocumentTypeSvc
	DocumentReaderSvc
	DocumentWriterSvc
}
