package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
)

// documentService is the document-type catalog plus the idempotent document
// registry for one ledger. Memo caches are scoped to this instance.
type documentService struct {
	ledgerID string
	typeRepo portsrepo.DocumentTypeRepositoryFacade
	docRepo  portsrepo.DocumentRepositoryFacade

	typeIDs *gocache.Cache // type name -> document type id
	docIDs  *gocache.Cache // typeID + "\x00" + reference -> document id
}

// NewDocumentService creates a DocumentStore scoped to one ledger.
func NewDocumentService(ledgerID string, typeRepo portsrepo.DocumentTypeRepositoryFacade, docRepo portsrepo.DocumentRepositoryFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		ledgerID: ledgerID,
		typeRepo: typeRepo,
		docRepo:  docRepo,
		typeIDs:  gocache.New(gocache.NoExpiration, 0),
		docIDs:   gocache.New(gocache.NoExpiration, 0),
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// GetDocumentTypeID resolves a type name to its id. The type must have been
// created first; the load order is a real operational constraint, so an
// unknown type is an error rather than an implicit create.
func (s *documentService) GetDocumentTypeID(ctx context.Context, name string) (string, error) {
	if cached, found := s.typeIDs.Get(name); found {
		return cached.(string), nil
	}

	docType, err := s.typeRepo.FindDocumentTypeByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: document type %q was never created", apperrors.ErrNotFound, name)
		}
		return "", fmt.Errorf("failed to find document type %q: %w", name, err)
	}

	s.typeIDs.Set(name, docType.DocumentTypeID, gocache.NoExpiration)
	return docType.DocumentTypeID, nil
}

// CreateDocumentType idempotently registers a type name and returns its id.
func (s *documentService) CreateDocumentType(ctx context.Context, name, creatorUserID string) (string, error) {
	if cached, found := s.typeIDs.Get(name); found {
		return cached.(string), nil
	}

	now := time.Now().UTC()
	docType := domain.DocumentType{
		DocumentTypeID: uuid.NewString(),
		Name:           name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.typeRepo.UpsertDocumentType(ctx, docType)
	if err != nil {
		return "", fmt.Errorf("failed to create document type %q: %w", name, err)
	}

	s.typeIDs.Set(name, saved.DocumentTypeID, gocache.NoExpiration)
	return saved.DocumentTypeID, nil
}

// GetDocumentID resolves (type, reference) to the stored document id, or
// apperrors.ErrNotFound when the document was never registered. Memoized.
func (s *documentService) GetDocumentID(ctx context.Context, typeName, reference string) (string, error) {
	typeID, err := s.GetDocumentTypeID(ctx, typeName)
	if err != nil {
		return "", err
	}

	key := docMemoKey(typeID, reference)
	if cached, found := s.docIDs.Get(key); found {
		return cached.(string), nil
	}

	doc, err := s.docRepo.FindDocument(ctx, s.ledgerID, typeID, reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: document %s/%s", apperrors.ErrNotFound, typeName, reference)
		}
		return "", fmt.Errorf("failed to find document %s/%s: %w", typeName, reference, err)
	}

	s.docIDs.Set(key, doc.DocumentID, gocache.NoExpiration)
	return doc.DocumentID, nil
}

// GetDocumentByID retrieves a stored document.
func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}

// GetOrCreateDocument returns the existing id for the input's identity, or
// registers the document. An existing match is returned untouched: stored
// metadata is only ever changed through an explicit UpdateDocument.
func (s *documentService) GetOrCreateDocument(ctx context.Context, input domain.DocumentInput, creatorUserID string) (string, error) {
	documentID, err := s.GetDocumentID(ctx, input.Type, input.Reference)
	if err == nil {
		return documentID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", err
	}

	return s.CreateDocument(ctx, input, creatorUserID)
}

// CreateDocument unconditionally registers a new document and memoizes it.
func (s *documentService) CreateDocument(ctx context.Context, input domain.DocumentInput, creatorUserID string) (string, error) {
	typeID, err := s.GetDocumentTypeID(ctx, input.Type)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID:     uuid.NewString(),
		LedgerID:       s.ledgerID,
		DocumentTypeID: typeID,
		Reference:      input.Reference,
		Number:         input.Number,
		Party:          input.Party,
		Date:           input.Date,
		DueDate:        input.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.docRepo.InsertDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to create document %s/%s: %w", input.Type, input.Reference, err)
	}

	s.docIDs.Set(docMemoKey(typeID, input.Reference), doc.DocumentID, gocache.NoExpiration)
	return doc.DocumentID, nil
}

// UpdateDocument overwrites the stored metadata (type, reference, number,
// party, dates) of an existing document. Independent of any ledger entries.
// When the identity changes, the memo entry for the old (type, reference)
// is dropped so lookups answer only for what the store actually holds.
func (s *documentService) UpdateDocument(ctx context.Context, documentID string, input domain.DocumentInput, updaterUserID string) error {
	typeID, err := s.GetDocumentTypeID(ctx, input.Type)
	if err != nil {
		return err
	}

	existing, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to find document %s for update: %w", documentID, err)
	}

	doc := *existing
	doc.DocumentTypeID = typeID
	doc.Reference = input.Reference
	doc.Number = input.Number
	doc.Party = input.Party
	doc.Date = input.Date
	doc.DueDate = input.DueDate
	doc.LastUpdatedAt = time.Now().UTC()
	doc.LastUpdatedBy = updaterUserID

	if err := s.docRepo.UpdateDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to update document %s: %w", documentID, err)
	}

	s.docIDs.Delete(docMemoKey(existing.DocumentTypeID, existing.Reference))
	s.docIDs.Set(docMemoKey(typeID, input.Reference), doc.DocumentID, gocache.NoExpiration)
	return nil
}

func docMemoKey(typeID, reference string) string {
	return typeID + "\x00" + reference
}
