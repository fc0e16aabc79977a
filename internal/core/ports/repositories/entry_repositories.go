package repositories

import (
	"context"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// EntryReader defines read operations for persisted ledger entries
type EntryReader interface {
	// FindEntriesByDocumentID retrieves every entry ever posted for a document.
	FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.LedgerEntry, error)
}

// EntryWriter defines write operations for persisted ledger entries
type EntryWriter interface {
	// SaveEntries persists the entries inside a single database transaction;
	// all rows commit together or none do.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error

	// ReplaceDocumentEntries atomically overwrites the document's stored
	// metadata and replaces its entire entry set: delete everything tied to
	// the document id, then insert the new entries. No partial replace is
	// ever observable.
	ReplaceDocumentEntries(ctx context.Context, doc domain.Document, entries []domain.LedgerEntry) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
