package domain

import "time"

// VoidDocumentType is the dedicated document type used to post reversals.
// A void document's reference is the id of the document it reverses, so both
// postings stay on the books as an audit trail.
const VoidDocumentType = "void"

// DocumentType is a catalog entry naming a kind of business document
// (invoice, payment, credit_note, ...). Names are unique globally and must be
// created before first use.
type DocumentType struct {
	DocumentTypeID string `json:"documentTypeID"` // Primary Key (UUID)
	Name           string `json:"name"`           // Unique
	AuditFields
}

// Document represents the external business event behind ledger activity.
// It is uniquely identified by (ledger, type, reference), created once and
// never deleted, only voided.
type Document struct {
	DocumentID     string     `json:"documentID"` // Primary Key (UUID)
	LedgerID       string     `json:"ledgerID"`   // FK -> ledgers.ledger_id
	DocumentTypeID string     `json:"documentTypeID"`
	Reference      string     `json:"reference"` // Unique per (ledger, type)
	Number         string     `json:"number"`    // Display number, e.g. "INV-0042"
	Party          *Party     `json:"party,omitempty"`
	Date           time.Time  `json:"date"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	AuditFields
}

// DocumentInput carries the caller-supplied identity and metadata of a
// document before it has an id. Type is the document-type name.
type DocumentInput struct {
	Type      string     `json:"type"`
	Reference string     `json:"reference"`
	Number    string     `json:"number"`
	Party     *Party     `json:"party,omitempty"`
	Date      time.Time  `json:"date"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}
