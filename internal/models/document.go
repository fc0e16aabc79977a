package models

import "time"

// DocumentType is a row in the document_types table.
type DocumentType struct {
	DocumentTypeID string `db:"document_type_id"`
	Name           string `db:"name"` // UNIQUE
	AuditFields
}

// Document is a row in the documents table.
// UNIQUE(ledger_id, document_type_id, reference).
type Document struct {
	DocumentID     string     `db:"document_id"`
	LedgerID       string     `db:"ledger_id"`
	DocumentTypeID string     `db:"document_type_id"`
	Reference      string     `db:"reference"`
	Number         string     `db:"number"`
	PartyType      *string    `db:"party_type"`
	PartyID        *string    `db:"party_id"`
	Date           time.Time  `db:"date"`
	DueDate        *time.Time `db:"due_date"`
	AuditFields
}
