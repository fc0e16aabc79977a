package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// PartyRequest identifies the business counterparty of a document or entry.
type PartyRequest struct {
	Type string `json:"type" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

func (p *PartyRequest) toDomain() *domain.Party {
	if p == nil {
		return nil
	}
	return &domain.Party{Type: p.Type, ID: p.ID}
}

// DocumentRequest carries the identity and metadata of a business document.
type DocumentRequest struct {
	Type      string        `json:"type" binding:"required"`
	Reference string        `json:"reference" binding:"required"`
	Number    string        `json:"number"`
	Party     *PartyRequest `json:"party,omitempty"`
	Date      time.Time     `json:"date" binding:"required"`
	DueDate   *time.Time    `json:"dueDate,omitempty"`
}

// ToDocumentInput converts the request into the service-layer input value.
func (r DocumentRequest) ToDocumentInput() domain.DocumentInput {
	return domain.DocumentInput{
		Type:      r.Type,
		Reference: r.Reference,
		Number:    r.Number,
		Party:     r.Party.toDomain(),
		Date:      r.Date,
		DueDate:   r.DueDate,
	}
}

// EntryRequest is one debit or credit line of a transaction.
type EntryRequest struct {
	Account      string          `json:"account" binding:"required"`
	Side         string          `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount       decimal.Decimal `json:"amount" binding:"required,dgt0"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,uppercase,len=3"`
	Party        *PartyRequest   `json:"party,omitempty"`
	Date         time.Time       `json:"date"`
}

func (r EntryRequest) toDomain() domain.LedgerEntry {
	amount := domain.NewDebit(r.Amount)
	if r.Side == string(domain.Credit) {
		amount = domain.NewCredit(r.Amount)
	}
	return domain.LedgerEntry{
		AccountName:  r.Account,
		Amount:       amount,
		CurrencyCode: r.CurrencyCode,
		Party:        r.Party.toDomain(),
		Date:         r.Date,
	}
}

// TransactionRequest is one balanced set of entries sharing a date and a
// default currency.
type TransactionRequest struct {
	Date         time.Time      `json:"date" binding:"required"`
	CurrencyCode string         `json:"currencyCode" binding:"required,uppercase,len=3"`
	Entries      []EntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// ToTransaction converts the request into the service-layer transaction value.
func (r TransactionRequest) ToTransaction() domain.Transaction {
	entries := make([]domain.LedgerEntry, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = e.toDomain()
	}
	return domain.Transaction{
		Date:         r.Date,
		CurrencyCode: r.CurrencyCode,
		Entries:      entries,
	}
}

// PostTransactionRequest posts one transaction against a registered document.
type PostTransactionRequest struct {
	Document    DocumentRequest    `json:"document" binding:"required"`
	Transaction TransactionRequest `json:"transaction" binding:"required"`
}

// SyncDocumentRequest reconciles a document's ledger footprint with the
// complete desired transaction list.
type SyncDocumentRequest struct {
	Document     DocumentRequest      `json:"document" binding:"required"`
	Transactions []TransactionRequest `json:"transactions" binding:"required,dive"`
}

// VoidDocumentRequest identifies the document to reverse.
type VoidDocumentRequest struct {
	Type      string `json:"type" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

// DocumentResponse carries the id of the document an operation acted on.
type DocumentResponse struct {
	DocumentID string `json:"documentID"`
}

// CreateDocumentTypeRequest registers a document-type name.
type CreateDocumentTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// DocumentTypeResponse carries a registered document type.
type DocumentTypeResponse struct {
	DocumentTypeID string `json:"documentTypeID"`
	Name           string `json:"name"`
}
