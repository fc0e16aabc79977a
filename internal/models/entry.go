package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row in the ledger_entries table. Exactly one of
// DebitAmount / CreditAmount is non-nil; the other column stays NULL.
type LedgerEntry struct {
	EntryID            string           `db:"entry_id"`
	DocumentID         string           `db:"document_id"`
	AccountID          string           `db:"account_id"`
	Date               time.Time        `db:"date"`
	DebitAmount        *decimal.Decimal `db:"debit_amount"`
	CreditAmount       *decimal.Decimal `db:"credit_amount"`
	CurrencyID         string           `db:"currency_id"`
	OriginalAmount     *decimal.Decimal `db:"original_amount"`
	OriginalCurrencyID *string          `db:"original_currency_id"`
	PartyType          *string          `db:"party_type"`
	PartyID            *string          `db:"party_id"`
	AuditFields
}
