package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether an entry debits or credits its account.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Amount is the tagged debit-or-credit value of a ledger entry. Value is
// always non-negative; the side carries the sign.
type Amount struct {
	Side  EntrySide       `json:"side"`
	Value decimal.Decimal `json:"value"`
	// Original carries the pre-conversion amount for FX-originated entries.
	Original *Money `json:"original,omitempty"`
}

// NewDebit builds a debit amount.
func NewDebit(value decimal.Decimal) Amount {
	return Amount{Side: Debit, Value: value}
}

// NewCredit builds a credit amount.
func NewCredit(value decimal.Decimal) Amount {
	return Amount{Side: Credit, Value: value}
}

// Signed returns the amount with the double-entry sign convention applied:
// debits positive, credits negative.
func (a Amount) Signed() decimal.Decimal {
	if a.Side == Credit {
		return a.Value.Neg()
	}
	return a.Value
}

// Reversed flips the side, keeping value and original amount intact.
func (a Amount) Reversed() Amount {
	r := a
	if a.Side == Debit {
		r.Side = Credit
	} else {
		r.Side = Debit
	}
	return r
}

// LedgerEntry is a single debit or credit against one account. Account is
// addressed by name at input time and resolved to an id when posted.
type LedgerEntry struct {
	EntryID      string    `json:"entryID"`              // Primary Key (UUID), set at posting
	DocumentID   string    `json:"documentID"`           // FK -> documents.document_id, set at posting
	AccountName  string    `json:"accountName"`          // Input: name within the ledger's chart
	AccountID    string    `json:"accountID"`            // Resolved FK -> accounts.account_id
	Amount       Amount    `json:"amount"`               // Tagged Debit/Credit value
	CurrencyCode string    `json:"currencyCode"`         // Empty means "use the transaction currency"
	CurrencyID   string    `json:"currencyID"`           // Resolved FK -> currencies.currency_id
	Party        *Party    `json:"party,omitempty"`      //
	Date         time.Time `json:"date"`                 // Defaults to the transaction date
	AuditFields
}

// Reversed builds the mirror entry: same account, currency and party with the
// amount side flipped. The reversal of a balanced entry set is balanced.
func (e LedgerEntry) Reversed() LedgerEntry {
	r := e
	r.EntryID = ""
	r.DocumentID = ""
	r.Amount = e.Amount.Reversed()
	return r
}

// Transaction is an ephemeral, balanced set of entries sharing a date and a
// default currency. It is an input value, never a stored row.
type Transaction struct {
	Date         time.Time     `json:"date"`
	CurrencyCode string        `json:"currencyCode"`
	Entries      []LedgerEntry `json:"entries"`
}

// EntryCurrency resolves the effective currency of an entry, falling back to
// the transaction currency when the entry does not carry its own.
func (t Transaction) EntryCurrency(e LedgerEntry) string {
	if e.CurrencyCode != "" {
		return e.CurrencyCode
	}
	return t.CurrencyCode
}

// CurrencyDiffs computes debits minus credits per currency. Every value must
// be zero for the transaction to be accepted.
func (t Transaction) CurrencyDiffs() map[string]decimal.Decimal {
	diffs := make(map[string]decimal.Decimal)
	for _, e := range t.Entries {
		code := t.EntryCurrency(e)
		diffs[code] = diffs[code].Add(e.Amount.Signed())
	}
	return diffs
}

// Balanced reports whether debits equal credits in every currency present.
func (t Transaction) Balanced() bool {
	for _, diff := range t.CurrencyDiffs() {
		if !diff.IsZero() {
			return false
		}
	}
	return true
}
