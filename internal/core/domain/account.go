package domain

// AccountType classifies an account. It is purely descriptive: balance signs
// are never flipped per type (see ReportingService).
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a named bucket of monetary value within one ledger.
// Accounts are append-only: created idempotently, never deleted.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary Key (UUID)
	LedgerID    string      `json:"ledgerID"`  // FK -> ledgers.ledger_id
	Name        string      `json:"name"`      // Unique per ledger
	AccountType AccountType `json:"accountType"`
	CurrencyID  string      `json:"currencyID"` // FK -> currencies.currency_id
	AuditFields
}
