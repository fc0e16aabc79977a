package models

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a row in the accounts table. UNIQUE(ledger_id, name).
type Account struct {
	AccountID   string      `db:"account_id"`
	LedgerID    string      `db:"ledger_id"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	CurrencyID  string      `db:"currency_id"`
	AuditFields
}

// Ledger is a row in the ledgers table.
type Ledger struct {
	LedgerID       string `db:"ledger_id"`
	Name           string `db:"name"` // UNIQUE
	BaseCurrencyID string `db:"base_currency_id"`
	AuditFields
}
