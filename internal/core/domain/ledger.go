package domain

// Ledger is one logical book of accounts with a base currency. Each ledger
// service instance is scoped to exactly one of these.
type Ledger struct {
	LedgerID         string `json:"ledgerID"` // Primary Key (UUID)
	Name             string `json:"name"`     // Unique
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	AuditFields
}
