package services

import (
	"context"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// ChartReaderSvc defines read operations over one ledger's chart of accounts
type ChartReaderSvc interface {
	// GetAccountID resolves an account name to its id. Memoized.
	GetAccountID(ctx context.Context, name string) (string, error)

	// GetAccountCurrencyID resolves an account name to its currency id. Memoized.
	GetAccountCurrencyID(ctx context.Context, name string) (string, error)

	// GetAllAccounts bulk-loads every account of the ledger keyed by name and
	// warms the cache.
	GetAllAccounts(ctx context.Context) (map[string]domain.Account, error)
}

// ChartWriterSvc defines write operations over one ledger's chart of accounts
type ChartWriterSvc interface {
	// FindOrCreateAccount returns the existing account id for the name, or
	// creates the account (resolving the currency code) and memoizes it.
	FindOrCreateAccount(ctx context.Context, name string, accountType domain.AccountType, currencyCode, creatorUserID string) (string, error)
}

// ChartSvcFacade combines the chart-of-accounts service interfaces
type ChartSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
}
