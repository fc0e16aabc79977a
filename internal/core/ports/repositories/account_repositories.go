package repositories

import (
	"context"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByName retrieves an account by its name within a ledger.
	FindAccountByName(ctx context.Context, ledgerID, name string) (*domain.Account, error)

	// ListAccounts retrieves every account of a ledger ordered by name.
	ListAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// FindOrCreateAccount inserts the account or returns the existing row with
	// the same (ledger, name). Two concurrent callers racing on the same name
	// converge on one row.
	FindOrCreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// LedgerRepositoryFacade defines operations for the ledgers catalog
type LedgerRepositoryFacade interface {
	// FindLedgerByName retrieves a ledger by its unique name.
	FindLedgerByName(ctx context.Context, name string) (*domain.Ledger, error)

	// FindOrCreateLedger inserts the ledger or returns the existing row with
	// the same name.
	FindOrCreateLedger(ctx context.Context, ledger domain.Ledger) (*domain.Ledger, error)
}
