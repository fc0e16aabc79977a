package services

import (
	"context"
	"time"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// ReportingService derives account balances from persisted entries.
// Balances follow the raw signed convention (debits minus credits) with no
// per-account-type flip.
type ReportingService interface {
	// GetAccountBalance aggregates every entry for the account dated on or
	// before asOf (all entries when asOf is nil), in the account's currency.
	GetAccountBalance(ctx context.Context, accountName string, asOf *time.Time) (*domain.Money, error)

	// GetAccountBalances computes the balance of every account in the chart,
	// with no date filter, sorted by account name ascending.
	GetAccountBalances(ctx context.Context) ([]domain.AccountBalance, error)
}
