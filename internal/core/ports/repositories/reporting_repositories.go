package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only aggregation over persisted entries.
// Balances are always derived at query time; no running balance is stored.
type ReportingRepository interface {
	// GetAccountNet sums debits minus credits for the account, limited to
	// entries dated on or before asOf when it is non-nil.
	GetAccountNet(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// GetLedgerNets computes debits minus credits for every account of the
	// ledger (zero for accounts with no entries), keyed by account id.
	GetLedgerNets(ctx context.Context, ledgerID string) (map[string]decimal.Decimal, error)
}
