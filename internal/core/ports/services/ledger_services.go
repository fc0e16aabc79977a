package services

import (
	"context"
	"time"

	"github.com/chriscouch/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RoundingPolicy designates, per currency, the account that absorbs small
// balancing residuals during SyncDocument. When no policy is configured an
// unbalanced transaction is rejected instead.
type RoundingPolicy interface {
	// RoundingAccount returns the rounding-difference account name for the
	// currency, or ok=false when none is designated.
	RoundingAccount(currencyCode string) (accountName string, ok bool)
}

// LedgerSvcFacade is the core orchestrator over one book of accounts. All
// operations raise synchronously on the first violated invariant and never
// retry internally; the caller owns the surrounding transaction boundary.
type LedgerSvcFacade interface {
	// CreateTransaction validates the per-currency balance invariant, resolves
	// account names and persists one entry row per line, all linked to the
	// document, atomically.
	CreateTransaction(ctx context.Context, documentID string, txn domain.Transaction, userID string) error

	// VoidDocument reverses the document's full posted footprint with a mirror
	// transaction dated now, posted against a new document of the dedicated
	// void type. A document that was never posted is a no-op; the returned id
	// is empty in that case. Voiding an already-voided document returns the
	// existing void document without posting again.
	VoidDocument(ctx context.Context, typeName, reference string, userID string) (string, error)

	// SyncDocument reconciles the document's ledger footprint with the
	// complete desired transaction list: upsert the document, validate each
	// transaction (absorbing residuals into the rounding account when a policy
	// designates one), then atomically replace the document's entire recorded
	// entry set. Idempotent per document.
	SyncDocument(ctx context.Context, input domain.DocumentInput, txns []domain.Transaction, userID string) (string, error)

	// ConvertCurrency converts an amount from the ledger's base currency into
	// the target currency at the historical rate for the date, rounded to the
	// target currency's minor unit.
	ConvertCurrency(ctx context.Context, provider RateProvider, targetCurrency string, date time.Time, amountInBase decimal.Decimal) (decimal.Decimal, error)
}
