package services

import (
	"context"
	"time"

	"github.com/chriscouch/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateProvider is the external source of historical exchange-rate quotes.
// The business layer owns provisioning of the implementation. Calls block
// synchronously and provider errors are propagated unchanged; all caching
// happens in front of this interface, never behind it.
type RateProvider interface {
	// Name identifies the provider; recorded as the rate's source.
	Name() string

	// HistoricalRate quotes the pair for the given date.
	HistoricalRate(ctx context.Context, pair domain.CurrencyPair, date time.Time) (decimal.Decimal, error)
}
