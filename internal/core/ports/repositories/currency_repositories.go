package repositories

import (
	"context"
	"time"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// CurrencyReader defines read operations for currency catalog data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency by its ISO code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// FindCurrencyByID retrieves a currency by its id.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies ordered by code.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency catalog data
type CurrencyWriter interface {
	// UpsertCurrency inserts the currency or updates the existing row with the
	// same code, returning the persisted row. Safe under concurrent creation.
	UpsertCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error)
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// ExchangeRateReader defines read operations for persisted exchange rates
type ExchangeRateReader interface {
	// FindRate retrieves the persisted rate for (base, target, date).
	FindRate(ctx context.Context, baseCurrencyID, targetCurrencyID string, date time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for persisted exchange rates
type ExchangeRateWriter interface {
	// InsertRateIfAbsent persists the rate unless a row for the same
	// (base, target, date) already exists, and returns the surviving row.
	// Recorded rates are immutable.
	InsertRateIfAbsent(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
