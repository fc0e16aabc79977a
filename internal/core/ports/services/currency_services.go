package services

import (
	"context"
	"time"

	"github.com/chriscouch/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations over the currency catalog
type CurrencyReaderSvc interface {
	// GetCurrencyID resolves an ISO code to the currency id. Memoized.
	GetCurrencyID(ctx context.Context, code string) (string, error)

	// GetISO resolves a currency id back to its ISO code. Memoized.
	GetISO(ctx context.Context, currencyID string) (string, error)

	// GetCurrencyByCode retrieves the full catalog entry for a code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations over the currency catalog
type CurrencyWriterSvc interface {
	// CreateCurrency idempotently upserts a currency by code and returns the
	// persisted entry.
	CreateCurrency(ctx context.Context, code, numericCode string, minorUnit int32, creatorUserID string) (*domain.Currency, error)
}

// ExchangeRateSvc resolves historical exchange rates through the layered
// cache: identity, in-process memo, persisted row, external provider.
type ExchangeRateSvc interface {
	// GetExchangeRate resolves the rate for the pair on the date. A hit at any
	// tier short-circuits the later tiers; a provider quote is persisted and
	// memoized before being returned.
	GetExchangeRate(ctx context.Context, provider RateProvider, pair domain.CurrencyPair, date time.Time) (decimal.Decimal, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
	ExchangeRateSvc
}
