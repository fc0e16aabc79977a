package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO-4217 currency in the catalog.
// Entries are immutable once created; creation is an upsert by code.
type Currency struct {
	CurrencyID  string `json:"currencyID"`  // Primary Key (UUID)
	Code        string `json:"code"`        // ISO-4217 alpha code, unique (e.g. "USD")
	NumericCode string `json:"numericCode"` // ISO-4217 numeric code (e.g. "840")
	MinorUnit   int32  `json:"minorUnit"`   // Decimal places of the smallest unit
	AuditFields
}

// Money pairs a decimal amount with its currency code.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// CurrencyPair is a base/quote pair for exchange-rate lookups, e.g. "USD/EUR".
type CurrencyPair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

func (p CurrencyPair) String() string {
	return p.Base + "/" + p.Quote
}

// ExchangeRate stores the historical conversion rate for a currency pair on a
// specific date. A recorded (pair, date) never changes value.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary Key (UUID)
	BaseCurrencyID   string          `json:"baseCurrencyID"` // FK -> currencies.currency_id
	TargetCurrencyID string          `json:"targetCurrencyID"`
	Rate             decimal.Decimal `json:"rate"`
	RateDate         time.Time       `json:"rateDate"` // Date the rate was effective
	Source           string          `json:"source"`   // "identity", "cache", "database" or the provider name
	AuditFields
}
