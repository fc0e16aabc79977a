package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a row in the currencies table.
type Currency struct {
	CurrencyID  string `db:"currency_id"`
	Code        string `db:"code"` // UNIQUE
	NumericCode string `db:"numeric_code"`
	MinorUnit   int32  `db:"minor_unit"`
	AuditFields
}

// ExchangeRate is a row in the exchange_rates table.
// UNIQUE(base_currency_id, target_currency_id, rate_date).
type ExchangeRate struct {
	ExchangeRateID   string          `db:"exchange_rate_id"`
	BaseCurrencyID   string          `db:"base_currency_id"`
	TargetCurrencyID string          `db:"target_currency_id"`
	Rate             decimal.Decimal `db:"rate"`
	RateDate         time.Time       `db:"rate_date"`
	Source           string          `db:"source"`
	AuditFields
}
