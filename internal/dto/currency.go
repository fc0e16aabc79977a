package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to register a currency.
type CreateCurrencyRequest struct {
	Code        string `json:"code" binding:"required,uppercase,len=3"`
	NumericCode string `json:"numericCode" binding:"required,numeric,len=3"`
	MinorUnit   int32  `json:"minorUnit" binding:"gte=0,lte=6"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	Code          string    `json:"code"`
	NumericCode   string    `json:"numericCode"`
	MinorUnit     int32     `json:"minorUnit"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:          curr.Code,
		NumericCode:   curr.NumericCode,
		MinorUnit:     curr.MinorUnit,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}

// ConvertCurrencyRequest defines the input for a base-to-target conversion.
type ConvertCurrencyRequest struct {
	TargetCurrency string          `json:"targetCurrency" binding:"required,uppercase,len=3"`
	Date           time.Time       `json:"date" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// ConvertCurrencyResponse carries the converted amount.
type ConvertCurrencyResponse struct {
	TargetCurrency string          `json:"targetCurrency"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
}
