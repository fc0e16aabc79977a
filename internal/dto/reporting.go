package dto

import (
	"github.com/shopspring/decimal"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// AccountBalanceResponse is the derived net balance of one account.
// Balances are signed debits minus credits; liability and revenue accounts
// come back negative when in their normal credit position.
type AccountBalanceResponse struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
}

// ToAccountBalanceResponse converts a domain.AccountBalance to its DTO
func ToAccountBalanceResponse(b domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:    b.AccountID,
		Name:         b.Name,
		Balance:      b.Balance.Amount,
		CurrencyCode: b.Balance.CurrencyCode,
	}
}

// ToListAccountBalanceResponse converts a slice of balances to DTOs
func ToListAccountBalanceResponse(balances []domain.AccountBalance) []AccountBalanceResponse {
	res := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = ToAccountBalanceResponse(b)
	}
	return res
}
