package dto

import (
	"time"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a chart account.
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	AccountType  string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
}

// AccountResponse defines the data returned for a chart account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	Name          string    `json:"name"`
	AccountType   string    `json:"accountType"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountType:   string(acc.AccountType),
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}
