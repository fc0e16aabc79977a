package domain

// AccountBalance is one row of a balance report: the account's name and its
// raw net balance (sum of debits minus sum of credits) in the account's own
// currency. No per-account-type sign flip is applied, so revenue accounts
// show negative balances after credit-heavy postings.
type AccountBalance struct {
	AccountID string `json:"accountID"`
	Name      string `json:"name"`
	Balance   Money  `json:"balance"`
}
