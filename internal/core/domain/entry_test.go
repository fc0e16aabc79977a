package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriscouch/ledgercore/internal/core/domain"
)

func TestAmountSigned(t *testing.T) {
	debit := domain.NewDebit(decimal.RequireFromString("10.50"))
	credit := domain.NewCredit(decimal.RequireFromString("10.50"))

	assert.True(t, debit.Signed().Equal(decimal.RequireFromString("10.50")))
	assert.True(t, credit.Signed().Equal(decimal.RequireFromString("-10.50")))
}

func TestAmountReversed(t *testing.T) {
	debit := domain.NewDebit(decimal.RequireFromString("7"))

	reversed := debit.Reversed()
	assert.Equal(t, domain.Credit, reversed.Side)
	assert.True(t, reversed.Value.Equal(debit.Value))

	// Reversing twice restores the original side.
	assert.Equal(t, domain.Debit, reversed.Reversed().Side)
}

func TestLedgerEntryReversedClearsIdentity(t *testing.T) {
	entry := domain.LedgerEntry{
		EntryID:      "entry-1",
		DocumentID:   "doc-1",
		AccountName:  "Cash",
		AccountID:    "acc-1",
		Amount:       domain.NewDebit(decimal.RequireFromString("100")),
		CurrencyCode: "USD",
		Party:        &domain.Party{Type: "customer", ID: "c-1"},
	}

	reversed := entry.Reversed()

	assert.Empty(t, reversed.EntryID)
	assert.Empty(t, reversed.DocumentID)
	assert.Equal(t, domain.Credit, reversed.Amount.Side)
	assert.Equal(t, entry.AccountName, reversed.AccountName)
	assert.Equal(t, entry.CurrencyCode, reversed.CurrencyCode)
	assert.Equal(t, entry.Party, reversed.Party)
}

func TestTransactionCurrencyDiffs(t *testing.T) {
	eurCredit := domain.LedgerEntry{
		AccountName:  "EUR Sales",
		Amount:       domain.NewCredit(decimal.RequireFromString("30")),
		CurrencyCode: "EUR",
	}

	txn := domain.Transaction{
		Date:         time.Now(),
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			{AccountName: "Cash", Amount: domain.NewDebit(decimal.RequireFromString("100"))},
			{AccountName: "Sales", Amount: domain.NewCredit(decimal.RequireFromString("60"))},
			eurCredit,
		},
	}

	diffs := txn.CurrencyDiffs()
	require.Len(t, diffs, 2)
	// Entries without their own currency fall back to the transaction currency.
	assert.True(t, diffs["USD"].Equal(decimal.RequireFromString("40")))
	assert.True(t, diffs["EUR"].Equal(decimal.RequireFromString("-30")))
	assert.False(t, txn.Balanced())
}

func TestTransactionBalancedPerCurrency(t *testing.T) {
	eurDebit := domain.LedgerEntry{Amount: domain.NewDebit(decimal.RequireFromString("30")), CurrencyCode: "EUR"}
	eurCredit := domain.LedgerEntry{Amount: domain.NewCredit(decimal.RequireFromString("30")), CurrencyCode: "EUR"}

	txn := domain.Transaction{
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			{Amount: domain.NewDebit(decimal.RequireFromString("100"))},
			{Amount: domain.NewCredit(decimal.RequireFromString("100"))},
			eurDebit,
			eurCredit,
		},
	}

	assert.True(t, txn.Balanced())
}

func TestReversalOfBalancedSetIsBalanced(t *testing.T) {
	txn := domain.Transaction{
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			{Amount: domain.NewDebit(decimal.RequireFromString("59.99"))},
			{Amount: domain.NewCredit(decimal.RequireFromString("59.99"))},
		},
	}
	require.True(t, txn.Balanced())

	mirror := domain.Transaction{CurrencyCode: txn.CurrencyCode}
	for _, entry := range txn.Entries {
		mirror.Entries = append(mirror.Entries, entry.Reversed())
	}

	assert.True(t, mirror.Balanced())
}
