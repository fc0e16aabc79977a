package apperrors_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chriscouch/ledgercore/internal/apperrors"
)

func TestUnbalancedEntryErrorMessages(t *testing.T) {
	inCurrency := &apperrors.UnbalancedEntryError{
		CurrencyCode: "USD",
		Diff:         decimal.RequireFromString("10"),
		InCurrency:   true,
	}
	assert.Equal(t, "Unbalanced journal entry in transaction currency: 10", inCurrency.Error())

	plain := &apperrors.UnbalancedEntryError{
		CurrencyCode: "USD",
		Diff:         decimal.RequireFromString("0.01"),
	}
	assert.Equal(t, "Unbalanced journal entry: 0.01", plain.Error())
}

func TestConstructorsMatchSentinels(t *testing.T) {
	notFound := apperrors.NewNotFoundError(`account "Cash"`)
	assert.ErrorIs(t, notFound, apperrors.ErrNotFound)
	assert.Equal(t, `account "Cash": resource not found`, notFound.Error())

	validation := apperrors.NewValidationError("currency code must be 3 letters")
	assert.ErrorIs(t, validation, apperrors.ErrValidation)

	conflict := fmt.Errorf("update rejected: %w", apperrors.ErrConflict)
	assert.ErrorIs(t, conflict, apperrors.ErrConflict)
}

func TestIsUnbalancedUnwraps(t *testing.T) {
	err := fmt.Errorf("sync failed: %w", &apperrors.UnbalancedEntryError{Diff: decimal.NewFromInt(1)})

	assert.True(t, apperrors.IsUnbalanced(err))
	assert.False(t, apperrors.IsUnbalanced(fmt.Errorf("unrelated")))
}
