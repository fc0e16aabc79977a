package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ledger          domain.Ledger
	mockCurrencySvc *MockCurrencyService
	mockChartSvc    *MockChartService
	mockDocumentSvc *MockDocumentService
	mockEntryRepo   *MockEntryRepository
	service         portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ledger = domain.Ledger{
		LedgerID:         uuid.NewString(),
		Name:             "main",
		BaseCurrencyCode: "USD",
	}
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockChartSvc = new(MockChartService)
	suite.mockDocumentSvc = new(MockDocumentService)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewLedgerService(
		suite.ledger, suite.mockCurrencySvc, suite.mockChartSvc, suite.mockDocumentSvc, suite.mockEntryRepo)
}

// withRounding rebuilds the service with a rounding policy installed.
func (suite *LedgerServiceTestSuite) withRounding(policy services.MapRoundingPolicy) {
	suite.service = services.NewLedgerService(
		suite.ledger, suite.mockCurrencySvc, suite.mockChartSvc, suite.mockDocumentSvc, suite.mockEntryRepo,
		services.WithRoundingPolicy(policy))
}

func (suite *LedgerServiceTestSuite) expectAccount(name string) string {
	accountID := uuid.NewString()
	suite.mockChartSvc.On("GetAccountID", mock.Anything, name).Return(accountID, nil)
	return accountID
}

func (suite *LedgerServiceTestSuite) expectCurrency(code string) string {
	currencyID := uuid.NewString()
	suite.mockCurrencySvc.On("GetCurrencyID", mock.Anything, code).Return(currencyID, nil)
	return currencyID
}

func debitEntry(account string, amount string) domain.LedgerEntry {
	return domain.LedgerEntry{AccountName: account, Amount: domain.NewDebit(decimal.RequireFromString(amount))}
}

func creditEntry(account string, amount string) domain.LedgerEntry {
	return domain.LedgerEntry{AccountName: account, Amount: domain.NewCredit(decimal.RequireFromString(amount))}
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	documentID := uuid.NewString()
	cashID := suite.expectAccount("Cash")
	salesID := suite.expectAccount("Sales")
	usdID := suite.expectCurrency("USD")

	txn := domain.Transaction{
		Date:         time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			debitEntry("Cash", "100"),
			creditEntry("Sales", "100"),
		},
	}

	suite.mockEntryRepo.On("SaveEntries", ctx, mock.MatchedBy(func(entries []domain.LedgerEntry) bool {
		if len(entries) != 2 {
			return false
		}
		cash, sales := entries[0], entries[1]
		return cash.DocumentID == documentID && cash.AccountID == cashID &&
			cash.CurrencyID == usdID && cash.Amount.Side == domain.Debit &&
			cash.Date.Equal(txn.Date) && cash.EntryID != "" &&
			sales.AccountID == salesID && sales.Amount.Side == domain.Credit
	})).Return(nil).Once()

	err := suite.service.CreateTransaction(ctx, documentID, txn, "tester")

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_UnbalancedRejectedWithExactDiff() {
	ctx := context.Background()

	txn := domain.Transaction{
		Date:         time.Now(),
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			debitEntry("Cash", "110"),
			creditEntry("Sales", "100"),
		},
	}

	err := suite.service.CreateTransaction(ctx, uuid.NewString(), txn, "tester")

	suite.Require().Error(err)
	suite.True(apperrors.IsUnbalanced(err))
	suite.Equal("Unbalanced journal entry in transaction currency: 10", err.Error())
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_BalancePerCurrency() {
	ctx := context.Background()
	documentID := uuid.NewString()
	suite.expectAccount("Cash")
	suite.expectAccount("Sales")
	suite.expectAccount("EUR Cash")
	suite.expectAccount("EUR Sales")
	suite.expectCurrency("USD")
	suite.expectCurrency("EUR")

	eurDebit := debitEntry("EUR Cash", "50")
	eurDebit.CurrencyCode = "EUR"
	eurCredit := creditEntry("EUR Sales", "50")
	eurCredit.CurrencyCode = "EUR"

	txn := domain.Transaction{
		Date:         time.Now(),
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			debitEntry("Cash", "100"),
			creditEntry("Sales", "100"),
			eurDebit,
			eurCredit,
		},
	}

	suite.mockEntryRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	err := suite.service.CreateTransaction(ctx, documentID, txn, "tester")

	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_CrossCurrencyImbalanceRejected() {
	ctx := context.Background()

	// Balanced in total but not per currency: USD debit offset by EUR credit.
	eurCredit := creditEntry("EUR Sales", "100")
	eurCredit.CurrencyCode = "EUR"

	txn := domain.Transaction{
		Date:         time.Now(),
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			debitEntry("Cash", "100"),
			eurCredit,
		},
	}

	err := suite.service.CreateTransaction(ctx, uuid.NewString(), txn, "tester")

	suite.Require().Error(err)
	suite.True(apperrors.IsUnbalanced(err))
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestVoidDocument_PostsMirrorToVoidDocument() {
	ctx := context.Background()
	documentID := uuid.NewString()
	voidDocID := uuid.NewString()
	cashID := suite.expectAccount("Cash")
	salesID := suite.expectAccount("Sales")
	suite.expectCurrency("USD")

	posted := []domain.LedgerEntry{
		{AccountName: "Cash", AccountID: cashID, Amount: domain.NewDebit(decimal.RequireFromString("100")), CurrencyCode: "USD"},
		{AccountName: "Sales", AccountID: salesID, Amount: domain.NewCredit(decimal.RequireFromString("100")), CurrencyCode: "USD"},
	}

	suite.mockDocumentSvc.On("GetDocumentID", ctx, "invoice", "INV-0042").Return(documentID, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDocumentID", ctx, documentID).Return(posted, nil).Once()
	suite.mockDocumentSvc.On("GetOrCreateDocument", ctx, mock.MatchedBy(func(input domain.DocumentInput) bool {
		return input.Type == domain.VoidDocumentType && input.Reference == documentID
	}), "tester").Return(voidDocID, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDocumentID", ctx, voidDocID).
		Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockEntryRepo.On("SaveEntries", ctx, mock.MatchedBy(func(entries []domain.LedgerEntry) bool {
		if len(entries) != 2 {
			return false
		}
		// Same accounts and values, flipped sides, linked to the void document.
		return entries[0].Amount.Side == domain.Credit && entries[0].AccountName == "Cash" &&
			entries[1].Amount.Side == domain.Debit && entries[1].AccountName == "Sales" &&
			entries[0].DocumentID == voidDocID &&
			entries[0].Amount.Value.Equal(decimal.RequireFromString("100"))
	})).Return(nil).Once()

	gotVoidID, err := suite.service.VoidDocument(ctx, "invoice", "INV-0042", "tester")

	suite.Require().NoError(err)
	suite.Equal(voidDocID, gotVoidID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockDocumentSvc.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestVoidDocument_UnregisteredIsNoOp() {
	ctx := context.Background()

	suite.mockDocumentSvc.On("GetDocumentID", ctx, "invoice", "NEVER-POSTED").
		Return("", apperrors.ErrNotFound).Once()

	voidDocID, err := suite.service.VoidDocument(ctx, "invoice", "NEVER-POSTED", "tester")

	suite.Require().NoError(err)
	suite.Empty(voidDocID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestVoidDocument_NoEntriesIsNoOp() {
	ctx := context.Background()
	documentID := uuid.NewString()

	suite.mockDocumentSvc.On("GetDocumentID", ctx, "invoice", "INV-0001").Return(documentID, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDocumentID", ctx, documentID).
		Return([]domain.LedgerEntry{}, nil).Once()

	voidDocID, err := suite.service.VoidDocument(ctx, "invoice", "INV-0001", "tester")

	suite.Require().NoError(err)
	suite.Empty(voidDocID)
	suite.mockDocumentSvc.AssertNotCalled(suite.T(), "GetOrCreateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestVoidDocument_SecondVoidDoesNotRepost() {
	ctx := context.Background()
	documentID := uuid.NewString()
	voidDocID := uuid.NewString()
	cashID := suite.expectAccount("Cash")
	salesID := suite.expectAccount("Sales")
	suite.expectCurrency("USD")

	posted := []domain.LedgerEntry{
		{AccountName: "Cash", AccountID: cashID, Amount: domain.NewDebit(decimal.RequireFromString("100")), CurrencyCode: "USD"},
		{AccountName: "Sales", AccountID: salesID, Amount: domain.NewCredit(decimal.RequireFromString("100")), CurrencyCode: "USD"},
	}
	reversal := []domain.LedgerEntry{
		{AccountName: "Cash", AccountID: cashID, DocumentID: voidDocID, Amount: domain.NewCredit(decimal.RequireFromString("100")), CurrencyCode: "USD"},
		{AccountName: "Sales", AccountID: salesID, DocumentID: voidDocID, Amount: domain.NewDebit(decimal.RequireFromString("100")), CurrencyCode: "USD"},
	}

	suite.mockDocumentSvc.On("GetDocumentID", ctx, "invoice", "INV-0042").Return(documentID, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDocumentID", ctx, documentID).Return(posted, nil).Once()
	suite.mockDocumentSvc.On("GetOrCreateDocument", ctx, mock.MatchedBy(func(input domain.DocumentInput) bool {
		return input.Type == domain.VoidDocumentType && input.Reference == documentID
	}), "tester").Return(voidDocID, nil).Once()
	// The void document already carries the reversal from an earlier call.
	suite.mockEntryRepo.On("FindEntriesByDocumentID", ctx, voidDocID).Return(reversal, nil).Once()

	gotVoidID, err := suite.service.VoidDocument(ctx, "invoice", "INV-0042", "tester")

	suite.Require().NoError(err)
	suite.Equal(voidDocID, gotVoidID)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSyncDocument_ReplacesEntireEntrySet() {
	ctx := context.Background()
	typeID := uuid.NewString()
	documentID := uuid.NewString()
	suite.expectAccount("Cash")
	suite.expectAccount("Sales")
	suite.expectCurrency("USD")

	input := domain.DocumentInput{
		Type:      "invoice",
		Reference: "INV-0042",
		Number:    "42",
		Date:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	txns := []domain.Transaction{{
		Date:         input.Date,
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			debitEntry("Cash", "250"),
			creditEntry("Sales", "250"),
		},
	}}

	suite.mockDocumentSvc.On("GetDocumentTypeID", ctx, "invoice").Return(typeID, nil).Once()
	suite.mockDocumentSvc.On("GetOrCreateDocument", ctx, input, "tester").Return(documentID, nil).Once()
	suite.mockEntryRepo.On("ReplaceDocumentEntries", ctx, mock.MatchedBy(func(doc domain.Document) bool {
		return doc.DocumentID == documentID && doc.Number == "42" && doc.DocumentTypeID == typeID
	}), mock.MatchedBy(func(entries []domain.LedgerEntry) bool {
		return len(entries) == 2 && entries[0].DocumentID == documentID
	})).Return(nil).Once()

	gotDocID, err := suite.service.SyncDocument(ctx, input, txns, "tester")

	suite.Require().NoError(err)
	suite.Equal(documentID, gotDocID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSyncDocument_AbsorbsResidualIntoRoundingAccount() {
	ctx := context.Background()
	suite.withRounding(services.MapRoundingPolicy{"USD": "Rounding Differences"})

	typeID := uuid.NewString()
	documentID := uuid.NewString()
	suite.expectAccount("Cash")
	suite.expectAccount("Sales")
	roundingID := suite.expectAccount("Rounding Differences")
	suite.expectCurrency("USD")

	input := domain.DocumentInput{Type: "invoice", Reference: "INV-0042", Date: time.Now()}
	txns := []domain.Transaction{{
		Date:         input.Date,
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			debitEntry("Cash", "100.01"),
			creditEntry("Sales", "100"),
		},
	}}

	suite.mockDocumentSvc.On("GetDocumentTypeID", ctx, "invoice").Return(typeID, nil).Once()
	suite.mockDocumentSvc.On("GetOrCreateDocument", ctx, input, "tester").Return(documentID, nil).Once()
	suite.mockEntryRepo.On("ReplaceDocumentEntries", ctx, mock.AnythingOfType("domain.Document"),
		mock.MatchedBy(func(entries []domain.LedgerEntry) bool {
			if len(entries) != 3 {
				return false
			}
			rounding := entries[2]
			return rounding.AccountID == roundingID &&
				rounding.Amount.Side == domain.Credit &&
				rounding.Amount.Value.Equal(decimal.RequireFromString("0.01"))
		})).Return(nil).Once()

	_, err := suite.service.SyncDocument(ctx, input, txns, "tester")

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSyncDocument_ResidualWithoutPolicyRejected() {
	ctx := context.Background()
	typeID := uuid.NewString()
	documentID := uuid.NewString()

	input := domain.DocumentInput{Type: "invoice", Reference: "INV-0042", Date: time.Now()}
	txns := []domain.Transaction{{
		Date:         input.Date,
		CurrencyCode: "USD",
		Entries: []domain.LedgerEntry{
			debitEntry("Cash", "101"),
			creditEntry("Sales", "100"),
		},
	}}

	suite.mockDocumentSvc.On("GetDocumentTypeID", ctx, "invoice").Return(typeID, nil).Once()
	suite.mockDocumentSvc.On("GetOrCreateDocument", ctx, input, "tester").Return(documentID, nil).Once()

	_, err := suite.service.SyncDocument(ctx, input, txns, "tester")

	suite.Require().Error(err)
	suite.True(apperrors.IsUnbalanced(err))
	suite.Equal("Unbalanced journal entry: 1", err.Error())
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ReplaceDocumentEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestConvertCurrency_BaseCurrencyUnchanged() {
	ctx := context.Background()
	amount := decimal.RequireFromString("123.45")

	converted, err := suite.service.ConvertCurrency(ctx, new(MockRateProvider), "USD", time.Now(), amount)

	suite.Require().NoError(err)
	suite.True(converted.Equal(amount))
	suite.mockCurrencySvc.AssertNotCalled(suite.T(), "GetExchangeRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestConvertCurrency_AppliesRateAndRounds() {
	ctx := context.Background()
	provider := new(MockRateProvider)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	pair := domain.CurrencyPair{Base: "USD", Quote: "EUR"}

	suite.mockCurrencySvc.On("GetExchangeRate", ctx, provider, pair, date).
		Return(decimal.RequireFromString("1.5"), nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").
		Return(&domain.Currency{Code: "EUR", MinorUnit: 2}, nil).Once()

	converted, err := suite.service.ConvertCurrency(ctx, provider, "EUR", date, decimal.RequireFromString("10.01"))

	suite.Require().NoError(err)
	// 10.01 * 1.5 = 15.015, rounded to EUR's two decimal places.
	suite.Equal("15.02", converted.StringFixed(2))
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
