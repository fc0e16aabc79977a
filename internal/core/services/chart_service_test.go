package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/core/services"
)

type ChartServiceTestSuite struct {
	suite.Suite
	ledgerID         string
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.ChartSvcFacade
}

func (suite *ChartServiceTestSuite) SetupTest() {
	suite.ledgerID = uuid.NewString()
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo, new(MockExchangeRateRepository))
	suite.service = services.NewChartService(suite.ledgerID, suite.mockAccountRepo, currencySvc)
}

func (suite *ChartServiceTestSuite) newTestAccount(name string) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		LedgerID:    suite.ledgerID,
		Name:        name,
		AccountType: domain.Asset,
		CurrencyID:  uuid.NewString(),
	}
}

func (suite *ChartServiceTestSuite) TestGetAccountID_MemoizesLookup() {
	ctx := context.Background()
	cash := suite.newTestAccount("Cash")

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.ledgerID, "Cash").Return(cash, nil).Once()

	first, err := suite.service.GetAccountID(ctx, "Cash")
	suite.Require().NoError(err)
	second, err := suite.service.GetAccountID(ctx, "Cash")
	suite.Require().NoError(err)

	suite.Equal(cash.AccountID, first)
	suite.Equal(first, second)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "FindAccountByName", 1)
}

func (suite *ChartServiceTestSuite) TestGetAccountID_UnknownAccountIsNotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.ledgerID, "Missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountID(ctx, "Missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ChartServiceTestSuite) TestFindOrCreateAccount_CreatesAndMemoizes() {
	ctx := context.Background()
	usd := newTestCurrency("USD")
	saved := suite.newTestAccount("Revenue:Sales")
	saved.CurrencyID = usd.CurrencyID

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Once()
	suite.mockAccountRepo.On("FindOrCreateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == "Revenue:Sales" && acc.LedgerID == suite.ledgerID && acc.CurrencyID == usd.CurrencyID
	})).Return(saved, nil).Once()

	first, err := suite.service.FindOrCreateAccount(ctx, "Revenue:Sales", domain.Revenue, "USD", "tester")
	suite.Require().NoError(err)
	second, err := suite.service.FindOrCreateAccount(ctx, "Revenue:Sales", domain.Revenue, "USD", "tester")
	suite.Require().NoError(err)

	suite.Equal(saved.AccountID, first)
	suite.Equal(first, second)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "FindOrCreateAccount", 1)
}

func (suite *ChartServiceTestSuite) TestFindOrCreateAccount_ExistingRowWins() {
	ctx := context.Background()
	usd := newTestCurrency("USD")
	existing := suite.newTestAccount("Cash")

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Once()
	// The repository resolves the race: a concurrent creator's row comes back
	// instead of the one this caller proposed.
	suite.mockAccountRepo.On("FindOrCreateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(existing, nil).Once()

	accountID, err := suite.service.FindOrCreateAccount(ctx, "Cash", domain.Asset, "USD", "tester")

	suite.Require().NoError(err)
	suite.Equal(existing.AccountID, accountID)
}

func (suite *ChartServiceTestSuite) TestGetAllAccounts_WarmsCache() {
	ctx := context.Background()
	cash := suite.newTestAccount("Cash")
	sales := suite.newTestAccount("Sales")

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.ledgerID).
		Return([]domain.Account{*cash, *sales}, nil).Once()

	accounts, err := suite.service.GetAllAccounts(ctx)
	suite.Require().NoError(err)
	suite.Len(accounts, 2)

	// Subsequent by-name lookups are served from the warmed cache.
	accountID, err := suite.service.GetAccountID(ctx, "Sales")
	suite.Require().NoError(err)
	suite.Equal(sales.AccountID, accountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByName", mock.Anything, mock.Anything, mock.Anything)
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}
