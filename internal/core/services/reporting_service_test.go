package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/chriscouch/ledgercore/internal/core/domain"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	ledgerID          string
	mockChartSvc      *MockChartService
	mockCurrencySvc   *MockCurrencyService
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ledgerID = uuid.NewString()
	suite.mockChartSvc = new(MockChartService)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(
		suite.ledgerID, suite.mockChartSvc, suite.mockCurrencySvc, suite.mockReportingRepo)
}

func (suite *ReportingServiceTestSuite) TestGetAccountBalance_RawSignConvention() {
	ctx := context.Background()
	accountID := uuid.NewString()
	currencyID := uuid.NewString()

	suite.mockChartSvc.On("GetAccountID", ctx, "Sales").Return(accountID, nil).Once()
	suite.mockChartSvc.On("GetAccountCurrencyID", ctx, "Sales").Return(currencyID, nil).Once()
	suite.mockCurrencySvc.On("GetISO", ctx, currencyID).Return("USD", nil).Once()
	// A credit-heavy revenue account nets negative and stays negative.
	suite.mockReportingRepo.On("GetAccountNet", ctx, accountID, (*time.Time)(nil)).
		Return(decimal.RequireFromString("-250"), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, "Sales", nil)

	suite.Require().NoError(err)
	suite.Equal("USD", balance.CurrencyCode)
	suite.True(balance.Amount.Equal(decimal.RequireFromString("-250")))
}

func (suite *ReportingServiceTestSuite) TestGetAccountBalance_AsOfForwarded() {
	ctx := context.Background()
	accountID := uuid.NewString()
	currencyID := uuid.NewString()
	asOf := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	suite.mockChartSvc.On("GetAccountID", ctx, "Cash").Return(accountID, nil).Once()
	suite.mockChartSvc.On("GetAccountCurrencyID", ctx, "Cash").Return(currencyID, nil).Once()
	suite.mockCurrencySvc.On("GetISO", ctx, currencyID).Return("USD", nil).Once()
	suite.mockReportingRepo.On("GetAccountNet", ctx, accountID, &asOf).
		Return(decimal.RequireFromString("42"), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, "Cash", &asOf)

	suite.Require().NoError(err)
	suite.True(balance.Amount.Equal(decimal.RequireFromString("42")))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetAccountBalances_SortedWithZeroDefaults() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	cash := domain.Account{AccountID: uuid.NewString(), Name: "Cash", CurrencyID: currencyID}
	sales := domain.Account{AccountID: uuid.NewString(), Name: "Sales", CurrencyID: currencyID}
	unused := domain.Account{AccountID: uuid.NewString(), Name: "Accrued Interest", CurrencyID: currencyID}

	suite.mockChartSvc.On("GetAllAccounts", ctx).Return(map[string]domain.Account{
		"Sales":            sales,
		"Cash":             cash,
		"Accrued Interest": unused,
	}, nil).Once()
	suite.mockCurrencySvc.On("GetISO", ctx, currencyID).Return("USD", nil)
	// The unused account has no entry rows and gets no key in the net map.
	suite.mockReportingRepo.On("GetLedgerNets", ctx, suite.ledgerID).Return(map[string]decimal.Decimal{
		cash.AccountID:  decimal.RequireFromString("100"),
		sales.AccountID: decimal.RequireFromString("-100"),
	}, nil).Once()

	balances, err := suite.service.GetAccountBalances(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 3)
	suite.Equal("Accrued Interest", balances[0].Name)
	suite.Equal("Cash", balances[1].Name)
	suite.Equal("Sales", balances[2].Name)
	suite.True(balances[0].Balance.Amount.IsZero())
	suite.True(balances[2].Balance.Amount.Equal(decimal.RequireFromString("-100")))
}

func (suite *ReportingServiceTestSuite) TestGetAccountBalances_Empty() {
	ctx := context.Background()

	suite.mockChartSvc.On("GetAllAccounts", ctx).Return(map[string]domain.Account{}, nil).Once()
	suite.mockReportingRepo.On("GetLedgerNets", ctx, suite.ledgerID).
		Return(map[string]decimal.Decimal{}, nil).Once()

	balances, err := suite.service.GetAccountBalances(ctx)

	suite.Require().NoError(err)
	suite.Empty(balances)
	suite.mockCurrencySvc.AssertNotCalled(suite.T(), "GetISO", mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
