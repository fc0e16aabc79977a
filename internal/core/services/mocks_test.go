package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/chriscouch/ledgercore/internal/core/domain"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
)

// --- Repository mocks ---

// MockCurrencyRepository is a mock type for the CurrencyRepositoryFacade interface
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) UpsertCurrency(ctx context.Context, currency domain.Currency) (*domain.Currency, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// MockExchangeRateRepository is a mock type for the ExchangeRateRepositoryFacade interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, baseCurrencyID, targetCurrencyID string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrencyID, targetCurrencyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) InsertRateIfAbsent(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, ledgerID, name string) (*domain.Account, error) {
	args := m.Called(ctx, ledgerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindOrCreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockDocumentTypeRepository is a mock type for the DocumentTypeRepositoryFacade interface
type MockDocumentTypeRepository struct {
	mock.Mock
}

func (m *MockDocumentTypeRepository) FindDocumentTypeByName(ctx context.Context, name string) (*domain.DocumentType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepository) UpsertDocumentType(ctx context.Context, docType domain.DocumentType) (*domain.DocumentType, error) {
	args := m.Called(ctx, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentType), args.Error(1)
}

// MockDocumentRepository is a mock type for the DocumentRepositoryFacade interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocument(ctx context.Context, ledgerID, documentTypeID, reference string) (*domain.Document, error) {
	args := m.Called(ctx, ledgerID, documentTypeID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) InsertDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// MockEntryRepository is a mock type for the EntryRepositoryFacade interface
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) ReplaceDocumentEntries(ctx context.Context, doc domain.Document, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, doc, entries)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetAccountNet(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetLedgerNets(ctx context.Context, ledgerID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Service facade mocks ---

// MockCurrencyService is a mock type for the CurrencySvcFacade interface
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyID(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockCurrencyService) GetISO(ctx context.Context, currencyID string) (string, error) {
	args := m.Called(ctx, currencyID)
	return args.String(0), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, code, numericCode string, minorUnit int32, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, code, numericCode, minorUnit, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetExchangeRate(ctx context.Context, provider portssvc.RateProvider, pair domain.CurrencyPair, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, provider, pair, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockChartService is a mock type for the ChartSvcFacade interface
type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) GetAccountID(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockChartService) GetAccountCurrencyID(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockChartService) GetAllAccounts(ctx context.Context) (map[string]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockChartService) FindOrCreateAccount(ctx context.Context, name string, accountType domain.AccountType, currencyCode, creatorUserID string) (string, error) {
	args := m.Called(ctx, name, accountType, currencyCode, creatorUserID)
	return args.String(0), args.Error(1)
}

// MockDocumentService is a mock type for the DocumentSvcFacade interface
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocumentTypeID(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) CreateDocumentType(ctx context.Context, name, creatorUserID string) (string, error) {
	args := m.Called(ctx, name, creatorUserID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) GetDocumentID(ctx context.Context, typeName, reference string) (string, error) {
	args := m.Called(ctx, typeName, reference)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetOrCreateDocument(ctx context.Context, input domain.DocumentInput, creatorUserID string) (string, error) {
	args := m.Called(ctx, input, creatorUserID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, input domain.DocumentInput, creatorUserID string) (string, error) {
	args := m.Called(ctx, input, creatorUserID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) UpdateDocument(ctx context.Context, documentID string, input domain.DocumentInput, updaterUserID string) error {
	args := m.Called(ctx, documentID, input, updaterUserID)
	return args.Error(0)
}

// --- Provider mock ---

// MockRateProvider is a mock type for the RateProvider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRateProvider) HistoricalRate(ctx context.Context, pair domain.CurrencyPair, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, pair, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
