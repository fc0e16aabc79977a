package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/middleware"
)

// currencyService is the catalog of ISO currencies plus the layered
// exchange-rate cache. The memo caches are scoped to this instance and must
// not be shared across independent units of work; build a fresh instance per
// request or tenant.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	rateRepo     portsrepo.ExchangeRateRepositoryFacade

	codeToCurrency *gocache.Cache // code -> domain.Currency
	idToCode       *gocache.Cache // currency id -> code
	rateMemo       *gocache.Cache // base/quote@date -> decimal.Decimal
}

// NewCurrencyService creates a CurrencyStore over the given repositories with
// fresh, empty memo caches.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo:   currencyRepo,
		rateRepo:       rateRepo,
		codeToCurrency: gocache.New(gocache.NoExpiration, 0),
		idToCode:       gocache.New(gocache.NoExpiration, 0),
		rateMemo:       gocache.New(gocache.NoExpiration, 0),
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency idempotently upserts a currency by code. Two concurrent
// callers racing on the same code converge on one row.
func (s *currencyService) CreateCurrency(ctx context.Context, code, numericCode string, minorUnit int32, creatorUserID string) (*domain.Currency, error) {
	code = strings.ToUpper(code)
	if len(code) != 3 {
		return nil, apperrors.NewValidationError("currency code must be 3 letters")
	}
	if minorUnit < 0 {
		return nil, apperrors.NewValidationError("minor unit must not be negative")
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyID:  uuid.NewString(),
		Code:        code,
		NumericCode: numericCode,
		MinorUnit:   minorUnit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.currencyRepo.UpsertCurrency(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create currency %s: %w", code, err)
	}

	s.memoize(*saved)
	return saved, nil
}

// GetCurrencyID resolves an ISO code to the currency id, memoized.
func (s *currencyService) GetCurrencyID(ctx context.Context, code string) (string, error) {
	currency, err := s.GetCurrencyByCode(ctx, code)
	if err != nil {
		return "", err
	}
	return currency.CurrencyID, nil
}

// GetISO resolves a currency id back to its ISO code, memoized.
func (s *currencyService) GetISO(ctx context.Context, currencyID string) (string, error) {
	if code, found := s.idToCode.Get(currencyID); found {
		return code.(string), nil
	}

	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve currency id %s: %w", currencyID, err)
	}

	s.memoize(*currency)
	return currency.Code, nil
}

// GetCurrencyByCode retrieves the full catalog entry for a code, memoized.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	code = strings.ToUpper(code)
	if cached, found := s.codeToCurrency.Get(code); found {
		currency := cached.(domain.Currency)
		return &currency, nil
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", code, err)
	}

	s.memoize(*currency)
	return currency, nil
}

// ListCurrencies retrieves all currencies ordered by code.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// GetExchangeRate resolves the historical rate for a pair through four tiers,
// strictly in order, short-circuiting on the first hit:
//  1. identity when base == quote (no I/O),
//  2. in-process memo,
//  3. persisted exchange_rates row,
//  4. the external provider, whose quote is then persisted and memoized.
func (s *currencyService) GetExchangeRate(ctx context.Context, provider portssvc.RateProvider, pair domain.CurrencyPair, date time.Time) (decimal.Decimal, error) {
	if pair.Base == pair.Quote {
		return decimal.NewFromInt(1), nil
	}

	day := date.UTC().Truncate(24 * time.Hour)
	memoKey := pair.String() + "@" + day.Format("2006-01-02")
	if cached, found := s.rateMemo.Get(memoKey); found {
		return cached.(decimal.Decimal), nil
	}

	baseID, err := s.GetCurrencyID(ctx, pair.Base)
	if err != nil {
		return decimal.Zero, err
	}
	targetID, err := s.GetCurrencyID(ctx, pair.Quote)
	if err != nil {
		return decimal.Zero, err
	}

	persisted, err := s.rateRepo.FindRate(ctx, baseID, targetID, day)
	if err == nil {
		s.rateMemo.Set(memoKey, persisted.Rate, gocache.NoExpiration)
		return persisted.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up persisted rate for %s: %w", pair, err)
	}

	// All cache tiers missed; quote the provider. Provider errors are
	// propagated unchanged.
	quoted, err := provider.HistoricalRate(ctx, pair, day)
	if err != nil {
		return decimal.Zero, err
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Fetched exchange rate from provider",
		slog.String("pair", pair.String()),
		slog.String("date", day.Format("2006-01-02")),
		slog.String("provider", provider.Name()),
	)

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		BaseCurrencyID:   baseID,
		TargetCurrencyID: targetID,
		Rate:             quoted,
		RateDate:         day,
		Source:           provider.Name(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     provider.Name(),
			LastUpdatedAt: now,
			LastUpdatedBy: provider.Name(),
		},
	}

	// A concurrently recorded row wins: rates for a past (pair, date) never
	// change once cached.
	surviving, err := s.rateRepo.InsertRateIfAbsent(ctx, rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to persist exchange rate for %s: %w", pair, err)
	}

	s.rateMemo.Set(memoKey, surviving.Rate, gocache.NoExpiration)
	return surviving.Rate, nil
}

func (s *currencyService) memoize(currency domain.Currency) {
	s.codeToCurrency.Set(currency.Code, currency, gocache.NoExpiration)
	s.idToCode.Set(currency.CurrencyID, currency.Code, gocache.NoExpiration)
}
