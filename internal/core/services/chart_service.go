package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/chriscouch/ledgercore/internal/apperrors"
	"github.com/chriscouch/ledgercore/internal/core/domain"
	portsrepo "github.com/chriscouch/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/chriscouch/ledgercore/internal/core/ports/services"
	"github.com/chriscouch/ledgercore/internal/middleware"
)

// chartService is the catalog of named accounts within one ledger. Accounts
// are append-only and created idempotently. The memo cache is scoped to this
// instance; build a fresh instance per unit of work.
type chartService struct {
	ledgerID    string
	accountRepo portsrepo.AccountRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc

	accounts *gocache.Cache // name -> domain.Account
}

// NewChartService creates a ChartOfAccounts scoped to one ledger.
func NewChartService(ledgerID string, accountRepo portsrepo.AccountRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc) portssvc.ChartSvcFacade {
	return &chartService{
		ledgerID:    ledgerID,
		accountRepo: accountRepo,
		currencySvc: currencySvc,
		accounts:    gocache.New(gocache.NoExpiration, 0),
	}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

// GetAccountID resolves an account name to its id. Accounts are never
// auto-created here; an unknown name is an error.
func (s *chartService) GetAccountID(ctx context.Context, name string) (string, error) {
	account, err := s.lookup(ctx, name)
	if err != nil {
		return "", err
	}
	return account.AccountID, nil
}

// GetAccountCurrencyID resolves an account name to its currency id.
func (s *chartService) GetAccountCurrencyID(ctx context.Context, name string) (string, error) {
	account, err := s.lookup(ctx, name)
	if err != nil {
		return "", err
	}
	return account.CurrencyID, nil
}

// FindOrCreateAccount returns the existing id for the name, or creates the
// account. The upsert guarantees two concurrent callers racing on the same
// name observe the same resulting id.
func (s *chartService) FindOrCreateAccount(ctx context.Context, name string, accountType domain.AccountType, currencyCode, creatorUserID string) (string, error) {
	if cached, found := s.accounts.Get(name); found {
		return cached.(domain.Account).AccountID, nil
	}

	currencyID, err := s.currencySvc.GetCurrencyID(ctx, currencyCode)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		LedgerID:    s.ledgerID,
		Name:        name,
		AccountType: accountType,
		CurrencyID:  currencyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.accountRepo.FindOrCreateAccount(ctx, account)
	if err != nil {
		return "", fmt.Errorf("failed to find or create account %q: %w", name, err)
	}
	if saved.AccountID != account.AccountID {
		middleware.GetLoggerFromCtx(ctx).Debug("Account already existed",
			slog.String("name", name), slog.String("account_id", saved.AccountID))
	}

	s.accounts.Set(saved.Name, *saved, gocache.NoExpiration)
	return saved.AccountID, nil
}

// GetAllAccounts bulk-loads the full chart keyed by name and warms the cache.
func (s *chartService) GetAllAccounts(ctx context.Context) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, s.ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for ledger %s: %w", s.ledgerID, err)
	}

	byName := make(map[string]domain.Account, len(accounts))
	for _, account := range accounts {
		byName[account.Name] = account
		s.accounts.Set(account.Name, account, gocache.NoExpiration)
	}
	return byName, nil
}

func (s *chartService) lookup(ctx context.Context, name string) (*domain.Account, error) {
	if cached, found := s.accounts.Get(name); found {
		account := cached.(domain.Account)
		return &account, nil
	}

	account, err := s.accountRepo.FindAccountByName(ctx, s.ledgerID, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %q", name))
		}
		return nil, fmt.Errorf("failed to find account %q: %w", name, err)
	}

	s.accounts.Set(account.Name, *account, gocache.NoExpiration)
	return account, nil
}
